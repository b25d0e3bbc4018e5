// Package service orchestrates battles: it owns match lifecycle, turn order,
// the timeout clock and the post-battle bookkeeping, delegating combat math
// to the engine and persistence to the repository.
package service

import (
	"shadow-duel/internal/clock"
	"shadow-duel/internal/constants"
	"shadow-duel/internal/storage"
)

type Service struct {
	repo  storage.Repository
	clock *clock.TurnClock
}

func New(repo storage.Repository) *Service {
	s := &Service{repo: repo}
	s.clock = clock.NewTurnClock(constants.TurnTimeLimit, s.handleTurnTimeout)
	return s
}

// Clock exposes the turn clock for shutdown.
func (s *Service) Clock() *clock.TurnClock { return s.clock }
