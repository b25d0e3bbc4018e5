package service

import (
	"context"
	"fmt"
	"time"

	"shadow-duel/internal/constants"
	"shadow-duel/internal/engine"
	"shadow-duel/internal/game"
	"shadow-duel/internal/logging"
	"shadow-duel/internal/storage"
)

// CheckTimeout is the client-driven timeout path. It validates the caller's
// membership, runs the same handler the firing timer would, then returns the
// refreshed state. The clock's singleflight group keeps the two paths from
// double-penalizing.
func (s *Service) CheckTimeout(ctx context.Context, userID, gameID string) (*game.GameState, error) {
	g, err := s.repo.GetGame(ctx, gameID)
	if err == storage.ErrNotFound {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	if g.RoleOf(userID) == "" {
		return nil, ErrPlayerNotInGame
	}

	s.clock.Trigger(gameID)

	g, err = s.repo.GetGame(ctx, gameID)
	if err == storage.ErrNotFound {
		return nil, ErrGameNotFound
	}
	return g, err
}

// handleTurnTimeout is the clock callback. The elapsed time is re-checked
// against the stored turn start because a fired timer may race a move that
// just reset the turn: a stale fire re-arms for the remainder and changes
// nothing.
func (s *Service) handleTurnTimeout(gameID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	g, err := s.repo.GetGame(ctx, gameID)
	if err == storage.ErrNotFound {
		s.clock.Disarm(gameID)
		return
	}
	if err != nil {
		logging.Error("timeout: load game", err, logging.Fields{constants.LogFieldGameID: gameID})
		return
	}
	if g.Status != game.StatusActive {
		s.clock.Disarm(gameID)
		return
	}

	elapsed := time.Since(g.TurnStartedAt)
	if elapsed < constants.TurnTimeLimit {
		s.clock.ArmIn(gameID, constants.TurnTimeLimit-elapsed)
		return
	}

	seat := g.Combatant(g.CurrentTurn)
	seat.HP -= constants.TimeoutHPPenalty
	if seat.HP < 0 {
		seat.HP = 0
	}
	g.BattleLog = append(g.BattleLog, game.BattleLogEntry{
		Turn:      g.TurnNumber,
		Message:   fmt.Sprintf("%s hesitated and lost %d HP!", seat.Username, constants.TimeoutHPPenalty),
		Type:      game.LogStatus,
		Timestamp: time.Now(),
	})
	logging.Warn("turn timeout penalty", logging.Fields{
		constants.LogFieldGameID:  gameID,
		constants.LogFieldUserID:  seat.UserID,
		constants.LogFieldPenalty: constants.TimeoutHPPenalty,
		constants.LogFieldElapsed: elapsed.Milliseconds(),
	})

	if winner := engine.IsBattleOver(g); winner != game.WinnerNone {
		if err := s.finishBattle(ctx, g, winner); err != nil {
			logging.Error("timeout: finish battle", err, logging.Fields{constants.LogFieldGameID: gameID})
		}
		return
	}

	// The turn does not change hands: the slow player keeps bleeding until
	// they act or die.
	g.TurnStartedAt = time.Now()
	if err := s.repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		logging.Error("timeout: save game", err, logging.Fields{constants.LogFieldGameID: gameID})
		return
	}
	s.clock.Arm(gameID)
}
