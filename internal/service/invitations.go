package service

import (
	"context"
	"time"

	"shadow-duel/internal/constants"
	"shadow-duel/internal/game"
	"shadow-duel/internal/logging"
	"shadow-duel/internal/storage"
)

// AcceptInvitation activates a waiting PvP match. The inviter gets a battle
// notification so their client can jump into the fight.
func (s *Service) AcceptInvitation(ctx context.Context, userID, gameID string) (*game.GameState, error) {
	inv, err := s.repo.GetInvitation(ctx, userID)
	if err == storage.ErrNotFound {
		return nil, ErrNoInvitation
	}
	if err != nil {
		return nil, err
	}
	if inv.GameID != gameID || inv.Status != "pending" {
		return nil, ErrNoInvitation
	}

	g, err := s.repo.GetGame(ctx, gameID)
	if err == storage.ErrNotFound {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	if g.Status != game.StatusWaiting {
		return nil, ErrGameNotActive
	}

	g.Status = game.StatusActive
	g.TurnStartedAt = time.Now()
	if err := s.repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		return nil, err
	}
	s.clock.Arm(g.GameID)

	if err := s.repo.NotifyBattleActive(ctx, g.Player1.UserID, g.GameID); err != nil {
		logging.Error("accept: notify inviter", err, logging.Fields{constants.LogFieldGameID: gameID})
	}
	if err := s.repo.ClearInvitation(ctx, userID); err != nil {
		logging.Error("accept: clear invitation", err, logging.Fields{constants.LogFieldGameID: gameID})
	}
	if err := s.repo.MarkOnline(ctx, userID); err != nil {
		logging.Error("accept: mark online", err, logging.Fields{constants.LogFieldUserID: userID})
	}

	logging.Info("invitation accepted", logging.Fields{
		constants.LogFieldGameID: gameID,
		constants.LogFieldUserID: userID,
	})
	return g, nil
}

// DeclineInvitation tears the waiting match down.
func (s *Service) DeclineInvitation(ctx context.Context, userID, gameID string) error {
	inv, err := s.repo.GetInvitation(ctx, userID)
	if err == storage.ErrNotFound {
		return ErrNoInvitation
	}
	if err != nil {
		return err
	}
	if inv.GameID != gameID {
		return ErrNoInvitation
	}

	if err := s.repo.DeleteGame(ctx, gameID); err != nil {
		return err
	}
	s.clock.Disarm(gameID)
	if err := s.repo.ClearInvitation(ctx, userID); err != nil {
		return err
	}

	logging.Info("invitation declined", logging.Fields{
		constants.LogFieldGameID: gameID,
		constants.LogFieldUserID: userID,
	})
	return nil
}
