package service

import (
	"context"

	"shadow-duel/internal/constants"
	"shadow-duel/internal/game"
	"shadow-duel/internal/logging"
	"shadow-duel/internal/progression"
	"shadow-duel/internal/shadow"
)

// finishBattle closes a match: the record is kept briefly for result screens
// and then expires, the clock stops, and progression plus shadow recording
// run for every human seat. Bookkeeping failures are logged, never surfaced:
// the battle outcome itself is already decided and saved.
func (s *Service) finishBattle(ctx context.Context, g *game.GameState, winner game.Winner) error {
	g.Status = game.StatusFinished
	g.Winner = winner
	s.clock.Disarm(g.GameID)

	if err := s.repo.SaveGame(ctx, g, constants.FinishedGameRetention); err != nil {
		return err
	}

	logging.Info("battle finished", logging.Fields{
		constants.LogFieldGameID: g.GameID,
		constants.LogFieldWinner: string(winner),
		constants.LogFieldTurn:   g.TurnNumber,
	})

	s.settleSeat(ctx, g, game.RolePlayer1)
	if !g.IsShadowMatch {
		s.settleSeat(ctx, g, game.RolePlayer2)
	}

	if _, err := s.repo.IncrementBattlesToday(ctx); err != nil {
		logging.Error("finish: battles counter", err, logging.Fields{constants.LogFieldGameID: g.GameID})
	}
	return nil
}

// settleSeat applies post-battle bookkeeping for one human combatant.
func (s *Service) settleSeat(ctx context.Context, g *game.GameState, role game.Role) {
	seat := g.Combatant(role)
	if seat == nil {
		return
	}
	fields := logging.Fields{
		constants.LogFieldGameID: g.GameID,
		constants.LogFieldUserID: seat.UserID,
	}

	p, err := s.repo.GetPlayer(ctx, seat.UserID)
	if err != nil {
		logging.Error("finish: load profile", err, fields)
		return
	}

	outcome := progression.OutcomeFor(g.Winner, role)
	progression.AwardOutcome(p, outcome, g.Mode == game.ModeRanked)
	if err := s.repo.SavePlayer(ctx, p); err != nil {
		logging.Error("finish: save profile", err, fields)
		return
	}
	if err := s.repo.UpdateLeaderboard(ctx, p); err != nil {
		logging.Error("finish: leaderboard", err, fields)
	}

	rec := shadow.Record(seat, p.RankPoints, g.Winner, role)
	if err := s.repo.SaveShadow(ctx, &rec); err != nil {
		logging.Error("finish: save shadow", err, fields)
	}

	if err := s.repo.ClearBattleNotification(ctx, seat.UserID); err != nil {
		logging.Error("finish: clear notification", err, fields)
	}
	if err := s.repo.ClearInvitation(ctx, seat.UserID); err != nil {
		logging.Error("finish: clear invitation", err, fields)
	}
}
