package service

import (
	"context"

	"shadow-duel/internal/engine"
	"shadow-duel/internal/game"
	"shadow-duel/internal/logging"
	"shadow-duel/internal/shadow"
	"shadow-duel/internal/storage"
)

// GameView is a battle state enriched with what the caller can do next, the
// shadow's difficulty rating when one is seated, and a stats summary once
// the battle is over.
type GameView struct {
	*game.GameState
	AvailableAbilities []string          `json:"available_abilities"`
	ShadowDifficulty   string            `json:"shadow_difficulty,omitempty"`
	Stats              *game.BattleStats `json:"stats,omitempty"`
}

// GetGame returns the battle for one of its participants, with the ability
// list the caller's seat can legally use this turn.
func (s *Service) GetGame(ctx context.Context, userID, gameID string) (*GameView, error) {
	g, err := s.repo.GetGame(ctx, gameID)
	if err == storage.ErrNotFound {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	role := g.RoleOf(userID)
	if role == "" {
		return nil, ErrPlayerNotInGame
	}
	seat := g.Combatant(role)

	view := &GameView{
		GameState:          g,
		AvailableAbilities: engine.AvailableAbilities(seat),
	}
	if g.IsShadowMatch && g.ShadowData != nil {
		if p, err := s.repo.GetPlayer(ctx, userID); err == nil {
			view.ShadowDifficulty = shadow.Difficulty(g.ShadowData, p.RankPoints)
		}
	}
	if g.Status == game.StatusFinished {
		view.Stats = &game.BattleStats{
			TotalDamageDealt: seat.TotalDamageDealt,
			TotalDamageTaken: seat.TotalDamageTaken,
			TurnsSurvived:    g.TurnNumber,
		}
	}
	return view, nil
}

// GetProfile loads (or creates) the caller's profile and refreshes their
// presence marker.
func (s *Service) GetProfile(ctx context.Context, userID, username string) (*game.Player, error) {
	p, err := s.repo.GetOrCreatePlayer(ctx, userID, username)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkOnline(ctx, userID); err != nil {
		logging.Error("profile: mark online", err, nil)
	}
	return p, nil
}

// Leaderboard returns the global standings.
func (s *Service) Leaderboard(ctx context.Context) ([]game.LeaderboardEntry, error) {
	return s.repo.GetLeaderboard(ctx, "global")
}

// Notifications is everything waiting for a player: a pending invitation
// and/or a battle that just went active. The battle notification is cleared
// on delivery.
type Notifications struct {
	Invitation   *game.Invitation `json:"invitation,omitempty"`
	ActiveGameID string           `json:"active_game_id,omitempty"`
}

func (s *Service) GetNotifications(ctx context.Context, userID string) (*Notifications, error) {
	out := &Notifications{}

	inv, err := s.repo.GetInvitation(ctx, userID)
	if err != nil && err != storage.ErrNotFound {
		return nil, err
	}
	if err == nil && inv.Status == "pending" {
		out.Invitation = inv
	}

	gameID, err := s.repo.TakeBattleActive(ctx, userID)
	if err != nil && err != storage.ErrNotFound {
		return nil, err
	}
	out.ActiveGameID = gameID

	if err := s.repo.MarkOnline(ctx, userID); err != nil {
		logging.Error("notifications: mark online", err, nil)
	}
	return out, nil
}

// RunMaintenance prunes expired shadows. Wired to the periodic scheduler.
func (s *Service) RunMaintenance(ctx context.Context) error {
	return s.repo.CleanupShadows(ctx)
}
