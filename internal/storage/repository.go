package storage

import (
	"context"
	"time"

	"shadow-duel/internal/game"
)

// Repository is the typed persistence boundary the orchestrator talks to.
// Implementations own serialization and key layout; callers never see keys.
type Repository interface {
	GetGame(ctx context.Context, gameID string) (*game.GameState, error)
	SaveGame(ctx context.Context, g *game.GameState, ttl time.Duration) error
	DeleteGame(ctx context.Context, gameID string) error

	GetPlayer(ctx context.Context, userID string) (*game.Player, error)
	SavePlayer(ctx context.Context, p *game.Player) error
	GetOrCreatePlayer(ctx context.Context, userID, username string) (*game.Player, error)

	SaveShadow(ctx context.Context, s *game.ShadowData) error
	GetShadows(ctx context.Context) ([]game.ShadowData, error)
	CleanupShadows(ctx context.Context) error

	CreateInvitation(ctx context.Context, inviteeID string, inv *game.Invitation) error
	GetInvitation(ctx context.Context, userID string) (*game.Invitation, error)
	SetInvitationStatus(ctx context.Context, userID, status string) error
	ClearInvitation(ctx context.Context, userID string) error

	NotifyBattleActive(ctx context.Context, userID, gameID string) error
	TakeBattleActive(ctx context.Context, userID string) (string, error)
	ClearBattleNotification(ctx context.Context, userID string) error

	MarkOnline(ctx context.Context, userID string) error
	OnlinePlayers(ctx context.Context) ([]string, error)

	IncrementBattlesToday(ctx context.Context) (int64, error)

	GetLeaderboard(ctx context.Context, kind string) ([]game.LeaderboardEntry, error)
	UpdateLeaderboard(ctx context.Context, p *game.Player) error
}
