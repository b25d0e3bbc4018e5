package matchmaking

import (
	"context"
	"time"

	"shadow-duel/internal/constants"
	"shadow-duel/internal/game"
	"shadow-duel/internal/shadow"
	"shadow-duel/internal/storage"
)

// Match is the outcome of opponent selection. Exactly one of OpponentID and
// Shadow is set: a live opponent's user id, or a recorded shadow to replay.
type Match struct {
	OpponentID string
	Shadow     *game.ShadowData
}

// FindOpponent picks an opponent for the seeker. Live players online are
// preferred; when none qualify the match falls back to a recorded shadow,
// and finally to the built-in training shadow. Selection never leaves a
// seeker without an opponent.
func FindOpponent(ctx context.Context, repo storage.Repository, seeker *game.Player, mode game.Mode) (Match, error) {
	opponentID, err := findLiveOpponent(ctx, repo, seeker, mode)
	if err != nil {
		return Match{}, err
	}
	if opponentID != "" {
		return Match{OpponentID: opponentID}, nil
	}

	s, err := findShadow(ctx, repo, seeker)
	if err != nil {
		return Match{}, err
	}
	return Match{Shadow: s}, nil
}

// findLiveOpponent scans online players. Ranked mode requires the opponent's
// rank within the match window; quick match takes anyone.
func findLiveOpponent(ctx context.Context, repo storage.Repository, seeker *game.Player, mode game.Mode) (string, error) {
	online, err := repo.OnlinePlayers(ctx)
	if err != nil {
		return "", err
	}
	for _, id := range online {
		if id == seeker.UserID {
			continue
		}
		if mode == game.ModeQuickMatch {
			return id, nil
		}
		p, err := repo.GetPlayer(ctx, id)
		if err == storage.ErrNotFound {
			continue
		}
		if err != nil {
			return "", err
		}
		if abs(p.RankPoints-seeker.RankPoints) <= constants.MatchRankWindow {
			return id, nil
		}
	}
	return "", nil
}

// findShadow picks the best recorded shadow near the seeker's rank. Shadows
// recorded in the last day are preferred so matches feel current; within a
// candidate pool the closest rank wins. The seeker's own shadows are skipped.
func findShadow(ctx context.Context, repo storage.Repository, seeker *game.Player) (*game.ShadowData, error) {
	shadows, err := repo.GetShadows(ctx)
	if err != nil {
		return nil, err
	}

	var pool []game.ShadowData
	for _, s := range shadows {
		if !shadow.Valid(&s) {
			continue
		}
		if s.OriginalUsername == seeker.Username {
			continue
		}
		if abs(s.OriginalRank-seeker.RankPoints) > constants.ShadowRankWindow {
			continue
		}
		pool = append(pool, s)
	}
	if len(pool) == 0 {
		return shadow.Generic(), nil
	}

	var recent []game.ShadowData
	for _, s := range pool {
		if s.RecordedAt.After(timeNow().Add(-constants.ShadowRecentAge)) {
			recent = append(recent, s)
		}
	}
	if len(recent) > 0 {
		pool = recent
	}

	best := pool[0]
	for _, s := range pool[1:] {
		if abs(s.OriginalRank-seeker.RankPoints) < abs(best.OriginalRank-seeker.RankPoints) {
			best = s
		}
	}
	return &best, nil
}

// timeNow is swapped out by tests.
var timeNow = time.Now

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
