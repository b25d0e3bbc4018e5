package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"shadow-duel/internal/constants"
	"shadow-duel/internal/game"
)

const (
	leaderboardCap = 100
	onlineListCap  = 100
)

// KVRepository implements Repository on top of a KVStore. Records are stored
// as JSON; the store's TTLs carry all lifetime semantics, so there is no
// separate cleanup path for games or invitations.
type KVRepository struct {
	store KVStore
	now   func() time.Time
}

func NewKVRepository(store KVStore) *KVRepository {
	return &KVRepository{store: store, now: time.Now}
}

// SetClock overrides the time source for tests.
func (r *KVRepository) SetClock(now func() time.Time) { r.now = now }

func (r *KVRepository) putJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return r.store.Put(ctx, key, b, ttl)
}

func (r *KVRepository) getJSON(ctx context.Context, key string, v interface{}) error {
	b, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

// --- games ---

func (r *KVRepository) GetGame(ctx context.Context, gameID string) (*game.GameState, error) {
	var g game.GameState
	if err := r.getJSON(ctx, gameKey(gameID), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *KVRepository) SaveGame(ctx context.Context, g *game.GameState, ttl time.Duration) error {
	g.UpdatedAt = r.now()
	return r.putJSON(ctx, gameKey(g.GameID), g, ttl)
}

func (r *KVRepository) DeleteGame(ctx context.Context, gameID string) error {
	return r.store.Delete(ctx, gameKey(gameID))
}

// --- players ---

func (r *KVRepository) GetPlayer(ctx context.Context, userID string) (*game.Player, error) {
	var p game.Player
	if err := r.getJSON(ctx, profileKey(userID), &p); err != nil {
		return nil, err
	}
	migrateProfile(&p)
	return &p, nil
}

func (r *KVRepository) SavePlayer(ctx context.Context, p *game.Player) error {
	p.LastActive = r.now()
	return r.putJSON(ctx, profileKey(p.UserID), p, 0)
}

// GetOrCreatePlayer loads a profile, creating a fresh one on first contact.
// Loaded profiles pass through migrateProfile so records written by older
// builds pick up fields added since.
func (r *KVRepository) GetOrCreatePlayer(ctx context.Context, userID, username string) (*game.Player, error) {
	p, err := r.GetPlayer(ctx, userID)
	if err == nil {
		if username != "" && p.Username != username {
			p.Username = username
			if err := r.SavePlayer(ctx, p); err != nil {
				return nil, err
			}
		}
		return p, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	now := r.now()
	p = &game.Player{
		UserID:             userID,
		Username:           username,
		Level:              1,
		Coins:              constants.StartingCoins,
		Achievements:       []string{},
		UnlockedCharacters: append([]game.CharacterType(nil), game.StartingCharacters...),
		UnlockedAbilities:  append([]string(nil), game.StartingAbilities...),
		CreatedAt:          now,
		LastActive:         now,
	}
	if err := r.SavePlayer(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func migrateProfile(p *game.Player) {
	if p.Level == 0 {
		p.Level = p.XP/constants.XPPerLevel + 1
	}
	if len(p.UnlockedCharacters) == 0 {
		p.UnlockedCharacters = append([]game.CharacterType(nil), game.StartingCharacters...)
	}
	if len(p.UnlockedAbilities) == 0 {
		p.UnlockedAbilities = append([]string(nil), game.StartingAbilities...)
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
}

// --- shadows ---

func (r *KVRepository) SaveShadow(ctx context.Context, s *game.ShadowData) error {
	key := shadowKey(s)
	if err := r.putJSON(ctx, key, s, constants.ShadowMaxAge); err != nil {
		return err
	}

	keys, err := r.shadowKeys(ctx)
	if err != nil {
		return err
	}
	keys = append(keys, key)
	if len(keys) > constants.ShadowListCap {
		drop := keys[:len(keys)-constants.ShadowListCap]
		keys = keys[len(keys)-constants.ShadowListCap:]
		if err := r.store.Delete(ctx, drop...); err != nil {
			return err
		}
	}
	return r.putJSON(ctx, shadowListKey, keys, 0)
}

func (r *KVRepository) GetShadows(ctx context.Context) ([]game.ShadowData, error) {
	keys, err := r.shadowKeys(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := r.now().Add(-constants.ShadowMaxAge)
	out := make([]game.ShadowData, 0, len(keys))
	for _, k := range keys {
		var s game.ShadowData
		if err := r.getJSON(ctx, k, &s); err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		if s.RecordedAt.Before(cutoff) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// CleanupShadows rewrites the shadow index, dropping entries whose record
// expired or aged out. Run periodically; staleness between runs is harmless
// because GetShadows filters too.
func (r *KVRepository) CleanupShadows(ctx context.Context) error {
	keys, err := r.shadowKeys(ctx)
	if err != nil {
		return err
	}
	cutoff := r.now().Add(-constants.ShadowMaxAge)
	kept := make([]string, 0, len(keys))
	var stale []string
	for _, k := range keys {
		var s game.ShadowData
		err := r.getJSON(ctx, k, &s)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return err
		}
		if s.RecordedAt.Before(cutoff) {
			stale = append(stale, k)
			continue
		}
		kept = append(kept, k)
	}
	if len(stale) > 0 {
		if err := r.store.Delete(ctx, stale...); err != nil {
			return err
		}
	}
	return r.putJSON(ctx, shadowListKey, kept, 0)
}

func (r *KVRepository) shadowKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.getJSON(ctx, shadowListKey, &keys)
	if err != nil && err != ErrNotFound {
		return nil, err
	}
	return keys, nil
}

// --- invitations ---

func (r *KVRepository) CreateInvitation(ctx context.Context, inviteeID string, inv *game.Invitation) error {
	return r.putJSON(ctx, invitationKey(inviteeID), inv, constants.InvitationTTL)
}

func (r *KVRepository) GetInvitation(ctx context.Context, userID string) (*game.Invitation, error) {
	var inv game.Invitation
	if err := r.getJSON(ctx, invitationKey(userID), &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *KVRepository) SetInvitationStatus(ctx context.Context, userID, status string) error {
	inv, err := r.GetInvitation(ctx, userID)
	if err != nil {
		return err
	}
	inv.Status = status
	return r.putJSON(ctx, invitationKey(userID), inv, constants.InvitationTTL)
}

func (r *KVRepository) ClearInvitation(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, invitationKey(userID))
}

// --- battle notifications ---

func (r *KVRepository) NotifyBattleActive(ctx context.Context, userID, gameID string) error {
	return r.store.Put(ctx, battleActiveKey(userID), []byte(gameID), constants.BattleActiveNoteTTL)
}

// TakeBattleActive delivers a pending battle notification and clears it, so
// each notification is seen once.
func (r *KVRepository) TakeBattleActive(ctx context.Context, userID string) (string, error) {
	b, err := r.store.Get(ctx, battleActiveKey(userID))
	if err != nil {
		return "", err
	}
	if err := r.store.Delete(ctx, battleActiveKey(userID)); err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *KVRepository) ClearBattleNotification(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, battleActiveKey(userID))
}

// --- presence ---

func (r *KVRepository) MarkOnline(ctx context.Context, userID string) error {
	if err := r.store.Put(ctx, onlineKey(userID), []byte("1"), constants.OnlineTTL); err != nil {
		return err
	}
	list, err := r.onlineList(ctx)
	if err != nil {
		return err
	}
	for _, id := range list {
		if id == userID {
			return nil
		}
	}
	list = append(list, userID)
	if len(list) > onlineListCap {
		list = list[len(list)-onlineListCap:]
	}
	return r.putJSON(ctx, onlineListKey, list, 0)
}

// OnlinePlayers returns users whose presence marker is still live and prunes
// the index of everyone else.
func (r *KVRepository) OnlinePlayers(ctx context.Context) ([]string, error) {
	list, err := r.onlineList(ctx)
	if err != nil {
		return nil, err
	}
	live := make([]string, 0, len(list))
	for _, id := range list {
		if _, err := r.store.Get(ctx, onlineKey(id)); err == ErrNotFound {
			continue
		} else if err != nil {
			return nil, err
		}
		live = append(live, id)
	}
	if len(live) != len(list) {
		if err := r.putJSON(ctx, onlineListKey, live, 0); err != nil {
			return nil, err
		}
	}
	return live, nil
}

func (r *KVRepository) onlineList(ctx context.Context) ([]string, error) {
	var list []string
	err := r.getJSON(ctx, onlineListKey, &list)
	if err != nil && err != ErrNotFound {
		return nil, err
	}
	return list, nil
}

// --- stats ---

func (r *KVRepository) IncrementBattlesToday(ctx context.Context) (int64, error) {
	return r.store.Incr(ctx, battlesTodayKey(r.now()), constants.BattleStatsTTL)
}

// --- leaderboard ---

func (r *KVRepository) GetLeaderboard(ctx context.Context, kind string) ([]game.LeaderboardEntry, error) {
	var entries []game.LeaderboardEntry
	err := r.getJSON(ctx, leaderboardKey(kind), &entries)
	if err == ErrNotFound {
		return []game.LeaderboardEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateLeaderboard upserts a player's row into the global board, keeping it
// sorted by rank points then wins and capped.
func (r *KVRepository) UpdateLeaderboard(ctx context.Context, p *game.Player) error {
	entries, err := r.GetLeaderboard(ctx, "global")
	if err != nil {
		return err
	}
	row := game.LeaderboardEntry{
		UserID:     p.UserID,
		Username:   p.Username,
		Level:      p.Level,
		RankPoints: p.RankPoints,
		Wins:       p.Wins,
	}
	found := false
	for i := range entries {
		if entries[i].UserID == p.UserID {
			entries[i] = row
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, row)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].RankPoints != entries[j].RankPoints {
			return entries[i].RankPoints > entries[j].RankPoints
		}
		return entries[i].Wins > entries[j].Wins
	})
	if len(entries) > leaderboardCap {
		entries = entries[:leaderboardCap]
	}
	return r.putJSON(ctx, leaderboardKey("global"), entries, 0)
}
