package storage

import (
	"time"

	"shadow-duel/internal/game"
)

// Key layout. Every persisted record lives under one of these prefixes so
// operators can reason about the keyspace from redis-cli.
func gameKey(gameID string) string         { return "game:" + gameID }
func profileKey(userID string) string      { return "profile:" + userID }
func invitationKey(userID string) string   { return "invitation:" + userID }
func battleActiveKey(userID string) string { return "battle_active:" + userID }
func onlineKey(userID string) string       { return "player:online:" + userID }
func leaderboardKey(kind string) string    { return "leaderboard:" + kind }
func shadowKey(s *game.ShadowData) string {
	return "shadow:" + s.OriginalUsername + ":" + s.RecordedAt.UTC().Format(time.RFC3339Nano)
}

const (
	shadowListKey  = "shadows:list"
	onlineListKey  = "players:online_list"
	statsKeyPrefix = "stats:"
)

func battlesTodayKey(now time.Time) string {
	return statsKeyPrefix + "battles:" + now.UTC().Format("2006-01-02")
}
