package constants

import "time"

// Environment variable keys
const (
	EnvConfigPath    = "ARENA_CONFIG"
	EnvRedisAddr     = "ARENA_REDIS_ADDR"
	EnvRedisPassword = "ARENA_REDIS_PASSWORD"
	EnvRedisDB       = "ARENA_REDIS_DB"
)

// Identity headers. Platform session handling lives outside this service;
// the gateway forwards the resolved user on every request.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUsername = "X-Username"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteVersion       = "/version"
	RoutePlayer        = "/player"
	RouteLeaderboard   = "/leaderboard"
	RouteNotifications = "/notifications"
	RouteBattleStart   = "/battle/start"
	RouteBattleMove    = "/battle/move"
	RouteBattleByID    = "/battle/:gameID"
	RouteBattleAccept  = "/battle/:gameID/accept"
	RouteBattleDecline = "/battle/:gameID/decline"
	RouteBattleTimeout = "/battle/:gameID/timeout"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrAuthRequired        = "Authentication required"
	ErrInvalidGameID       = "Invalid game ID"
	ErrGameNotFound        = "Game not found"
	ErrPlayerNotFound      = "Player not found"
	ErrNotInThisGame       = "Player not in this game"
	ErrNotYourTurn         = "Not your turn"
	ErrGameNotActive       = "Game is not active"
	ErrUnknownAbility      = "Unknown ability"
	ErrAbilityNotAvailable = "Ability not available"
	ErrInvalidCharacter    = "Invalid character"
	ErrInvalidMode         = "Invalid mode"
	ErrNoInvitation        = "No pending invitation"
	ErrStoreFailure        = "Storage failure"
)

// Logging field names
const (
	LogFieldGameID  = "game_id"
	LogFieldUserID  = "user_id"
	LogFieldAbility = "ability"
	LogFieldTurn    = "turn"
	LogFieldWinner  = "winner"
	LogFieldMode    = "mode"
	LogFieldAddr    = "addr"
	LogFieldElapsed = "elapsed_ms"
	LogFieldPenalty = "penalty"
)

// Battle tuning. These mirror the product configuration and are not meant to
// be changed per-deployment; deployment-level knobs live in config.Config.
const (
	TurnTimeLimit    = 10 * time.Second
	TimeoutHPPenalty = 5

	ActiveGameTTL         = 5 * time.Minute
	FinishedGameRetention = 30 * time.Second
	InvitationTTL         = 10 * time.Minute
	BattleActiveNoteTTL   = 5 * time.Minute
	OnlineTTL             = 5 * time.Minute

	ShadowMaxAge  = 7 * 24 * time.Hour
	ShadowListCap = 100

	BattleStatsTTL = 48 * time.Hour

	XPPerWin   = 50
	XPPerLoss  = 20
	XPPerDraw  = 30
	XPPerLevel = 100

	CoinsPerWin  = 100
	CoinsPerLoss = 50
	CoinsPerDraw = 75

	RankPointsWin  = 25
	RankPointsLoss = -15

	StartingCoins = 500

	MatchRankWindow  = 50
	ShadowRankWindow = 100
	ShadowRecentAge  = 24 * time.Hour
)
