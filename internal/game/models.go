package game

import "time"

// Mode is the battle mode chosen by the initiating player.
type Mode string

const (
	ModeQuickMatch Mode = "quick_match"
	ModeRanked     Mode = "ranked"
)

// Status is the lifecycle stage of a match. Transitions are one-way:
// waiting -> active -> finished.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Role identifies one of the two seats in a match.
type Role string

const (
	RolePlayer1 Role = "player1"
	RolePlayer2 Role = "player2"
)

// Winner is the declared outcome of a finished match.
type Winner string

const (
	WinnerPlayer1 Winner = "player1"
	WinnerPlayer2 Winner = "player2"
	WinnerDraw    Winner = "draw"
	WinnerNone    Winner = ""
)

// StatusEffectType tags a timed modifier attached to a combatant.
type StatusEffectType string

const (
	EffectPoison  StatusEffectType = "poison"
	EffectBerserk StatusEffectType = "berserk"
	EffectCounter StatusEffectType = "counter"
	EffectDefense StatusEffectType = "defense"
)

// StatusEffect is a timed modifier. Value carries a per-tick magnitude for
// effects that need one (poison); it is zero otherwise. Multiple instances
// of the same type may coexist.
type StatusEffect struct {
	Type  StatusEffectType `json:"type"`
	Turns int              `json:"turns"`
	Value int              `json:"value,omitempty"`
}

// BattleMove is one entry in a combatant's append-only move transcript.
type BattleMove struct {
	Turn      int       `json:"turn"`
	Player    Role      `json:"player"`
	Ability   string    `json:"ability"`
	Damage    int       `json:"damage,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// BattleLogEntry is a human-readable line in the match's battle log.
type BattleLogEntry struct {
	Turn      int       `json:"turn"`
	Message   string    `json:"message"`
	Type      LogType   `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// LogType categorizes battle log entries for the client.
type LogType string

const (
	LogAction LogType = "action"
	LogDamage LogType = "damage"
	LogHeal   LogType = "heal"
	LogStatus LogType = "status"
)

// BattlePlayer is one side's in-battle fighter state.
type BattlePlayer struct {
	UserID    string        `json:"user_id"`
	Username  string        `json:"username"`
	Character CharacterType `json:"character"`

	HP        int `json:"hp"`
	MaxHP     int `json:"max_hp"`
	Energy    int `json:"energy"`
	MaxEnergy int `json:"max_energy"`

	StatusEffects []StatusEffect `json:"status_effects"`
	Abilities     []string       `json:"abilities"`
	Moves         []BattleMove   `json:"moves"`

	TotalDamageDealt int `json:"total_damage_dealt"`
	TotalDamageTaken int `json:"total_damage_taken"`
}

// GameState is the full authoritative record of one battle. Player2 is a
// pointer because a malformed or legacy record may lack it; every started
// match has both seats filled.
type GameState struct {
	GameID string `json:"game_id"`
	Mode   Mode   `json:"mode"`

	Player1 BattlePlayer  `json:"player1"`
	Player2 *BattlePlayer `json:"player2"`

	IsShadowMatch bool        `json:"is_shadow_match"`
	ShadowData    *ShadowData `json:"shadow_data,omitempty"`

	CurrentTurn Role   `json:"current_turn"`
	TurnNumber  int    `json:"turn_number"`
	Status      Status `json:"status"`
	Winner      Winner `json:"winner,omitempty"`

	TurnStartedAt time.Time `json:"turn_started_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	BattleLog []BattleLogEntry `json:"battle_log"`
}

// Combatant returns the seat for the given role, or nil when absent.
func (g *GameState) Combatant(role Role) *BattlePlayer {
	switch role {
	case RolePlayer1:
		return &g.Player1
	case RolePlayer2:
		return g.Player2
	}
	return nil
}

// RoleOf returns which seat the given user occupies, or "" when neither.
func (g *GameState) RoleOf(userID string) Role {
	if g.Player1.UserID == userID {
		return RolePlayer1
	}
	if g.Player2 != nil && g.Player2.UserID == userID {
		return RolePlayer2
	}
	return ""
}

// ShadowData is an immutable recording of a past combatant's battle,
// replayed as a scripted opponent. Never mutated after recording.
type ShadowData struct {
	OriginalUsername  string        `json:"original_username"`
	OriginalCharacter CharacterType `json:"original_character"`
	OriginalRank      int           `json:"original_rank"`
	RecordedAt        time.Time     `json:"recorded_at"`
	Moves             []BattleMove  `json:"moves"`
	BattleResult      string        `json:"battle_result"` // win | loss | draw
}

// Player is the persistent profile behind a user, updated by progression
// after every finished battle.
type Player struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`

	Level      int `json:"level"`
	XP         int `json:"xp"`
	RankPoints int `json:"rank_points"`

	TotalBattles  int `json:"total_battles"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	BestStreak    int `json:"best_streak"`
	CurrentStreak int `json:"current_streak"`
	Coins         int `json:"coins"`

	Achievements       []string        `json:"achievements"`
	UnlockedCharacters []CharacterType `json:"unlocked_characters"`
	UnlockedAbilities  []string        `json:"unlocked_abilities"`

	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// Invitation is a pending battle invite delivered to the opponent of a
// freshly created PvP match.
type Invitation struct {
	GameID          string    `json:"game_id"`
	PlayerRole      Role      `json:"player_role"`
	InviterUsername string    `json:"inviter_username"`
	Status          string    `json:"status"` // pending | accepted | declined
	Timestamp       time.Time `json:"timestamp"`
}

// LeaderboardEntry is one row of a stored leaderboard.
type LeaderboardEntry struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Level      int    `json:"level"`
	RankPoints int    `json:"rank_points"`
	Wins       int    `json:"wins"`
}

// BattleStats summarizes a completed battle for the initiating player.
type BattleStats struct {
	TotalDamageDealt int `json:"total_damage_dealt"`
	TotalDamageTaken int `json:"total_damage_taken"`
	TurnsSurvived    int `json:"turns_survived"`
}
