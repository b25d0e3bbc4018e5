// Package shadow records finished battles as replayable transcripts and
// drives the scripted "shadow" opponent from them.
package shadow

import (
	"time"

	"shadow-duel/internal/game"
)

// Record captures a combatant's finished battle as an immutable shadow.
// Rank is read from the profile at recording time so later rank changes do
// not retroactively reclassify old shadows.
func Record(p *game.BattlePlayer, rankPoints int, result game.Winner, role game.Role) game.ShadowData {
	moves := make([]game.BattleMove, len(p.Moves))
	for i, m := range p.Moves {
		moves[i] = game.BattleMove{
			Turn:      i + 1,
			Player:    game.RolePlayer1,
			Ability:   m.Ability,
			Damage:    m.Damage,
			Timestamp: m.Timestamp,
		}
	}
	result2 := "loss"
	switch {
	case result == game.WinnerDraw:
		result2 = "draw"
	case game.Role(result) == role:
		result2 = "win"
	}
	return game.ShadowData{
		OriginalUsername:  p.Username,
		OriginalCharacter: p.Character,
		OriginalRank:      rankPoints,
		RecordedAt:        time.Now(),
		Moves:             moves,
		BattleResult:      result2,
	}
}

// NextMove returns the transcript ability for the given zero-based turn
// index. The cursor is derived from the turn number, never stored: the
// shadow has no mutable state. An exhausted transcript returns "".
func NextMove(s *game.ShadowData, turnIndex int) string {
	if s == nil {
		return ""
	}
	if turnIndex >= 0 && turnIndex < len(s.Moves) {
		return s.Moves[turnIndex].Ability
	}
	return ""
}

// FallbackMove is the reactive heuristic used when the transcript is
// exhausted or the scripted move is no longer affordable: heal when hurt,
// defend when drained, otherwise swing.
func FallbackMove(self *game.BattlePlayer) string {
	if self.HP < 30 {
		return game.AbilityHeal
	}
	if self.Energy < 20 {
		return game.AbilityDefend
	}
	return game.AbilityBasicAttack
}

// Valid reports whether a stored shadow has everything needed to fight.
func Valid(s *game.ShadowData) bool {
	return s != nil && s.OriginalUsername != "" && !s.RecordedAt.IsZero() &&
		s.OriginalCharacter != "" && s.Moves != nil && s.BattleResult != ""
}

// Difficulty rates a shadow against the challenger's rank.
func Difficulty(s *game.ShadowData, playerRank int) string {
	if s.OriginalRank > playerRank+200 {
		return "legendary"
	}
	diff := s.OriginalRank - playerRank
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff < 50:
		return "easy"
	case diff < 150:
		return "medium"
	}
	return "hard"
}

// BattlePlayer seats a shadow as the second combatant of a match.
func BattlePlayer(s *game.ShadowData) game.BattlePlayer {
	char := game.CharacterByID(s.OriginalCharacter)
	return game.BattlePlayer{
		UserID:        "shadow_" + s.OriginalUsername + "_" + s.RecordedAt.UTC().Format("20060102150405"),
		Username:      "Shadow of " + s.OriginalUsername,
		Character:     char.ID,
		HP:            char.BaseHP,
		MaxHP:         char.BaseHP,
		Energy:        char.BaseEnergy,
		MaxEnergy:     char.BaseEnergy,
		StatusEffects: []game.StatusEffect{},
		Abilities:     game.AbilitiesForCharacter(char.ID),
		Moves:         []game.BattleMove{},
	}
}

// Generic builds the last-resort training opponent when no recorded shadow
// is eligible. Its transcript is empty, so the fallback heuristic drives
// every move.
func Generic() *game.ShadowData {
	return &game.ShadowData{
		OriginalUsername:  "Arena Sentinel",
		OriginalCharacter: game.CharacterKnight,
		RecordedAt:        time.Now(),
		Moves:             []game.BattleMove{},
		BattleResult:      "draw",
	}
}
