package shadow

import (
	"testing"
	"time"

	"shadow-duel/internal/game"
)

func recordedShadow(abilities ...string) *game.ShadowData {
	moves := make([]game.BattleMove, len(abilities))
	for i, a := range abilities {
		moves[i] = game.BattleMove{Turn: i + 1, Player: game.RolePlayer1, Ability: a}
	}
	return &game.ShadowData{
		OriginalUsername:  "rival",
		OriginalCharacter: game.CharacterMage,
		OriginalRank:      120,
		RecordedAt:        time.Now(),
		Moves:             moves,
		BattleResult:      "win",
	}
}

func TestRecordRenumbersMoves(t *testing.T) {
	p := &game.BattlePlayer{
		Username:  "alice",
		Character: game.CharacterRanger,
		Moves: []game.BattleMove{
			{Turn: 4, Player: game.RolePlayer2, Ability: game.AbilityHeal},
			{Turn: 4, Player: game.RolePlayer2, Ability: game.AbilityBasicAttack},
		},
	}

	s := Record(p, 75, game.WinnerPlayer2, game.RolePlayer2)

	if s.BattleResult != "win" {
		t.Fatalf("result = %q, want win", s.BattleResult)
	}
	if s.OriginalRank != 75 {
		t.Fatalf("rank = %d, want 75", s.OriginalRank)
	}
	for i, m := range s.Moves {
		if m.Turn != i+1 {
			t.Fatalf("move %d turn = %d, want %d", i, m.Turn, i+1)
		}
	}
}

func TestRecordLossAndDraw(t *testing.T) {
	p := &game.BattlePlayer{Username: "bob", Character: game.CharacterKnight}

	if s := Record(p, 0, game.WinnerPlayer1, game.RolePlayer2); s.BattleResult != "loss" {
		t.Fatalf("result = %q, want loss", s.BattleResult)
	}
	if s := Record(p, 0, game.WinnerDraw, game.RolePlayer1); s.BattleResult != "draw" {
		t.Fatalf("result = %q, want draw", s.BattleResult)
	}
}

func TestNextMoveCursor(t *testing.T) {
	s := recordedShadow(game.AbilityFireball, game.AbilityDefend)

	if got := NextMove(s, 0); got != game.AbilityFireball {
		t.Fatalf("turn 0 move = %q, want fireball", got)
	}
	if got := NextMove(s, 1); got != game.AbilityDefend {
		t.Fatalf("turn 1 move = %q, want defend", got)
	}
	if got := NextMove(s, 2); got != "" {
		t.Fatalf("exhausted transcript returned %q", got)
	}
	if got := NextMove(nil, 0); got != "" {
		t.Fatalf("nil shadow returned %q", got)
	}
}

func TestFallbackMoveHeuristic(t *testing.T) {
	p := &game.BattlePlayer{HP: 20, Energy: 50}
	if got := FallbackMove(p); got != game.AbilityHeal {
		t.Fatalf("low HP fallback = %q, want heal", got)
	}
	p = &game.BattlePlayer{HP: 80, Energy: 10}
	if got := FallbackMove(p); got != game.AbilityDefend {
		t.Fatalf("low energy fallback = %q, want defend", got)
	}
	p = &game.BattlePlayer{HP: 80, Energy: 50}
	if got := FallbackMove(p); got != game.AbilityBasicAttack {
		t.Fatalf("default fallback = %q, want basic_attack", got)
	}
}

func TestValid(t *testing.T) {
	if !Valid(recordedShadow(game.AbilityRest)) {
		t.Fatal("complete shadow reported invalid")
	}
	s := recordedShadow(game.AbilityRest)
	s.OriginalUsername = ""
	if Valid(s) {
		t.Fatal("shadow without a username reported valid")
	}
	if Valid(nil) {
		t.Fatal("nil shadow reported valid")
	}
}

func TestDifficulty(t *testing.T) {
	s := recordedShadow(game.AbilityRest)

	s.OriginalRank = 320
	if got := Difficulty(s, 100); got != "legendary" {
		t.Fatalf("difficulty = %q, want legendary", got)
	}
	s.OriginalRank = 120
	if got := Difficulty(s, 100); got != "easy" {
		t.Fatalf("difficulty = %q, want easy", got)
	}
	s.OriginalRank = 220
	if got := Difficulty(s, 100); got != "medium" {
		t.Fatalf("difficulty = %q, want medium", got)
	}
	s.OriginalRank = 0
	if got := Difficulty(s, 200); got != "hard" {
		t.Fatalf("difficulty = %q, want hard", got)
	}
}

func TestBattlePlayerSeatsShadow(t *testing.T) {
	s := recordedShadow(game.AbilityRest)
	seat := BattlePlayer(s)

	char := game.CharacterByID(game.CharacterMage)
	if seat.HP != char.BaseHP || seat.Energy != char.BaseEnergy {
		t.Fatalf("seat stats = %d/%d, want %d/%d", seat.HP, seat.Energy, char.BaseHP, char.BaseEnergy)
	}
	if seat.Username != "Shadow of rival" {
		t.Fatalf("username = %q", seat.Username)
	}
	if len(seat.Abilities) == 0 {
		t.Fatal("seat has no abilities")
	}
}

func TestGenericShadowIsValid(t *testing.T) {
	s := Generic()
	if !Valid(s) {
		t.Fatal("generic shadow must be valid")
	}
	if got := NextMove(s, 0); got != "" {
		t.Fatalf("generic transcript should be empty, got %q", got)
	}
}
