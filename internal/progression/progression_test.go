package progression

import (
	"testing"

	"shadow-duel/internal/constants"
	"shadow-duel/internal/game"
)

func newProfile() *game.Player {
	return &game.Player{
		UserID:             "u1",
		Username:           "alice",
		Level:              1,
		Coins:              constants.StartingCoins,
		UnlockedCharacters: append([]game.CharacterType(nil), game.StartingCharacters...),
		UnlockedAbilities:  append([]string(nil), game.StartingAbilities...),
	}
}

func TestOutcomeFor(t *testing.T) {
	if got := OutcomeFor(game.WinnerPlayer1, game.RolePlayer1); got != OutcomeWin {
		t.Fatalf("got %q, want win", got)
	}
	if got := OutcomeFor(game.WinnerPlayer1, game.RolePlayer2); got != OutcomeLoss {
		t.Fatalf("got %q, want loss", got)
	}
	if got := OutcomeFor(game.WinnerDraw, game.RolePlayer2); got != OutcomeDraw {
		t.Fatalf("got %q, want draw", got)
	}
}

func TestAwardWin(t *testing.T) {
	p := newProfile()
	award := AwardOutcome(p, OutcomeWin, true)

	if award.XPGained != constants.XPPerWin || p.XP != constants.XPPerWin {
		t.Fatalf("XP = %d, want %d", p.XP, constants.XPPerWin)
	}
	if p.Coins != constants.StartingCoins+constants.CoinsPerWin {
		t.Fatalf("coins = %d", p.Coins)
	}
	if p.Wins != 1 || p.CurrentStreak != 1 || p.BestStreak != 1 || p.TotalBattles != 1 {
		t.Fatalf("counters = %+v", p)
	}
	if award.RankChange != constants.RankPointsWin || p.RankPoints != constants.RankPointsWin {
		t.Fatalf("rank = %d, change %d", p.RankPoints, award.RankChange)
	}
}

func TestAwardLossBreaksStreak(t *testing.T) {
	p := newProfile()
	p.CurrentStreak = 4
	p.BestStreak = 4

	AwardOutcome(p, OutcomeLoss, true)

	if p.CurrentStreak != 0 {
		t.Fatalf("streak = %d, want 0", p.CurrentStreak)
	}
	if p.BestStreak != 4 {
		t.Fatalf("best streak = %d, want 4 preserved", p.BestStreak)
	}
	if p.Losses != 1 {
		t.Fatalf("losses = %d", p.Losses)
	}
}

func TestAwardDrawTouchesNoStreak(t *testing.T) {
	p := newProfile()
	p.CurrentStreak = 2

	award := AwardOutcome(p, OutcomeDraw, true)

	if p.CurrentStreak != 2 || p.Wins != 0 || p.Losses != 0 {
		t.Fatalf("draw changed win/loss state: %+v", p)
	}
	if award.XPGained != constants.XPPerDraw || award.RankChange != 0 {
		t.Fatalf("award = %+v", award)
	}
}

func TestRankFloorsAtZero(t *testing.T) {
	p := newProfile()
	p.RankPoints = 10

	change := UpdateRankPoints(p, OutcomeLoss)

	if p.RankPoints != 0 {
		t.Fatalf("rank = %d, want 0", p.RankPoints)
	}
	if change != -10 {
		t.Fatalf("reported change = %d, want clamped -10", change)
	}
}

func TestUnrankedSkipsRankPoints(t *testing.T) {
	p := newProfile()
	award := AwardOutcome(p, OutcomeWin, false)

	if p.RankPoints != 0 || award.RankChange != 0 {
		t.Fatalf("unranked battle moved rank: %d", p.RankPoints)
	}
}

func TestLevelUpGrantsUnlocks(t *testing.T) {
	p := newProfile()
	p.XP = 480 // two wins away from level 6
	p.Level = 5

	award := AwardOutcome(p, OutcomeWin, false)

	if !award.LeveledUp || award.NewLevel != 6 || p.Level != 6 {
		t.Fatalf("award = %+v, level = %d", award, p.Level)
	}
	if !hasCharacter(p, game.CharacterAssassin) {
		t.Fatal("assassin should unlock at level 5+")
	}
	if !hasAbility(p, game.AbilityPowerStrike) || !hasAbility(p, game.AbilityEnergyDrain) {
		t.Fatalf("abilities for level 6 missing: %v", p.UnlockedAbilities)
	}
	if hasAbility(p, game.AbilityShieldBreak) {
		t.Fatal("shield_break unlocks at 7, not yet")
	}
}

func TestNoLevelUpNoUnlockScan(t *testing.T) {
	p := newProfile()
	award := AwardOutcome(p, OutcomeLoss, false)

	if award.LeveledUp || len(award.UnlockedCharacters) != 0 || len(award.UnlockedAbilities) != 0 {
		t.Fatalf("unexpected unlocks: %+v", award)
	}
}
