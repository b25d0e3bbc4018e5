// Package progression applies battle outcomes to persistent profiles:
// experience, levels, unlocks, coins, streaks and rank points.
package progression

import (
	"shadow-duel/internal/constants"
	"shadow-duel/internal/game"
)

// Outcome is a battle result from one combatant's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// OutcomeFor translates a match winner into the outcome seen from a seat.
func OutcomeFor(winner game.Winner, role game.Role) Outcome {
	switch {
	case winner == game.WinnerDraw:
		return OutcomeDraw
	case game.Role(winner) == role:
		return OutcomeWin
	}
	return OutcomeLoss
}

// Award summarizes what one battle granted a profile.
type Award struct {
	Outcome            Outcome              `json:"outcome"`
	XPGained           int                  `json:"xp_gained"`
	CoinsGained        int                  `json:"coins_gained"`
	RankChange         int                  `json:"rank_change"`
	LeveledUp          bool                 `json:"leveled_up"`
	NewLevel           int                  `json:"new_level"`
	UnlockedCharacters []game.CharacterType `json:"unlocked_characters,omitempty"`
	UnlockedAbilities  []string             `json:"unlocked_abilities,omitempty"`
}

// AwardOutcome mutates the profile for one finished battle and reports what
// changed. Rank points only move in ranked mode; everything else applies to
// every battle, shadow matches included.
func AwardOutcome(p *game.Player, outcome Outcome, ranked bool) Award {
	award := Award{Outcome: outcome}

	switch outcome {
	case OutcomeWin:
		award.XPGained = constants.XPPerWin
		award.CoinsGained = constants.CoinsPerWin
		p.Wins++
		p.CurrentStreak++
		if p.CurrentStreak > p.BestStreak {
			p.BestStreak = p.CurrentStreak
		}
	case OutcomeLoss:
		award.XPGained = constants.XPPerLoss
		award.CoinsGained = constants.CoinsPerLoss
		p.Losses++
		p.CurrentStreak = 0
	case OutcomeDraw:
		award.XPGained = constants.XPPerDraw
		award.CoinsGained = constants.CoinsPerDraw
	}

	p.TotalBattles++
	p.XP += award.XPGained
	p.Coins += award.CoinsGained

	oldLevel := p.Level
	p.Level = p.XP/constants.XPPerLevel + 1
	if p.Level > oldLevel {
		award.LeveledUp = true
		award.NewLevel = p.Level
		award.UnlockedCharacters, award.UnlockedAbilities = applyUnlocks(p)
	}

	if ranked {
		award.RankChange = UpdateRankPoints(p, outcome)
	}
	return award
}

// UpdateRankPoints shifts rank for a ranked outcome. Rank never drops below
// zero; the clamped delta is what gets reported.
func UpdateRankPoints(p *game.Player, outcome Outcome) int {
	delta := 0
	switch outcome {
	case OutcomeWin:
		delta = constants.RankPointsWin
	case OutcomeLoss:
		delta = constants.RankPointsLoss
	}
	before := p.RankPoints
	p.RankPoints += delta
	if p.RankPoints < 0 {
		p.RankPoints = 0
	}
	return p.RankPoints - before
}

// applyUnlocks grants everything the profile's level now qualifies for.
func applyUnlocks(p *game.Player) ([]game.CharacterType, []string) {
	var chars []game.CharacterType
	for id, c := range game.Characters {
		if p.Level >= c.UnlockLevel && !hasCharacter(p, id) {
			p.UnlockedCharacters = append(p.UnlockedCharacters, id)
			chars = append(chars, id)
		}
	}
	var abilities []string
	for id, lvl := range game.AbilityUnlockLevels {
		if p.Level >= lvl && !hasAbility(p, id) {
			p.UnlockedAbilities = append(p.UnlockedAbilities, id)
			abilities = append(abilities, id)
		}
	}
	return chars, abilities
}

func hasCharacter(p *game.Player, id game.CharacterType) bool {
	for _, c := range p.UnlockedCharacters {
		if c == id {
			return true
		}
	}
	return false
}

func hasAbility(p *game.Player, id string) bool {
	for _, a := range p.UnlockedAbilities {
		if a == id {
			return true
		}
	}
	return false
}
