package engine

import "shadow-duel/internal/game"

// CalculateDamage computes the damage one ability deals from attacker to
// defender. Modifiers apply in a fixed order: archetype scaling, berserk
// doubling (when useBonus), defend halving. shield_break overrides the chain
// entirely and lands the ability's raw base damage, ignoring the defender's
// stance and the multipliers already applied. Integer truncation after each
// step.
func CalculateDamage(ability game.Ability, attacker, defender *game.BattlePlayer, useBonus bool) int {
	damage := ability.Damage

	char := game.CharacterByID(attacker.Character)
	damage = damage * char.DamageModifier / 100

	if useBonus && hasStatus(attacker, game.EffectBerserk) {
		damage *= 2
	}

	if hasStatus(defender, game.EffectDefense) {
		damage /= 2
	}

	if ability.ID == game.AbilityShieldBreak {
		damage = ability.Damage
	}

	// A counter status on the defender is intentionally inert: the product
	// never wired the reflection damage back to the attacker, and tests pin
	// the no-op so enabling it later is a deliberate change.

	if damage < 0 {
		damage = 0
	}
	return damage
}

func hasStatus(p *game.BattlePlayer, t game.StatusEffectType) bool {
	for i := range p.StatusEffects {
		if p.StatusEffects[i].Type == t && p.StatusEffects[i].Turns > 0 {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
