package engine

import (
	"fmt"
	"time"

	"shadow-duel/internal/game"
)

// ApplyAbility resolves one ability from attacker against defender and
// returns updated copies of both combatants plus the log entries produced.
// The inputs are never mutated, so callers may retry or replay safely.
//
// Affordability is not checked here: availability must be pre-filtered via
// AvailableAbilities. Energy is deducted and floored at zero regardless.
func ApplyAbility(abilityID string, attacker, defender game.BattlePlayer) (game.BattlePlayer, game.BattlePlayer, []game.BattleLogEntry) {
	ability := game.AbilityByID(abilityID)
	now := time.Now()
	turn := len(attacker.Moves)

	atk := cloneBattlePlayer(attacker)
	def := cloneBattlePlayer(defender)

	logs := []game.BattleLogEntry{{
		Turn:      turn,
		Message:   fmt.Sprintf("%s used %s!", atk.Username, ability.Name),
		Type:      game.LogAction,
		Timestamp: now,
	}}
	addLog := func(t game.LogType, format string, args ...interface{}) {
		logs = append(logs, game.BattleLogEntry{Turn: turn, Message: fmt.Sprintf(format, args...), Type: t, Timestamp: now})
	}

	atk.Energy -= ability.EnergyCost
	if atk.Energy < 0 {
		atk.Energy = 0
	}

	switch ability.ID {
	case game.AbilityBasicAttack, game.AbilityFireball, game.AbilityPowerStrike, game.AbilityShieldBreak, game.AbilityUltimate:
		damage := CalculateDamage(ability, &atk, &def, true)
		def.HP -= damage
		if def.HP < 0 {
			def.HP = 0
		}
		def.TotalDamageTaken += damage
		atk.TotalDamageDealt += damage
		addLog(game.LogDamage, "%s took %d damage!", def.Username, damage)

	case game.AbilityRest:
		atk.Energy = clamp(atk.Energy+restEnergyGain, 0, atk.MaxEnergy)
		atk.HP -= restHPCost
		if atk.HP < 0 {
			atk.HP = 0
		}
		addLog(game.LogStatus, "%s rested: +%d energy, -%d HP", atk.Username, restEnergyGain, restHPCost)

	case game.AbilityDefend:
		atk.StatusEffects = append(atk.StatusEffects, game.StatusEffect{Type: game.EffectDefense, Turns: 1})
		addLog(game.LogStatus, "%s is defending!", atk.Username)

	case game.AbilityHeal:
		oldHP := atk.HP
		atk.HP = clamp(atk.HP+healAmount, 0, atk.MaxHP)
		addLog(game.LogHeal, "%s healed %d HP!", atk.Username, atk.HP-oldHP)

	case game.AbilityEnergyDrain:
		drain := energyDrainMax
		if def.Energy < drain {
			drain = def.Energy
		}
		def.Energy -= drain
		atk.Energy = clamp(atk.Energy+drain, 0, atk.MaxEnergy)
		addLog(game.LogAction, "%s drained %d energy from %s!", atk.Username, drain, def.Username)

	case game.AbilityBerserk:
		atk.StatusEffects = append(atk.StatusEffects, game.StatusEffect{Type: game.EffectBerserk, Turns: 1})
		atk.HP -= berserkSelfDamage
		if atk.HP < 0 {
			atk.HP = 0
		}
		addLog(game.LogStatus, "%s entered berserk mode! (took %d self damage)", atk.Username, berserkSelfDamage)

	case game.AbilityPoison:
		def.StatusEffects = append(def.StatusEffects, game.StatusEffect{Type: game.EffectPoison, Turns: poisonTurns, Value: poisonTick})
		addLog(game.LogStatus, "%s is now poisoned!", def.Username)

	case game.AbilityCounter:
		atk.StatusEffects = append(atk.StatusEffects, game.StatusEffect{Type: game.EffectCounter, Turns: 1})
		addLog(game.LogStatus, "%s is ready to counter!", atk.Username)

	case game.AbilitySacrifice:
		atk.HP -= sacrificeHPCost
		if atk.HP < 0 {
			atk.HP = 0
		}
		atk.Energy = atk.MaxEnergy
		addLog(game.LogAction, "%s sacrificed HP for full energy!", atk.Username)
	}

	// Poison ticks on the defender after the ability resolves. Only the
	// first active stack ticks; when it expires every poison entry is
	// cleared, matching the shipped resolution order.
	if def.HP > 0 {
		for i := range def.StatusEffects {
			e := &def.StatusEffects[i]
			if e.Type != game.EffectPoison {
				continue
			}
			tick := e.Value
			if tick == 0 {
				tick = poisonTick
			}
			def.HP -= tick
			if def.HP < 0 {
				def.HP = 0
			}
			def.TotalDamageTaken += tick
			atk.TotalDamageDealt += tick
			e.Turns--
			if e.Turns <= 0 {
				def.StatusEffects = removeStatusType(def.StatusEffects, game.EffectPoison)
			}
			break
		}
	}

	// Expired effects are pruned from the attacker here; the defender's
	// pruning happens in ProcessTurnEnd. The asymmetry is load-bearing: a
	// defend gained this turn must survive until the opponent has swung.
	atk.StatusEffects = pruneExpired(atk.StatusEffects)

	return atk, def, logs
}

// ProcessTurnEnd ages every status effect on the combatant by one turn and
// drops the expired ones. Energy does not regenerate passively; it only
// moves through abilities.
func ProcessTurnEnd(p game.BattlePlayer) game.BattlePlayer {
	out := cloneBattlePlayer(p)
	for i := range out.StatusEffects {
		out.StatusEffects[i].Turns--
	}
	out.StatusEffects = pruneExpired(out.StatusEffects)
	return out
}

func cloneBattlePlayer(p game.BattlePlayer) game.BattlePlayer {
	out := p
	out.StatusEffects = append([]game.StatusEffect(nil), p.StatusEffects...)
	out.Abilities = append([]string(nil), p.Abilities...)
	out.Moves = append([]game.BattleMove(nil), p.Moves...)
	return out
}

func pruneExpired(effects []game.StatusEffect) []game.StatusEffect {
	out := effects[:0]
	for _, e := range effects {
		if e.Turns > 0 {
			out = append(out, e)
		}
	}
	return out
}

func removeStatusType(effects []game.StatusEffect, t game.StatusEffectType) []game.StatusEffect {
	out := effects[:0]
	for _, e := range effects {
		if e.Type != t {
			out = append(out, e)
		}
	}
	return out
}

// Effect magnitudes for the non-damage abilities.
const (
	restEnergyGain    = 15
	restHPCost        = 5
	healAmount        = 30
	energyDrainMax    = 20
	berserkSelfDamage = 20
	poisonTurns       = 3
	poisonTick        = 10
	sacrificeHPCost   = 40
)
