package engine

import "shadow-duel/internal/game"

// MaxTurns is the forced-resolution turn limit.
const MaxTurns = 10

// IsBattleOver evaluates terminal conditions and returns the declared
// winner, WinnerDraw, or WinnerNone while the battle continues. It must run
// after every mutation that could end the match: a human move, an AI move, a
// timeout penalty, and the turn-number increment.
func IsBattleOver(state *game.GameState) game.Winner {
	if state.Player1.HP <= 0 && state.Player2 != nil && state.Player2.HP <= 0 {
		return game.WinnerDraw
	}
	if state.Player1.HP <= 0 {
		return game.WinnerPlayer2
	}
	if state.Player2 != nil && state.Player2.HP <= 0 {
		return game.WinnerPlayer1
	}

	// The counter is 1-based and advances after each submission, so the
	// limit is crossed only once MaxTurns submissions have resolved.
	if state.TurnNumber > MaxTurns {
		if state.Player2 == nil {
			// Degenerate record without a second seat; the initiator takes it.
			return game.WinnerPlayer1
		}
		if state.Player1.HP > state.Player2.HP {
			return game.WinnerPlayer1
		}
		if state.Player2.HP > state.Player1.HP {
			return game.WinnerPlayer2
		}
		return game.WinnerDraw
	}

	return game.WinnerNone
}

// AvailableAbilities returns the ordered subset of the combatant's known
// abilities that are affordable and off cooldown. Cooldown counts elapsed
// combatant-turns since the last use of that exact ability; ultimate is
// additionally once per match. When nothing qualifies the result is exactly
// ["rest"], so a combatant can always act.
func AvailableAbilities(p *game.BattlePlayer) []string {
	available := make([]string, 0, len(p.Abilities))
	for _, id := range p.Abilities {
		ability, ok := game.Abilities[id]
		if !ok {
			continue
		}
		if p.Energy < ability.EnergyCost {
			continue
		}
		if ability.Cooldown > 0 {
			if last := lastUseIndex(p.Moves, id); last >= 0 {
				turnsSince := len(p.Moves) - 1 - last
				if turnsSince < ability.Cooldown {
					continue
				}
			}
		}
		if id == game.AbilityUltimate && usedAbility(p.Moves, game.AbilityUltimate) {
			continue
		}
		available = append(available, id)
	}
	if len(available) == 0 {
		return []string{game.AbilityRest}
	}
	return available
}

func lastUseIndex(moves []game.BattleMove, ability string) int {
	for i := len(moves) - 1; i >= 0; i-- {
		if moves[i].Ability == ability {
			return i
		}
	}
	return -1
}

func usedAbility(moves []game.BattleMove, ability string) bool {
	return lastUseIndex(moves, ability) >= 0
}
