package game

import "fmt"

// AbilityCategory groups abilities for resolution purposes.
type AbilityCategory string

const (
	CategoryAttack  AbilityCategory = "attack"
	CategoryDefense AbilityCategory = "defense"
	CategorySupport AbilityCategory = "support"
)

// Ability ids. AbilityRest is the guaranteed fallback: it costs nothing and
// is always legal.
const (
	AbilityBasicAttack = "basic_attack"
	AbilityFireball    = "fireball"
	AbilityPowerStrike = "power_strike"
	AbilityShieldBreak = "shield_break"
	AbilityUltimate    = "ultimate"
	AbilityDefend      = "defend"
	AbilityHeal        = "heal"
	AbilityEnergyDrain = "energy_drain"
	AbilityBerserk     = "berserk"
	AbilityPoison      = "poison"
	AbilityCounter     = "counter"
	AbilitySacrifice   = "sacrifice"
	AbilityRest        = "rest"
)

// Ability is one static catalog entry. Cooldown counts elapsed combatant
// turns between uses of the same ability.
type Ability struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Damage     int             `json:"damage"`
	EnergyCost int             `json:"energy_cost"`
	Cooldown   int             `json:"cooldown"`
	Category   AbilityCategory `json:"category"`
}

// Abilities is the static ability catalog. It is read-only after init.
var Abilities = map[string]Ability{
	AbilityBasicAttack: {ID: AbilityBasicAttack, Name: "Basic Attack", Damage: 20, EnergyCost: 10, Cooldown: 0, Category: CategoryAttack},
	AbilityFireball:    {ID: AbilityFireball, Name: "Fireball", Damage: 30, EnergyCost: 20, Cooldown: 0, Category: CategoryAttack},
	AbilityPowerStrike: {ID: AbilityPowerStrike, Name: "Power Strike", Damage: 40, EnergyCost: 30, Cooldown: 2, Category: CategoryAttack},
	AbilityShieldBreak: {ID: AbilityShieldBreak, Name: "Shield Break", Damage: 25, EnergyCost: 25, Cooldown: 2, Category: CategoryAttack},
	AbilityUltimate:    {ID: AbilityUltimate, Name: "Ultimate", Damage: 60, EnergyCost: 40, Cooldown: 0, Category: CategoryAttack},
	AbilityDefend:      {ID: AbilityDefend, Name: "Defend", EnergyCost: 15, Cooldown: 0, Category: CategoryDefense},
	AbilityHeal:        {ID: AbilityHeal, Name: "Heal", EnergyCost: 25, Cooldown: 2, Category: CategorySupport},
	AbilityEnergyDrain: {ID: AbilityEnergyDrain, Name: "Energy Drain", EnergyCost: 10, Cooldown: 2, Category: CategorySupport},
	AbilityBerserk:     {ID: AbilityBerserk, Name: "Berserk", EnergyCost: 20, Cooldown: 3, Category: CategorySupport},
	AbilityPoison:      {ID: AbilityPoison, Name: "Poison", EnergyCost: 20, Cooldown: 3, Category: CategoryAttack},
	AbilityCounter:     {ID: AbilityCounter, Name: "Counter", EnergyCost: 15, Cooldown: 2, Category: CategoryDefense},
	AbilitySacrifice:   {ID: AbilitySacrifice, Name: "Sacrifice", EnergyCost: 0, Cooldown: 3, Category: CategorySupport},
	AbilityRest:        {ID: AbilityRest, Name: "Rest", EnergyCost: 0, Cooldown: 0, Category: CategorySupport},
}

// AbilityByID resolves a catalog entry. Callers must validate ids against a
// combatant's known-ability set first; an unknown id here is a programming
// error, not user input.
func AbilityByID(id string) Ability {
	a, ok := Abilities[id]
	if !ok {
		panic(fmt.Sprintf("game: unknown ability %q", id))
	}
	return a
}

// ValidAbility reports whether id names a catalog ability.
func ValidAbility(id string) bool {
	_, ok := Abilities[id]
	return ok
}

// StartingAbilities is the loadout every new profile begins with.
var StartingAbilities = []string{AbilityBasicAttack, AbilityDefend, AbilityFireball, AbilityHeal}

// AbilityUnlockLevels maps each unlockable ability to the profile level that
// grants it.
var AbilityUnlockLevels = map[string]int{
	AbilityPowerStrike: 3,
	AbilityEnergyDrain: 5,
	AbilityShieldBreak: 7,
	AbilityBerserk:     10,
	AbilityPoison:      12,
	AbilityCounter:     15,
	AbilityUltimate:    20,
	AbilitySacrifice:   25,
}
