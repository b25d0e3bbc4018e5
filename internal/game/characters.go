package game

// CharacterType is a playable archetype.
type CharacterType string

const (
	CharacterMage     CharacterType = "mage"
	CharacterKnight   CharacterType = "knight"
	CharacterRanger   CharacterType = "ranger"
	CharacterAssassin CharacterType = "assassin"
	CharacterTank     CharacterType = "tank"
	CharacterHealer   CharacterType = "healer"
)

// Character holds an archetype's base stats and unlock requirement.
// DamageModifier scales outgoing ability damage in hundredths (100 = x1.0);
// damage math truncates after applying it.
type Character struct {
	ID             CharacterType `json:"id"`
	Name           string        `json:"name"`
	BaseHP         int           `json:"base_hp"`
	BaseEnergy     int           `json:"base_energy"`
	DamageModifier int           `json:"damage_modifier"`
	UnlockLevel    int           `json:"unlock_level"`
}

// Characters is the static archetype table.
var Characters = map[CharacterType]Character{
	CharacterMage:     {ID: CharacterMage, Name: "Mage", BaseHP: 80, BaseEnergy: 60, DamageModifier: 110, UnlockLevel: 1},
	CharacterKnight:   {ID: CharacterKnight, Name: "Knight", BaseHP: 100, BaseEnergy: 50, DamageModifier: 100, UnlockLevel: 1},
	CharacterRanger:   {ID: CharacterRanger, Name: "Ranger", BaseHP: 90, BaseEnergy: 55, DamageModifier: 100, UnlockLevel: 1},
	CharacterAssassin: {ID: CharacterAssassin, Name: "Assassin", BaseHP: 70, BaseEnergy: 65, DamageModifier: 120, UnlockLevel: 5},
	CharacterTank:     {ID: CharacterTank, Name: "Tank", BaseHP: 130, BaseEnergy: 45, DamageModifier: 80, UnlockLevel: 10},
	CharacterHealer:   {ID: CharacterHealer, Name: "Healer", BaseHP: 95, BaseEnergy: 60, DamageModifier: 100, UnlockLevel: 15},
}

// StartingCharacters is the set every new profile begins with.
var StartingCharacters = []CharacterType{CharacterMage, CharacterKnight, CharacterRanger}

// CharacterByID resolves an archetype, defaulting to knight for unknown
// values so legacy records stay playable.
func CharacterByID(id CharacterType) Character {
	if c, ok := Characters[id]; ok {
		return c
	}
	return Characters[CharacterKnight]
}

// ValidCharacter reports whether id names a known archetype.
func ValidCharacter(id CharacterType) bool {
	_, ok := Characters[id]
	return ok
}

// DefaultAbilitySets maps each archetype to the loadout a shadow of that
// archetype fights with when no recorded loadout is available.
var DefaultAbilitySets = map[CharacterType][]string{
	CharacterMage:     {AbilityBasicAttack, AbilityFireball, AbilityEnergyDrain, AbilityUltimate},
	CharacterKnight:   {AbilityBasicAttack, AbilityPowerStrike, AbilityDefend, AbilityCounter},
	CharacterRanger:   {AbilityBasicAttack, AbilityShieldBreak, AbilityHeal, AbilityUltimate},
	CharacterAssassin: {AbilityBasicAttack, AbilityPowerStrike, AbilityBerserk, AbilityUltimate},
	CharacterTank:     {AbilityBasicAttack, AbilityDefend, AbilityCounter, AbilityHeal},
	CharacterHealer:   {AbilityBasicAttack, AbilityHeal, AbilityEnergyDrain, AbilityUltimate},
}

// AbilitiesForCharacter returns the default loadout for an archetype.
func AbilitiesForCharacter(id CharacterType) []string {
	if set, ok := DefaultAbilitySets[id]; ok {
		out := make([]string, len(set))
		copy(out, set)
		return out
	}
	out := make([]string, len(StartingAbilities))
	copy(out, StartingAbilities)
	return out
}

// NewBattlePlayer seats a profile into a battle with the chosen archetype.
// The first four unlocked abilities form the in-battle loadout.
func NewBattlePlayer(p *Player, character CharacterType) BattlePlayer {
	char := CharacterByID(character)
	abilities := p.UnlockedAbilities
	if len(abilities) > 4 {
		abilities = abilities[:4]
	}
	loadout := make([]string, len(abilities))
	copy(loadout, abilities)
	return BattlePlayer{
		UserID:        p.UserID,
		Username:      p.Username,
		Character:     char.ID,
		HP:            char.BaseHP,
		MaxHP:         char.BaseHP,
		Energy:        char.BaseEnergy,
		MaxEnergy:     char.BaseEnergy,
		StatusEffects: []StatusEffect{},
		Abilities:     loadout,
		Moves:         []BattleMove{},
	}
}
