package service

import "errors"

// Sentinel errors returned by the orchestrator. The API layer maps each to
// an HTTP status.
var (
	ErrGameNotFound        = errors.New("game not found")
	ErrGameNotActive       = errors.New("game is not active")
	ErrPlayerNotInGame     = errors.New("player not in this game")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrUnknownAbility      = errors.New("unknown ability")
	ErrAbilityNotAvailable = errors.New("ability not available")
	ErrInvalidCharacter    = errors.New("invalid character")
	ErrCharacterLocked     = errors.New("character not unlocked")
	ErrInvalidMode         = errors.New("invalid mode")
	ErrNoInvitation        = errors.New("no pending invitation")
	ErrOpponentMissing     = errors.New("opponent seat missing")
)
