package service

import (
	"context"
	"time"

	"shadow-duel/internal/constants"
	"shadow-duel/internal/engine"
	"shadow-duel/internal/game"
	"shadow-duel/internal/logging"
	"shadow-duel/internal/shadow"
	"shadow-duel/internal/storage"
)

// SubmitMove resolves one ability for the caller's seat. In a shadow match
// the shadow answers in the same call, so the client always gets the state
// back with its turn open again or the battle finished.
func (s *Service) SubmitMove(ctx context.Context, userID, gameID, abilityID string) (*game.GameState, error) {
	g, err := s.repo.GetGame(ctx, gameID)
	if err == storage.ErrNotFound {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	if g.Status != game.StatusActive {
		return nil, ErrGameNotActive
	}
	// an active record without a second seat is corrupt; refuse to resolve
	if g.Player2 == nil {
		return nil, ErrOpponentMissing
	}
	role := g.RoleOf(userID)
	if role == "" {
		return nil, ErrPlayerNotInGame
	}
	if g.CurrentTurn != role {
		return nil, ErrNotYourTurn
	}
	if !game.ValidAbility(abilityID) {
		return nil, ErrUnknownAbility
	}
	if !moveAllowed(g.Combatant(role), abilityID) {
		return nil, ErrAbilityNotAvailable
	}

	s.resolveMove(g, role, abilityID)

	if winner := engine.IsBattleOver(g); winner != game.WinnerNone {
		return g, s.finishBattle(ctx, g, winner)
	}

	if g.IsShadowMatch {
		s.resolveShadowMove(g)

		// Both actors have moved; age and prune each seat's effects.
		g.Player1 = engine.ProcessTurnEnd(g.Player1)
		p2 := engine.ProcessTurnEnd(*g.Player2)
		g.Player2 = &p2

		if winner := engine.IsBattleOver(g); winner != game.WinnerNone {
			return g, s.finishBattle(ctx, g, winner)
		}
	} else {
		g.CurrentTurn = opponent(role)
	}

	g.TurnNumber++
	if winner := engine.IsBattleOver(g); winner != game.WinnerNone {
		return g, s.finishBattle(ctx, g, winner)
	}

	g.TurnStartedAt = time.Now()
	if err := s.repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		return nil, err
	}
	s.clock.Arm(g.GameID)
	return g, nil
}

// resolveMove applies one ability and records it in the acting seat's
// transcript.
func (s *Service) resolveMove(g *game.GameState, role game.Role, abilityID string) {
	attacker := *g.Combatant(role)
	defender := *g.Combatant(opponent(role))

	atk, def, logs := engine.ApplyAbility(abilityID, attacker, defender)

	atk.Moves = append(atk.Moves, game.BattleMove{
		Turn:      g.TurnNumber,
		Player:    role,
		Ability:   abilityID,
		Damage:    atk.TotalDamageDealt - attacker.TotalDamageDealt,
		Timestamp: time.Now(),
	})

	*g.Combatant(role) = atk
	*g.Combatant(opponent(role)) = def
	for _, l := range logs {
		l.Turn = g.TurnNumber
		g.BattleLog = append(g.BattleLog, l)
	}

	logging.Info("move resolved", logging.Fields{
		constants.LogFieldGameID:  g.GameID,
		constants.LogFieldUserID:  atk.UserID,
		constants.LogFieldAbility: abilityID,
		constants.LogFieldTurn:    g.TurnNumber,
	})
}

// resolveShadowMove plays the shadow's answer: the transcript move for the
// current turn when still affordable, otherwise the reactive fallback.
// Transcript moves were legal when recorded, so only energy gates them; the
// seat's loadout does not apply.
func (s *Service) resolveShadowMove(g *game.GameState) {
	seat := g.Player2
	abilityID := shadow.NextMove(g.ShadowData, g.TurnNumber-1)
	if !affordable(seat, abilityID) {
		abilityID = shadow.FallbackMove(seat)
		if !affordable(seat, abilityID) {
			abilityID = game.AbilityRest
		}
	}
	s.resolveMove(g, game.RolePlayer2, abilityID)
}

func affordable(p *game.BattlePlayer, abilityID string) bool {
	if !game.ValidAbility(abilityID) {
		return false
	}
	return p.Energy >= game.AbilityByID(abilityID).EnergyCost
}

// moveAllowed reports whether the seat may use the ability right now. Rest
// is always legal; everything else must pass the availability filter.
func moveAllowed(p *game.BattlePlayer, abilityID string) bool {
	if abilityID == game.AbilityRest {
		return true
	}
	for _, id := range engine.AvailableAbilities(p) {
		if id == abilityID {
			return true
		}
	}
	return false
}

func opponent(role game.Role) game.Role {
	if role == game.RolePlayer1 {
		return game.RolePlayer2
	}
	return game.RolePlayer1
}
