package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shadow-duel/internal/constants"
	"shadow-duel/internal/game"
	"shadow-duel/internal/logging"
	"shadow-duel/internal/matchmaking"
	"shadow-duel/internal/shadow"
)

// StartBattle creates a match for the caller. Against a live opponent the
// game starts in waiting state and an invitation is delivered; against a
// shadow it goes active immediately and the turn clock starts.
func (s *Service) StartBattle(ctx context.Context, userID, username string, character game.CharacterType, mode game.Mode) (*game.GameState, error) {
	if mode != game.ModeQuickMatch && mode != game.ModeRanked {
		return nil, ErrInvalidMode
	}
	if !game.ValidCharacter(character) {
		return nil, ErrInvalidCharacter
	}

	player, err := s.repo.GetOrCreatePlayer(ctx, userID, username)
	if err != nil {
		return nil, err
	}
	if !hasCharacter(player, character) {
		return nil, ErrCharacterLocked
	}
	if err := s.repo.MarkOnline(ctx, userID); err != nil {
		return nil, err
	}

	match, err := matchmaking.FindOpponent(ctx, s.repo, player, mode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	g := &game.GameState{
		GameID:        uuid.NewString(),
		Mode:          mode,
		Player1:       game.NewBattlePlayer(player, character),
		CurrentTurn:   game.RolePlayer1,
		TurnNumber:    1,
		Status:        game.StatusWaiting,
		TurnStartedAt: now,
		CreatedAt:     now,
		BattleLog:     []game.BattleLogEntry{},
	}

	if match.OpponentID != "" {
		opp, err := s.repo.GetPlayer(ctx, match.OpponentID)
		if err != nil {
			return nil, err
		}
		seat := game.NewBattlePlayer(opp, opp.UnlockedCharacters[0])
		g.Player2 = &seat

		inv := &game.Invitation{
			GameID:          g.GameID,
			PlayerRole:      game.RolePlayer2,
			InviterUsername: player.Username,
			Status:          "pending",
			Timestamp:       now,
		}
		if err := s.repo.CreateInvitation(ctx, opp.UserID, inv); err != nil {
			return nil, err
		}
	} else {
		seat := shadow.BattlePlayer(match.Shadow)
		g.Player2 = &seat
		g.IsShadowMatch = true
		g.ShadowData = match.Shadow
		g.Status = game.StatusActive
	}

	// A waiting game must live as long as its invitation, or a late accept
	// finds nothing to activate. The accept path rewrites it with the
	// active-game TTL.
	ttl := constants.ActiveGameTTL
	if g.Status == game.StatusWaiting {
		ttl = constants.InvitationTTL
	}
	if err := s.repo.SaveGame(ctx, g, ttl); err != nil {
		return nil, err
	}
	if g.Status == game.StatusActive {
		s.clock.Arm(g.GameID)
	}

	logging.Info("battle started", logging.Fields{
		constants.LogFieldGameID: g.GameID,
		constants.LogFieldUserID: userID,
		constants.LogFieldMode:   string(mode),
		"shadow":                 g.IsShadowMatch,
	})
	return g, nil
}

func hasCharacter(p *game.Player, id game.CharacterType) bool {
	for _, c := range p.UnlockedCharacters {
		if c == id {
			return true
		}
	}
	return false
}
