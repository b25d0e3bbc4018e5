package service

import (
	"context"
	"testing"
	"time"

	"shadow-duel/internal/constants"
	"shadow-duel/internal/game"
	"shadow-duel/internal/storage"
)

func newTestService(t *testing.T) (*Service, *storage.KVRepository, context.Context) {
	t.Helper()
	repo := storage.NewKVRepository(storage.NewMemoryStore())
	svc := New(repo)
	t.Cleanup(svc.Clock().Stop)
	return svc, repo, context.Background()
}

func activeShadowGame(t *testing.T, repo *storage.KVRepository, ctx context.Context, userID string) *game.GameState {
	t.Helper()
	p, err := repo.GetOrCreatePlayer(ctx, userID, userID)
	if err != nil {
		t.Fatal(err)
	}
	shadowChar := game.CharacterByID(game.CharacterKnight)
	p2 := game.BattlePlayer{
		UserID:        "shadow_x",
		Username:      "Shadow of x",
		Character:     shadowChar.ID,
		HP:            shadowChar.BaseHP,
		MaxHP:         shadowChar.BaseHP,
		Energy:        shadowChar.BaseEnergy,
		MaxEnergy:     shadowChar.BaseEnergy,
		StatusEffects: []game.StatusEffect{},
		Abilities:     game.AbilitiesForCharacter(shadowChar.ID),
		Moves:         []game.BattleMove{},
	}
	g := &game.GameState{
		GameID:        "g-shadow",
		Mode:          game.ModeRanked,
		Player1:       game.NewBattlePlayer(p, game.CharacterKnight),
		Player2:       &p2,
		IsShadowMatch: true,
		ShadowData: &game.ShadowData{
			OriginalUsername:  "x",
			OriginalCharacter: game.CharacterKnight,
			RecordedAt:        time.Now(),
			Moves:             []game.BattleMove{{Turn: 1, Player: game.RolePlayer1, Ability: game.AbilityFireball}},
			BattleResult:      "win",
		},
		CurrentTurn:   game.RolePlayer1,
		TurnNumber:    1,
		Status:        game.StatusActive,
		TurnStartedAt: time.Now(),
		CreatedAt:     time.Now(),
		BattleLog:     []game.BattleLogEntry{},
	}
	if err := repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestStartBattleAgainstShadow(t *testing.T) {
	svc, _, ctx := newTestService(t)

	g, err := svc.StartBattle(ctx, "u1", "alice", game.CharacterKnight, game.ModeRanked)
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsShadowMatch || g.ShadowData == nil {
		t.Fatal("empty arena must produce a shadow match")
	}
	if g.Status != game.StatusActive {
		t.Fatalf("status = %q, want active immediately", g.Status)
	}
	if g.CurrentTurn != game.RolePlayer1 || g.TurnNumber != 1 {
		t.Fatalf("turn state = %q/%d", g.CurrentTurn, g.TurnNumber)
	}
	if !svc.Clock().Active(g.GameID) {
		t.Fatal("turn clock not armed")
	}
}

func TestStartBattleLockedCharacter(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.StartBattle(ctx, "u1", "alice", game.CharacterAssassin, game.ModeRanked)
	if err != ErrCharacterLocked {
		t.Fatalf("err = %v, want ErrCharacterLocked", err)
	}
}

func TestStartBattleValidation(t *testing.T) {
	svc, _, ctx := newTestService(t)

	if _, err := svc.StartBattle(ctx, "u1", "alice", game.CharacterKnight, "chaos"); err != ErrInvalidMode {
		t.Fatalf("err = %v, want ErrInvalidMode", err)
	}
	if _, err := svc.StartBattle(ctx, "u1", "alice", "dragon", game.ModeRanked); err != ErrInvalidCharacter {
		t.Fatalf("err = %v, want ErrInvalidCharacter", err)
	}
}

func TestStartBattleAgainstLivePlayerCreatesInvitation(t *testing.T) {
	svc, repo, ctx := newTestService(t)

	if _, err := repo.GetOrCreatePlayer(ctx, "bob", "bob"); err != nil {
		t.Fatal(err)
	}
	if err := repo.MarkOnline(ctx, "bob"); err != nil {
		t.Fatal(err)
	}

	g, err := svc.StartBattle(ctx, "alice", "alice", game.CharacterKnight, game.ModeQuickMatch)
	if err != nil {
		t.Fatal(err)
	}
	if g.IsShadowMatch {
		t.Fatal("live opponent available, should not be a shadow match")
	}
	if g.Status != game.StatusWaiting {
		t.Fatalf("status = %q, want waiting until accepted", g.Status)
	}
	if svc.Clock().Active(g.GameID) {
		t.Fatal("clock must not run before the invitation is accepted")
	}

	inv, err := repo.GetInvitation(ctx, "bob")
	if err != nil {
		t.Fatal(err)
	}
	if inv.GameID != g.GameID || inv.Status != "pending" {
		t.Fatalf("invitation = %+v", inv)
	}
}

func TestSubmitMoveShadowAnswersAndTurnAdvances(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")

	got, err := svc.SubmitMove(ctx, "u1", g.GameID, game.AbilityBasicAttack)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Player1.Moves) != 1 || len(got.Player2.Moves) != 1 {
		t.Fatalf("moves = %d/%d, want one each", len(got.Player1.Moves), len(got.Player2.Moves))
	}
	// scripted first move is fireball
	if got.Player2.Moves[0].Ability != game.AbilityFireball {
		t.Fatalf("shadow played %q, want transcript fireball", got.Player2.Moves[0].Ability)
	}
	if got.TurnNumber != 2 {
		t.Fatalf("turn = %d, want 2", got.TurnNumber)
	}
	if got.CurrentTurn != game.RolePlayer1 {
		t.Fatalf("current turn = %q, want player1 again", got.CurrentTurn)
	}
	if got.Status != game.StatusActive {
		t.Fatalf("status = %q", got.Status)
	}
}

func TestSubmitMoveShadowFallsBackWhenTranscriptExhausted(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")
	g.ShadowData.Moves = nil
	if err := repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		t.Fatal(err)
	}

	got, err := svc.SubmitMove(ctx, "u1", g.GameID, game.AbilityBasicAttack)
	if err != nil {
		t.Fatal(err)
	}
	// healthy and full of energy: heuristic swings
	if got.Player2.Moves[0].Ability != game.AbilityBasicAttack {
		t.Fatalf("shadow played %q, want fallback basic_attack", got.Player2.Moves[0].Ability)
	}
}

func TestSubmitMoveValidation(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")

	if _, err := svc.SubmitMove(ctx, "u1", "missing", game.AbilityBasicAttack); err != ErrGameNotFound {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
	if _, err := svc.SubmitMove(ctx, "stranger", g.GameID, game.AbilityBasicAttack); err != ErrPlayerNotInGame {
		t.Fatalf("err = %v, want ErrPlayerNotInGame", err)
	}
	if _, err := svc.SubmitMove(ctx, "u1", g.GameID, "meteor"); err != ErrUnknownAbility {
		t.Fatalf("err = %v, want ErrUnknownAbility", err)
	}
	// power_strike is in the catalog but not in the knight's default loadout
	if _, err := svc.SubmitMove(ctx, "u1", g.GameID, game.AbilityPowerStrike); err != ErrAbilityNotAvailable {
		t.Fatalf("err = %v, want ErrAbilityNotAvailable", err)
	}

	g.CurrentTurn = game.RolePlayer2
	if err := repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubmitMove(ctx, "u1", g.GameID, game.AbilityBasicAttack); err != ErrNotYourTurn {
		t.Fatalf("err = %v, want ErrNotYourTurn", err)
	}

	g.CurrentTurn = game.RolePlayer1
	g.Status = game.StatusFinished
	if err := repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubmitMove(ctx, "u1", g.GameID, game.AbilityBasicAttack); err != ErrGameNotActive {
		t.Fatalf("err = %v, want ErrGameNotActive", err)
	}
}

func TestSubmitMoveRejectsMissingOpponentSeat(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")
	g.Player2 = nil
	if err := repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.SubmitMove(ctx, "u1", g.GameID, game.AbilityRest); err != ErrOpponentMissing {
		t.Fatalf("err = %v, want ErrOpponentMissing", err)
	}
}

func TestKillingBlowFinishesBattleAndAwardsProgression(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")
	g.Player2.HP = 5
	if err := repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		t.Fatal(err)
	}

	got, err := svc.SubmitMove(ctx, "u1", g.GameID, game.AbilityBasicAttack)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != game.StatusFinished || got.Winner != game.WinnerPlayer1 {
		t.Fatalf("status/winner = %q/%q", got.Status, got.Winner)
	}
	if svc.Clock().Active(g.GameID) {
		t.Fatal("clock still armed after finish")
	}

	p, err := repo.GetPlayer(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Wins != 1 || p.XP != constants.XPPerWin {
		t.Fatalf("progression not applied: %+v", p)
	}
	if p.RankPoints != constants.RankPointsWin {
		t.Fatalf("rank = %d, want %d for ranked win", p.RankPoints, constants.RankPointsWin)
	}

	shadows, err := repo.GetShadows(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(shadows) != 1 || shadows[0].OriginalUsername != g.Player1.Username {
		t.Fatalf("winner's battle not recorded as a shadow: %+v", shadows)
	}

	entries, err := repo.GetLeaderboard(ctx, "global")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].UserID != "u1" {
		t.Fatalf("leaderboard = %+v", entries)
	}
}

func TestTurnLimitForcesResolution(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")
	g.TurnNumber = 10
	g.Player1.HP = 60
	g.Player2.HP = 90
	if err := repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		t.Fatal(err)
	}

	got, err := svc.SubmitMove(ctx, "u1", g.GameID, game.AbilityDefend)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != game.StatusFinished {
		t.Fatalf("status = %q, want finished at the turn limit", got.Status)
	}
	if got.Winner != game.WinnerPlayer2 {
		t.Fatalf("winner = %q, want player2 on higher HP", got.Winner)
	}
}

func TestTurnLimitAllowsTenFullTurns(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")
	// both sides only rest, so nothing but the limit can end the match
	rests := make([]game.BattleMove, 10)
	for i := range rests {
		rests[i] = game.BattleMove{Turn: i + 1, Player: game.RolePlayer1, Ability: game.AbilityRest}
	}
	g.ShadowData.Moves = rests
	if err := repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		t.Fatal(err)
	}

	var got *game.GameState
	for i := 0; i < 10; i++ {
		var err error
		got, err = svc.SubmitMove(ctx, "u1", g.GameID, game.AbilityRest)
		if err != nil {
			t.Fatalf("move %d: %v", i+1, err)
		}
		if i < 9 && got.Status != game.StatusActive {
			t.Fatalf("status = %q after move %d, want active", got.Status, i+1)
		}
	}
	if len(got.Player1.Moves) != 10 {
		t.Fatalf("player1 acted %d times, want all 10 turns", len(got.Player1.Moves))
	}
	if got.Status != game.StatusFinished || got.Winner != game.WinnerDraw {
		t.Fatalf("status/winner = %q/%q, want finished/draw on equal HP", got.Status, got.Winner)
	}
}

func TestTimeoutPenaltyKeepsTurn(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")
	startHP := g.Player1.HP
	g.TurnStartedAt = time.Now().Add(-constants.TurnTimeLimit - time.Second)
	if err := repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		t.Fatal(err)
	}

	got, err := svc.CheckTimeout(ctx, "u1", g.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Player1.HP != startHP-constants.TimeoutHPPenalty {
		t.Fatalf("HP = %d, want %d after penalty", got.Player1.HP, startHP-constants.TimeoutHPPenalty)
	}
	if got.CurrentTurn != game.RolePlayer1 {
		t.Fatalf("turn switched to %q; the slow player keeps the turn", got.CurrentTurn)
	}
	if !got.TurnStartedAt.After(g.TurnStartedAt) {
		t.Fatal("turn window not reset")
	}
	last := got.BattleLog[len(got.BattleLog)-1]
	if last.Type != game.LogStatus {
		t.Fatalf("penalty log type = %q, want status", last.Type)
	}
}

func TestTimeoutWithinLimitIsNoOp(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")
	startHP := g.Player1.HP

	got, err := svc.CheckTimeout(ctx, "u1", g.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Player1.HP != startHP {
		t.Fatalf("HP = %d, want untouched %d", got.Player1.HP, startHP)
	}
}

func TestTimeoutCanFinishBattle(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")
	g.Player1.HP = constants.TimeoutHPPenalty
	g.TurnStartedAt = time.Now().Add(-constants.TurnTimeLimit - time.Second)
	if err := repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		t.Fatal(err)
	}

	got, err := svc.CheckTimeout(ctx, "u1", g.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != game.StatusFinished || got.Winner != game.WinnerPlayer2 {
		t.Fatalf("status/winner = %q/%q, want finished/player2", got.Status, got.Winner)
	}
}

func TestAcceptInvitationActivatesGame(t *testing.T) {
	svc, repo, ctx := newTestService(t)

	if _, err := repo.GetOrCreatePlayer(ctx, "bob", "bob"); err != nil {
		t.Fatal(err)
	}
	if err := repo.MarkOnline(ctx, "bob"); err != nil {
		t.Fatal(err)
	}
	g, err := svc.StartBattle(ctx, "alice", "alice", game.CharacterKnight, game.ModeQuickMatch)
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.AcceptInvitation(ctx, "bob", g.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != game.StatusActive {
		t.Fatalf("status = %q, want active", got.Status)
	}
	if !svc.Clock().Active(g.GameID) {
		t.Fatal("clock not armed on accept")
	}

	gameID, err := repo.TakeBattleActive(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if gameID != g.GameID {
		t.Fatalf("inviter notified of %q, want %q", gameID, g.GameID)
	}
	if _, err := repo.GetInvitation(ctx, "bob"); err != storage.ErrNotFound {
		t.Fatal("invitation should be cleared after accept")
	}
}

func TestAcceptInvitationAfterActiveTTLStillFindsGame(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := storage.NewKVRepository(store)
	svc := New(repo)
	t.Cleanup(svc.Clock().Stop)
	ctx := context.Background()

	now := time.Now()
	store.SetClock(func() time.Time { return now })
	repo.SetClock(func() time.Time { return now })

	if _, err := repo.GetOrCreatePlayer(ctx, "bob", "bob"); err != nil {
		t.Fatal(err)
	}
	if err := repo.MarkOnline(ctx, "bob"); err != nil {
		t.Fatal(err)
	}
	g, err := svc.StartBattle(ctx, "alice", "alice", game.CharacterKnight, game.ModeQuickMatch)
	if err != nil {
		t.Fatal(err)
	}
	if g.Status != game.StatusWaiting {
		t.Fatalf("status = %q, want waiting", g.Status)
	}

	// past the active-game TTL but inside the invitation window
	now = now.Add(constants.ActiveGameTTL + time.Minute)

	if _, err := repo.GetInvitation(ctx, "bob"); err != nil {
		t.Fatalf("invitation gone: %v", err)
	}
	got, err := svc.AcceptInvitation(ctx, "bob", g.GameID)
	if err != nil {
		t.Fatalf("accepting a still-pending invitation: %v", err)
	}
	if got.Status != game.StatusActive {
		t.Fatalf("status = %q, want active", got.Status)
	}
}

func TestDeclineInvitationRemovesGame(t *testing.T) {
	svc, repo, ctx := newTestService(t)

	if _, err := repo.GetOrCreatePlayer(ctx, "bob", "bob"); err != nil {
		t.Fatal(err)
	}
	if err := repo.MarkOnline(ctx, "bob"); err != nil {
		t.Fatal(err)
	}
	g, err := svc.StartBattle(ctx, "alice", "alice", game.CharacterKnight, game.ModeQuickMatch)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeclineInvitation(ctx, "bob", g.GameID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetGame(ctx, g.GameID); err != storage.ErrNotFound {
		t.Fatal("declined game should be deleted")
	}
}

func TestAcceptWrongGameID(t *testing.T) {
	svc, _, ctx := newTestService(t)

	if _, err := svc.AcceptInvitation(ctx, "bob", "nope"); err != ErrNoInvitation {
		t.Fatalf("err = %v, want ErrNoInvitation", err)
	}
}

func TestGetGameIncludesAvailableAbilities(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")

	view, err := svc.GetGame(ctx, "u1", g.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.AvailableAbilities) == 0 {
		t.Fatal("view missing available abilities")
	}
	if view.ShadowDifficulty != "easy" {
		t.Fatalf("difficulty = %q, want easy for matched ranks", view.ShadowDifficulty)
	}
	if view.Stats != nil {
		t.Fatal("stats should only appear once the battle is finished")
	}
	if _, err := svc.GetGame(ctx, "stranger", g.GameID); err != ErrPlayerNotInGame {
		t.Fatalf("err = %v, want ErrPlayerNotInGame", err)
	}
}

func TestGetGameFinishedIncludesStats(t *testing.T) {
	svc, repo, ctx := newTestService(t)
	g := activeShadowGame(t, repo, ctx, "u1")
	g.Player2.HP = 5
	if err := repo.SaveGame(ctx, g, constants.ActiveGameTTL); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubmitMove(ctx, "u1", g.GameID, game.AbilityBasicAttack); err != nil {
		t.Fatal(err)
	}

	view, err := svc.GetGame(ctx, "u1", g.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if view.Stats == nil {
		t.Fatal("finished battle missing stats summary")
	}
	if view.Stats.TotalDamageDealt != 20 {
		t.Fatalf("damage dealt = %d, want 20", view.Stats.TotalDamageDealt)
	}
}

func TestNotificationsDeliverInvitationAndBattle(t *testing.T) {
	svc, repo, ctx := newTestService(t)

	if err := repo.CreateInvitation(ctx, "bob", &game.Invitation{
		GameID: "g1", PlayerRole: game.RolePlayer2, InviterUsername: "alice", Status: "pending",
	}); err != nil {
		t.Fatal(err)
	}
	if err := repo.NotifyBattleActive(ctx, "bob", "g2"); err != nil {
		t.Fatal(err)
	}

	n, err := svc.GetNotifications(ctx, "bob")
	if err != nil {
		t.Fatal(err)
	}
	if n.Invitation == nil || n.Invitation.GameID != "g1" {
		t.Fatalf("invitation = %+v", n.Invitation)
	}
	if n.ActiveGameID != "g2" {
		t.Fatalf("active game = %q, want g2", n.ActiveGameID)
	}

	// battle notification is consumed on delivery
	n, err = svc.GetNotifications(ctx, "bob")
	if err != nil {
		t.Fatal(err)
	}
	if n.ActiveGameID != "" {
		t.Fatal("battle notification delivered twice")
	}
}
