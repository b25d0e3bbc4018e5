package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shadow-duel/internal/constants"
	"shadow-duel/internal/game"
)

type StartBattlePayload struct {
	Character string `json:"character"`
	Mode      string `json:"mode"`
}

// StartBattle creates a match for the caller and returns the initial state.
func (h *BattleHandler) StartBattle(c *gin.Context) {
	var req StartBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	userID, username := identity(c)

	g, err := h.svc.StartBattle(c.Request.Context(), userID, username, game.CharacterType(req.Character), game.Mode(req.Mode))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

type SubmitMovePayload struct {
	GameID  string `json:"game_id"`
	Ability string `json:"ability"`
}

// SubmitMove plays one ability for the caller's seat.
func (h *BattleHandler) SubmitMove(c *gin.Context) {
	var req SubmitMovePayload
	if err := c.ShouldBindJSON(&req); err != nil || req.GameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	userID, _ := identity(c)

	g, err := h.svc.SubmitMove(c.Request.Context(), userID, req.GameID, req.Ability)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// GetBattle returns the state of one battle for a participant.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	gameID := c.Param("gameID")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return
	}
	userID, _ := identity(c)

	view, err := h.svc.GetGame(c.Request.Context(), userID, gameID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AcceptInvitation activates a waiting PvP match.
func (h *BattleHandler) AcceptInvitation(c *gin.Context) {
	userID, _ := identity(c)

	g, err := h.svc.AcceptInvitation(c.Request.Context(), userID, c.Param("gameID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// DeclineInvitation tears down a waiting PvP match.
func (h *BattleHandler) DeclineInvitation(c *gin.Context) {
	userID, _ := identity(c)

	if err := h.svc.DeclineInvitation(c.Request.Context(), userID, c.Param("gameID")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Invitation declined"})
}

// CheckTimeout lets a waiting client force the timeout check for a battle.
func (h *BattleHandler) CheckTimeout(c *gin.Context) {
	userID, _ := identity(c)

	g, err := h.svc.CheckTimeout(c.Request.Context(), userID, c.Param("gameID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}
