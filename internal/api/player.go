package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPlayer returns the caller's profile, creating it on first contact.
func (h *BattleHandler) GetPlayer(c *gin.Context) {
	userID, username := identity(c)

	p, err := h.svc.GetProfile(c.Request.Context(), userID, username)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetLeaderboard returns the global standings.
func (h *BattleHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.svc.Leaderboard(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetNotifications returns whatever is waiting for the caller: a pending
// invitation and/or a battle that just went active.
func (h *BattleHandler) GetNotifications(c *gin.Context) {
	userID, _ := identity(c)

	n, err := h.svc.GetNotifications(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}
