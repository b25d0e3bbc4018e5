package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shadow-duel/internal/constants"
	"shadow-duel/internal/service"
)

// BattleHandler groups all HTTP handlers over the battle service.
type BattleHandler struct {
	svc *service.Service
}

func NewBattleHandler(svc *service.Service) *BattleHandler {
	return &BattleHandler{svc: svc}
}

// RegisterRoutes wires every endpoint under the API prefix. All routes
// require the identity headers.
func RegisterRoutes(r *gin.Engine, h *BattleHandler) {
	r.GET(constants.RouteAPIPrefix+constants.RouteVersion, Version)

	api := r.Group(constants.RouteAPIPrefix)
	api.Use(identityMiddleware())

	api.GET(constants.RoutePlayer, h.GetPlayer)
	api.GET(constants.RouteLeaderboard, h.GetLeaderboard)
	api.GET(constants.RouteNotifications, h.GetNotifications)

	api.POST(constants.RouteBattleStart, h.StartBattle)
	api.POST(constants.RouteBattleMove, h.SubmitMove)
	api.GET(constants.RouteBattleByID, h.GetBattle)
	api.POST(constants.RouteBattleAccept, h.AcceptInvitation)
	api.POST(constants.RouteBattleDecline, h.DeclineInvitation)
	api.POST(constants.RouteBattleTimeout, h.CheckTimeout)
}

// identityMiddleware reads the identity the gateway forwards on every
// request. Session handling lives upstream.
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(constants.HeaderUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		c.Set("userID", userID)
		c.Set("username", c.GetHeader(constants.HeaderUsername))
		c.Next()
	}
}

func identity(c *gin.Context) (userID, username string) {
	return c.GetString("userID"), c.GetString("username")
}

// writeServiceError maps orchestrator sentinels to HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch err {
	case service.ErrGameNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
	case service.ErrNoInvitation:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrNoInvitation})
	case service.ErrPlayerNotInGame:
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotInThisGame})
	case service.ErrNotYourTurn:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
	case service.ErrGameNotActive:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotActive})
	case service.ErrUnknownAbility:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownAbility})
	case service.ErrAbilityNotAvailable:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAbilityNotAvailable})
	case service.ErrInvalidCharacter, service.ErrCharacterLocked:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidCharacter})
	case service.ErrInvalidMode:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMode})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrStoreFailure})
	}
}
