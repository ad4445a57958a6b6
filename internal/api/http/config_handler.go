package http

import (
	"net/http"

	"rps-arena/internal/config"
	"rps-arena/internal/game"
	"rps-arena/internal/room"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	match config.MatchConfig
}

func NewConfigHandler(match config.MatchConfig) *ConfigHandler {
	return &ConfigHandler{match: match}
}

// GetMatchRulesHandler returns the rules every match is played under
// @Summary Get match rules
// @Description Returns the round limit, round duration hint, room capacity and accepted moves
// @Tags Config
// @Produce json
// @Success 200 {object} MatchRulesResponse
// @Router /config/match [get]
func (h *ConfigHandler) GetMatchRulesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, MatchRulesResponse{
		Rounds:        h.match.Rounds,
		RoundDuration: h.match.RoundDuration,
		Capacity:      room.Capacity,
		Moves:         []string{string(game.Rock), string(game.Paper), string(game.Scissors)},
	})
}
