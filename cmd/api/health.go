package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingResponse reports liveness and how many callers have a search in flight
type PingResponse struct {
	Message        string `json:"message" example:"pong"`
	ActiveSessions int    `json:"active_sessions" example:"0"`
}

// handlePing godoc
// @Summary Liveness check
// @Description Reports that the API is up and how many search sessions are running
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message:        "pong",
		ActiveSessions: app.sessions.Len(),
	})
}
