package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ollamadash/middlewares"
	"ollamadash/services"
)

// Handler serves the dashboard routes. It is safe for concurrent use.
type Handler struct {
	client services.InferenceClient
	chat   *services.ConversationService
}

func NewHandler(client services.InferenceClient, chat *services.ConversationService) *Handler {
	return &Handler{client: client, chat: chat}
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.tmpl", gin.H{"Message": message})
}

// requireUpstream renders the connection error view and reports false when
// the probe found the upstream service unreachable.
func requireUpstream(c *gin.Context) bool {
	if middlewares.UpstreamReachable(c) {
		return true
	}
	renderError(c, http.StatusServiceUnavailable, middlewares.ConnectionFailedMessage)
	return false
}

func logUpstreamError(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	slog.Error(msg, "path", c.Request.URL.Path, "model", c.Param("model"), "error", err)
}

// Healthz reports whether the dashboard is up and whether it can reach the
// upstream service.
func (h *Handler) Healthz(c *gin.Context) {
	upstream := h.client.Heartbeat(c.Request.Context()) == nil
	c.JSON(http.StatusOK, gin.H{"status": "ok", "upstream": upstream})
}
