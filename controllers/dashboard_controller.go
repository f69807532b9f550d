package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ollamadash/middlewares"
	"ollamadash/models"
	"ollamadash/services"
)

const (
	noticeUnreachable = "Ollama is not reachable right now. Showing no models."
	noticeListFailed  = "Could not load the model list."
)

// Dashboard renders the model list and statistics. When the list cannot be
// fetched the page still renders with no models and a notice.
func (h *Handler) Dashboard(c *gin.Context) {
	list := []models.Model{}
	notice := ""

	if !middlewares.UpstreamReachable(c) {
		notice = noticeUnreachable
	} else if fetched, err := h.client.ListModels(c.Request.Context()); err != nil {
		logUpstreamError(c, "error loading dashboard", err)
		notice = noticeListFailed
	} else {
		list = fetched
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Models": list,
		"Stats":  services.ComputeStats(list),
		"Notice": notice,
	})
}
