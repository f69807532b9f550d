package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	messagePullError         = "Error pulling model"
	messageDeleteError       = "Error deleting model"
	messageModelNameRequired = "Model name is required"
)

type pullForm struct {
	ModelName string `form:"modelname" binding:"required"`
}

func (h *Handler) ShowPull(c *gin.Context) {
	c.HTML(http.StatusOK, "pull.tmpl", nil)
}

// HandlePull asks upstream to download a model and returns to the dashboard
// once it has finished.
func (h *Handler) HandlePull(c *gin.Context) {
	var form pullForm
	if err := c.ShouldBind(&form); err != nil || strings.TrimSpace(form.ModelName) == "" {
		renderError(c, http.StatusBadRequest, messageModelNameRequired)
		return
	}

	if err := h.client.PullModel(c.Request.Context(), strings.TrimSpace(form.ModelName)); err != nil {
		logUpstreamError(c, "error pulling model", err)
		renderError(c, http.StatusBadGateway, messagePullError)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.client.DeleteModel(c.Request.Context(), c.Param("model")); err != nil {
		logUpstreamError(c, "error deleting model", err)
		renderError(c, http.StatusBadGateway, messageDeleteError)
		return
	}

	c.Redirect(http.StatusFound, "/")
}
