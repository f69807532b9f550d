package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const messageGenerateError = "Error generating response"

func (h *Handler) ShowGenerate(c *gin.Context) {
	if !requireUpstream(c) {
		return
	}

	c.HTML(http.StatusOK, "generate.tmpl", gin.H{"Model": c.Param("model")})
}

// HandleGenerate runs a one-shot generation. Nothing is stored in the
// session.
func (h *Handler) HandleGenerate(c *gin.Context) {
	if !requireUpstream(c) {
		return
	}

	var form promptForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, http.StatusBadRequest, messagePromptRequired)
		return
	}

	model := c.Param("model")
	gen, err := h.client.Generate(c.Request.Context(), model, form.Prompt)
	if err != nil {
		logUpstreamError(c, "error generating response", err)
		renderError(c, http.StatusBadGateway, messageGenerateError)
		return
	}

	c.HTML(http.StatusOK, "generate.tmpl", gin.H{
		"Model":  model,
		"Prompt": form.Prompt,
		"Result": gen,
	})
}
