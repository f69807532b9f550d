package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ollamadash/middlewares"
	"ollamadash/models"
	"ollamadash/services"
)

const (
	messageChatError      = "Chat error"
	messagePromptRequired = "Prompt is required"
)

type promptForm struct {
	Prompt string `form:"prompt" binding:"required"`
}

// ShowChat opens or resumes the session's chat with a model.
func (h *Handler) ShowChat(c *gin.Context) {
	if !requireUpstream(c) {
		return
	}

	history, err := h.chat.History(c.Request.Context(), middlewares.CurrentSessionID(c))
	if err != nil {
		logUpstreamError(c, "error loading chat history", err)
		renderError(c, http.StatusInternalServerError, messageChatError)
		return
	}

	renderChat(c, http.StatusOK, history, "", "")
}

// HandleChat submits one prompt. On failure the chat view is rendered with
// the unchanged history, the rejected prompt and an error banner.
func (h *Handler) HandleChat(c *gin.Context) {
	if !requireUpstream(c) {
		return
	}

	ctx := c.Request.Context()
	sessionID := middlewares.CurrentSessionID(c)

	var form promptForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderChatFailure(c, http.StatusBadRequest, messagePromptRequired, "")
		return
	}

	history, err := h.chat.Submit(ctx, sessionID, c.Param("model"), form.Prompt)
	switch {
	case errors.Is(err, services.ErrEmptyPrompt):
		h.renderChatFailure(c, http.StatusBadRequest, messagePromptRequired, form.Prompt)
		return
	case err != nil:
		logUpstreamError(c, "chat error", err)
		h.renderChatFailure(c, http.StatusBadGateway, messageChatError, form.Prompt)
		return
	}

	renderChat(c, http.StatusOK, history, "", "")
}

func (h *Handler) renderChatFailure(c *gin.Context, status int, message, prompt string) {
	history, err := h.chat.History(c.Request.Context(), middlewares.CurrentSessionID(c))
	if err != nil {
		logUpstreamError(c, "error loading chat history", err)
		renderError(c, status, message)
		return
	}
	renderChat(c, status, history, prompt, message)
}

func renderChat(c *gin.Context, status int, history models.Transcript, prompt, errMessage string) {
	c.HTML(status, "chat.tmpl", gin.H{
		"Model":   c.Param("model"),
		"History": history,
		"Prompt":  prompt,
		"Error":   errMessage,
	})
}
