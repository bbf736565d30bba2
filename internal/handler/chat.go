package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"finetune-gateway/internal/domain"
	"finetune-gateway/internal/dto"
	"finetune-gateway/internal/middleware"
)

func (h *Handler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
		return
	}

	result, err := h.chatUC.Dispatch(c.Request.Context(), ownerID, domain.AccessRequest{
		ModelID:      req.ModelID,
		Message:      req.Message,
		AccessMethod: domain.AccessMethod(req.AccessMethod),
		CallerKey:    req.UserAPIKey,
		Stream:       req.Stream,
	})
	if err != nil {
		log.WithError(err).Error("chat dispatch failed")
		mapDomainError(c, err)
		return
	}

	if req.Stream {
		h.writeChatStream(c, result)
		return
	}

	c.JSON(http.StatusOK, dto.ToChatResponse(result))
}

// writeChatStream emits the already-complete result as a single event on an
// event-stream response. The provider call is not relayed incrementally.
func (h *Handler) writeChatStream(c *gin.Context, result *domain.ChatResult) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	payload, err := json.Marshal(dto.ToChatResponse(result))
	if err != nil {
		log.WithError(err).Error("marshal stream payload failed")
		return
	}

	fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
	if flusher, ok := c.Writer.(http.Flusher); ok {
		flusher.Flush()
	}
}
