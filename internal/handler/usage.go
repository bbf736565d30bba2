package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"finetune-gateway/internal/domain"
	"finetune-gateway/internal/dto"
	"finetune-gateway/internal/middleware"
)

func (h *Handler) ListUsage(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.ledgerUC.ListRecent(c.Request.Context(), ownerID, limit)
	if err != nil {
		log.WithError(err).Error("list usage failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.UsageLogResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.ToUsageLogResponse(e))
	}
	c.JSON(http.StatusOK, gin.H{"usage": items})
}
