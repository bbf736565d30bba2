package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"finetune-gateway/internal/domain"
	"finetune-gateway/internal/dto"
	"finetune-gateway/internal/middleware"
)

func (h *Handler) ListModels(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
		return
	}

	models, err := h.modelUC.List(c.Request.Context(), ownerID)
	if err != nil {
		log.WithError(err).Error("list models failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ManagedModelResponse, 0, len(models))
	for _, m := range models {
		items = append(items, dto.ToManagedModelResponse(m))
	}
	c.JSON(http.StatusOK, gin.H{"models": items})
}

func (h *Handler) RegisterModel(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
		return
	}

	var req dto.RegisterModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model, err := h.modelUC.Register(c.Request.Context(), ownerID, req.Name, req.ProviderModelID, req.UsageLimit)
	if err != nil {
		log.WithError(err).Error("register model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToManagedModelResponse(model))
}

func (h *Handler) GetModel(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrModelNotFound.Error()})
		return
	}

	model, err := h.modelUC.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToManagedModelResponse(model))
}

func (h *Handler) DeleteModel(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrModelNotFound.Error()})
		return
	}

	if err := h.modelUC.Delete(c.Request.Context(), ownerID, id); err != nil {
		log.WithError(err).Error("delete model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) ListProviderModels(c *gin.Context) {
	models, err := h.modelUC.ListProviderModels(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list provider models failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ProviderModelResponse, 0, len(models))
	for i := range models {
		items = append(items, dto.ToProviderModelResponse(&models[i]))
	}
	c.JSON(http.StatusOK, gin.H{"models": items})
}
