package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"finetune-gateway/internal/domain"
	"finetune-gateway/internal/dto"
	"finetune-gateway/internal/middleware"
)

func (h *Handler) CreateFinetune(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
		return
	}

	var req dto.CreateFinetuneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model, err := h.finetuneUC.CreateJob(c.Request.Context(), ownerID, req.DatasetID, req.ModelName, req.BaseModel)
	if err != nil {
		log.WithError(err).Error("create finetune failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"model": dto.ToProviderModelResponse(model)})
}

func (h *Handler) GetFinetune(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
		return
	}

	model, err := h.finetuneUC.RefreshJob(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		log.WithError(err).Error("get finetune failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"model": dto.ToProviderModelResponse(model)})
}

func (h *Handler) ListTrainingJobs(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
		return
	}

	jobs, err := h.finetuneUC.ListJobs(c.Request.Context(), ownerID)
	if err != nil {
		log.WithError(err).Error("list training jobs failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.TrainingJobResponse, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, dto.ToTrainingJobResponse(j))
	}
	c.JSON(http.StatusOK, gin.H{"jobs": items})
}
