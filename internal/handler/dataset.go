package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"finetune-gateway/internal/domain"
	"finetune-gateway/internal/dto"
)

func (h *Handler) ListDatasets(c *gin.Context) {
	datasets, err := h.datasetUC.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list datasets failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.DatasetResponse, 0, len(datasets))
	for i := range datasets {
		items = append(items, dto.ToDatasetResponse(&datasets[i]))
	}
	c.JSON(http.StatusOK, gin.H{"datasets": items})
}

func (h *Handler) UploadDataset(c *gin.Context) {
	name := c.PostForm("name")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingDatasetUpload.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	dataset, err := h.datasetUC.Upload(c.Request.Context(), name, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		log.WithError(err).Error("upload dataset failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"dataset": dto.ToDatasetResponse(dataset)})
}

func (h *Handler) DeleteDataset(c *gin.Context) {
	if err := h.datasetUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		log.WithError(err).Error("delete dataset failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dataset deleted successfully"})
}
