package handler

import (
	"github.com/gin-gonic/gin"

	"finetune-gateway/internal/usecase"
)

type Handler struct {
	chatUC     *usecase.ChatUseCase
	datasetUC  *usecase.DatasetUseCase
	finetuneUC *usecase.FinetuneUseCase
	modelUC    *usecase.ManagedModelUseCase
	ledgerUC   *usecase.LedgerUseCase
}

func New(chatUC *usecase.ChatUseCase, datasetUC *usecase.DatasetUseCase, finetuneUC *usecase.FinetuneUseCase, modelUC *usecase.ManagedModelUseCase, ledgerUC *usecase.LedgerUseCase) *Handler {
	return &Handler{
		chatUC:     chatUC,
		datasetUC:  datasetUC,
		finetuneUC: finetuneUC,
		modelUC:    modelUC,
		ledgerUC:   ledgerUC,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Chat gateway
	r.POST("/chat", h.Chat)

	// Datasets
	r.GET("/datasets", h.ListDatasets)
	r.POST("/datasets", h.UploadDataset)
	r.DELETE("/datasets/:id", h.DeleteDataset)

	// Fine-tuning
	r.POST("/fine-tune", h.CreateFinetune)
	r.GET("/fine-tune", h.ListTrainingJobs)
	r.GET("/fine-tune/:id", h.GetFinetune)

	// Managed models
	r.GET("/models", h.ListModels)
	r.POST("/models", h.RegisterModel)
	r.GET("/models/:id", h.GetModel)
	r.DELETE("/models/:id", h.DeleteModel)

	// Provider model catalog
	r.GET("/provider-models", h.ListProviderModels)

	// Usage analytics
	r.GET("/usage", h.ListUsage)
}
