package domain

import (
	"context"
	"io"
	"time"
)

// ChatReply is the provider's answer to one chat call.
type ChatReply struct {
	Text       string
	TokensUsed int64
}

type ProviderDataset struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	ValidationStatus string    `json:"validation_status"`
	ExamplesCount    int       `json:"examples_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type ProviderModel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	BaseModel string    `json:"base_model"`
	DatasetID string    `json:"dataset_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ProviderClient is the outbound surface of the model provider. Chat takes the
// credential per call so byok requests never touch shared client state; the
// remaining operations always run under the platform credential.
type ProviderClient interface {
	Chat(ctx context.Context, apiKey, model, message string) (*ChatReply, error)
	CreateDataset(ctx context.Context, name, filename string, data io.Reader) (*ProviderDataset, error)
	ListDatasets(ctx context.Context) ([]ProviderDataset, error)
	DeleteDataset(ctx context.Context, id string) error
	CreateFinetunedModel(ctx context.Context, name, baseModel, datasetID string) (*ProviderModel, error)
	GetFinetunedModel(ctx context.Context, id string) (*ProviderModel, error)
	ListFinetunedModels(ctx context.Context) ([]ProviderModel, error)
	Ping(ctx context.Context) error
}
