package dto

import "github.com/google/uuid"

type RegisterModelRequest struct {
	Name            string `json:"name"`
	ProviderModelID string `json:"provider_model_id"`
	UsageLimit      int64  `json:"usage_limit"`
}

type ManagedModelResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ProviderModelID string    `json:"provider_model_id"`
	UsageCount      int64     `json:"usage_count"`
	UsageLimit      int64     `json:"usage_limit"`
	LastUsedAt      *string   `json:"last_used_at"`
	CreatedAt       string    `json:"created_at"`
	UpdatedAt       string    `json:"updated_at"`
}

type UsageLogResponse struct {
	ID           uuid.UUID `json:"id"`
	ModelID      uuid.UUID `json:"model_id"`
	AccessMethod string    `json:"access_method"`
	TokensUsed   int64     `json:"tokens_used"`
	Timestamp    string    `json:"timestamp"`
}
