package domain

import "errors"

var (
	// Chat gateway errors.
	ErrMissingChatFields   = errors.New("Missing required fields: model_id and message")
	ErrAPIKeyRequired      = errors.New("API key required for BYOK access method")
	ErrUnknownAccessMethod = errors.New("unsupported access method")
	ErrUnauthorized        = errors.New("Unauthorized")
	ErrPlatformKeyMissing  = errors.New("Platform provider API key not configured")
	ErrModelNotFound       = errors.New("Model not found or access denied")
	ErrUsageLimitExceeded  = errors.New("Usage limit reached for this model")

	// Provider-side errors, classified from the upstream response.
	ErrInvalidProviderKey    = errors.New("Invalid API key")
	ErrProviderModelNotFound = errors.New("Model not found or not accessible")
	ErrProviderRateLimited   = errors.New("Rate limit exceeded")
	ErrUpstreamUnavailable   = errors.New("provider request failed")

	// Fine-tune and dataset errors.
	ErrMissingFinetuneFields = errors.New("Missing required fields: datasetId, modelName, baseModel")
	ErrMissingDatasetUpload  = errors.New("Missing file or name")
	ErrEmptyDatasetFile      = errors.New("File is empty")
	ErrMissingDatasetID      = errors.New("Dataset ID is required")
	ErrMissingJobID          = errors.New("Model ID is required")
	ErrJobNotFound           = errors.New("training job not found")

	// Managed model registration errors.
	ErrInvalidModelName     = errors.New("model name is required")
	ErrMissingProviderModel = errors.New("provider model id is required")
)
