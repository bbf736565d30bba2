package dto

type CreateFinetuneRequest struct {
	DatasetID string `json:"dataset_id"`
	ModelName string `json:"model_name"`
	BaseModel string `json:"base_model"`
}

type ProviderModelResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	BaseModel string `json:"base_model"`
	DatasetID string `json:"dataset_id"`
	CreatedAt string `json:"created_at"`
}

type TrainingJobResponse struct {
	ID        string `json:"id"`
	JobID     string `json:"job_id"`
	Name      string `json:"name"`
	BaseModel string `json:"base_model"`
	DatasetID string `json:"dataset_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type DatasetResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	ValidationStatus string `json:"validation_status"`
	ExamplesCount    int    `json:"examples_count"`
	CreatedAt        string `json:"created_at"`
}
