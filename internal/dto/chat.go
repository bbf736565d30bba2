package dto

type ChatRequest struct {
	ModelID      string `json:"model_id"`
	Message      string `json:"message"`
	AccessMethod string `json:"access_method"`
	UserAPIKey   string `json:"user_api_key"`
	Stream       bool   `json:"stream"`
}

type UsageDTO struct {
	TokensUsed     int64  `json:"tokens_used"`
	RemainingCalls *int64 `json:"remaining_calls"`
}

type ChatResponse struct {
	Response     string    `json:"response"`
	ModelID      string    `json:"model_id"`
	AccessMethod string    `json:"access_method"`
	Usage        *UsageDTO `json:"usage"`
}
