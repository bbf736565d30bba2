package dto

import (
	"time"

	"finetune-gateway/internal/domain"
)

const timeFormat = time.RFC3339

func ToChatResponse(r *domain.ChatResult) ChatResponse {
	resp := ChatResponse{
		Response:     r.Response,
		ModelID:      r.ModelID,
		AccessMethod: string(r.AccessMethod),
	}
	if r.Usage != nil {
		resp.Usage = &UsageDTO{
			TokensUsed:     r.Usage.TokensUsed,
			RemainingCalls: r.Usage.RemainingCalls,
		}
	}
	return resp
}

func ToProviderModelResponse(m *domain.ProviderModel) ProviderModelResponse {
	return ProviderModelResponse{
		ID:        m.ID,
		Name:      m.Name,
		Status:    m.Status,
		BaseModel: m.BaseModel,
		DatasetID: m.DatasetID,
		CreatedAt: m.CreatedAt.Format(timeFormat),
	}
}

func ToTrainingJobResponse(j *domain.TrainingJob) TrainingJobResponse {
	return TrainingJobResponse{
		ID:        j.ID.String(),
		JobID:     j.JobID,
		Name:      j.Name,
		BaseModel: j.BaseModel,
		DatasetID: j.DatasetID,
		Status:    string(j.Status),
		CreatedAt: j.CreatedAt.Format(timeFormat),
		UpdatedAt: j.UpdatedAt.Format(timeFormat),
	}
}

func ToDatasetResponse(d *domain.ProviderDataset) DatasetResponse {
	return DatasetResponse{
		ID:               d.ID,
		Name:             d.Name,
		Type:             d.Type,
		ValidationStatus: d.ValidationStatus,
		ExamplesCount:    d.ExamplesCount,
		CreatedAt:        d.CreatedAt.Format(timeFormat),
	}
}

func ToManagedModelResponse(m *domain.ManagedModel) ManagedModelResponse {
	resp := ManagedModelResponse{
		ID:              m.ID,
		Name:            m.Name,
		ProviderModelID: m.ProviderModelID,
		UsageCount:      m.UsageCount,
		UsageLimit:      m.UsageLimit,
		CreatedAt:       m.CreatedAt.Format(timeFormat),
		UpdatedAt:       m.UpdatedAt.Format(timeFormat),
	}
	if m.LastUsedAt != nil {
		s := m.LastUsedAt.Format(timeFormat)
		resp.LastUsedAt = &s
	}
	return resp
}

func ToUsageLogResponse(e *domain.UsageLogEntry) UsageLogResponse {
	return UsageLogResponse{
		ID:           e.ID,
		ModelID:      e.ModelID,
		AccessMethod: string(e.AccessMethod),
		TokensUsed:   e.TokensUsed,
		Timestamp:    e.CreatedAt.Format(timeFormat),
	}
}
