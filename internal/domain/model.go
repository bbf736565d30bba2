package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type AccessMethod string

const (
	AccessMethodProxy AccessMethod = "proxy"
	AccessMethodBYOK  AccessMethod = "byok"
)

// ManagedModel maps a platform-internal model handle to the provider-side
// model identifier, scoped to its owner. UsageCount is mutated only through
// ManagedModelRepository.IncrementUsage.
type ManagedModel struct {
	ID              uuid.UUID  `json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	Name            string     `json:"name"`
	ProviderModelID string     `json:"provider_model_id"`
	UsageCount      int64      `json:"usage_count"`
	UsageLimit      int64      `json:"usage_limit"`
	LastUsedAt      *time.Time `json:"last_used_at"`
}

// Unlimited reports whether no usage ceiling applies.
func (m *ManagedModel) Unlimited() bool {
	return m.UsageLimit <= 0
}

// UsageLogEntry is an append-only audit record of one metered proxy call.
type UsageLogEntry struct {
	ID           uuid.UUID    `json:"id"`
	OwnerID      uuid.UUID    `json:"owner_id"`
	ModelID      uuid.UUID    `json:"model_id"`
	AccessMethod AccessMethod `json:"access_method"`
	TokensUsed   int64        `json:"tokens_used"`
	CreatedAt    time.Time    `json:"created_at"`
}

type JobStatus string

const (
	JobStatusPending  JobStatus = "pending"
	JobStatusTraining JobStatus = "training"
	JobStatusReady    JobStatus = "ready"
	JobStatusFailed   JobStatus = "failed"
)

// Terminal reports whether the status can no longer change on the provider side.
func (s JobStatus) Terminal() bool {
	return s == JobStatusReady || s == JobStatusFailed
}

// NormalizeJobStatus folds a provider status string (e.g. "STATUS_FINETUNING",
// "STATUS_READY") into the platform status set.
func NormalizeJobStatus(s string) JobStatus {
	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(upper, "READY"), strings.Contains(upper, "COMPLET"):
		return JobStatusReady
	case strings.Contains(upper, "FAIL"), strings.Contains(upper, "CANCEL"):
		return JobStatusFailed
	case strings.Contains(upper, "TRAIN"), strings.Contains(upper, "FINETUN"):
		return JobStatusTraining
	default:
		return JobStatusPending
	}
}

// TrainingJob is the stored projection of a provider fine-tuning job.
// Status is refreshed from the provider and never authoritative here.
type TrainingJob struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	OwnerID   uuid.UUID `json:"owner_id"`
	JobID     string    `json:"job_id"`
	Name      string    `json:"name"`
	BaseModel string    `json:"base_model"`
	DatasetID string    `json:"dataset_id"`
	Status    JobStatus `json:"status"`
}

// AccessRequest carries one chat dispatch. For the proxy method ModelID is an
// internal ManagedModel id; for byok it is the provider-side id verbatim.
type AccessRequest struct {
	ModelID      string
	Message      string
	AccessMethod AccessMethod
	CallerKey    string
	Stream       bool
}

// UsageInfo is the metering metadata attached to a successful proxy dispatch.
// RemainingCalls is nil when the model has no usage ceiling.
type UsageInfo struct {
	TokensUsed     int64
	RemainingCalls *int64
}

// ChatResult is the outcome of a successful dispatch. Usage is nil for byok.
type ChatResult struct {
	Response     string
	ModelID      string
	AccessMethod AccessMethod
	Usage        *UsageInfo
}
