package domain

import (
	"context"

	"github.com/google/uuid"
)

type ManagedModelRepository interface {
	Create(ctx context.Context, model *ManagedModel) error
	// GetByIDAndOwner enforces ownership at lookup time: a wrong id and a
	// wrong owner are indistinguishable (both return ErrModelNotFound).
	GetByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*ManagedModel, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ManagedModel, error)
	// IncrementUsage atomically bumps usage_count and last_used_at and
	// returns the new count.
	IncrementUsage(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}

type UsageLogRepository interface {
	Append(ctx context.Context, entry *UsageLogEntry) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*UsageLogEntry, error)
}

type TrainingJobRepository interface {
	Create(ctx context.Context, job *TrainingJob) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*TrainingJob, error)
	ListByStatus(ctx context.Context, statuses []JobStatus) ([]*TrainingJob, error)
	UpdateStatus(ctx context.Context, jobID string, status JobStatus) error
	UpdateStatusForOwner(ctx context.Context, jobID string, ownerID uuid.UUID, status JobStatus) error
}

// IdentityVerifier resolves a caller-supplied bearer token to a principal id.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}
