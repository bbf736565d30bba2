package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"finetune-gateway/internal/domain"
)

// FinetuneUseCase creates provider fine-tuning jobs and keeps their stored
// status projection fresh. The stored row is a convenience projection; a
// write failure there never fails the provider-side operation.
type FinetuneUseCase struct {
	jobs     domain.TrainingJobRepository
	provider domain.ProviderClient
	wake     func()
}

func NewFinetuneUseCase(jobs domain.TrainingJobRepository, provider domain.ProviderClient, wake func()) *FinetuneUseCase {
	return &FinetuneUseCase{jobs: jobs, provider: provider, wake: wake}
}

func (uc *FinetuneUseCase) CreateJob(ctx context.Context, ownerID uuid.UUID, datasetID, modelName, baseModel string) (*domain.ProviderModel, error) {
	if datasetID == "" || modelName == "" || baseModel == "" {
		return nil, domain.ErrMissingFinetuneFields
	}

	pm, err := uc.provider.CreateFinetunedModel(ctx, modelName, baseModel, datasetID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	job := &domain.TrainingJob{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		OwnerID:   ownerID,
		JobID:     pm.ID,
		Name:      modelName,
		BaseModel: baseModel,
		DatasetID: datasetID,
		Status:    domain.NormalizeJobStatus(pm.Status),
	}
	if err := uc.jobs.Create(ctx, job); err != nil {
		log.WithError(err).WithField("job_id", pm.ID).Error("store training job failed")
	}

	if uc.wake != nil {
		uc.wake()
	}
	return pm, nil
}

// RefreshJob fetches the provider's current view of one job and folds the
// status back into the stored row.
func (uc *FinetuneUseCase) RefreshJob(ctx context.Context, ownerID uuid.UUID, jobID string) (*domain.ProviderModel, error) {
	if jobID == "" {
		return nil, domain.ErrMissingJobID
	}

	pm, err := uc.provider.GetFinetunedModel(ctx, jobID)
	if err != nil {
		return nil, err
	}

	status := domain.NormalizeJobStatus(pm.Status)
	if err := uc.jobs.UpdateStatusForOwner(ctx, jobID, ownerID, status); err != nil {
		log.WithError(err).WithField("job_id", jobID).Warn("update training job status failed")
	}
	return pm, nil
}

func (uc *FinetuneUseCase) ListJobs(ctx context.Context, ownerID uuid.UUID) ([]*domain.TrainingJob, error) {
	return uc.jobs.ListByOwner(ctx, ownerID)
}
