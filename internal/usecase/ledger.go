package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"finetune-gateway/internal/domain"
	"finetune-gateway/internal/metrics"
)

// LedgerUseCase meters proxy calls: the pre-call ceiling gate and the
// post-call usage recording.
type LedgerUseCase struct {
	models  domain.ManagedModelRepository
	logs    domain.UsageLogRepository
	metrics *metrics.Metrics
}

func NewLedgerUseCase(models domain.ManagedModelRepository, logs domain.UsageLogRepository, m *metrics.Metrics) *LedgerUseCase {
	return &LedgerUseCase{models: models, logs: logs, metrics: m}
}

// CheckCeiling is evaluated before the outbound call. A limit of zero or
// below means unlimited.
func (uc *LedgerUseCase) CheckCeiling(usageCount, usageLimit int64) error {
	if usageLimit > 0 && usageCount >= usageLimit {
		return domain.ErrUsageLimitExceeded
	}
	return nil
}

// RecordUsage increments the model's counter atomically and appends one audit
// entry. Called only after a successful proxy call. The audit append is
// best-effort: a failure there is logged but does not undo the increment.
func (uc *LedgerUseCase) RecordUsage(ctx context.Context, modelID, ownerID uuid.UUID, tokensUsed int64) (int64, error) {
	newCount, err := uc.models.IncrementUsage(ctx, modelID, ownerID)
	if err != nil {
		return 0, err
	}
	if uc.metrics != nil {
		uc.metrics.UsageRecordedTotal.Inc()
	}

	entry := &domain.UsageLogEntry{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		ModelID:      modelID,
		AccessMethod: domain.AccessMethodProxy,
		TokensUsed:   tokensUsed,
		CreatedAt:    time.Now(),
	}
	if err := uc.logs.Append(ctx, entry); err != nil {
		log.WithError(err).WithField("model_id", modelID).Warn("append usage log failed")
	}

	return newCount, nil
}

// ListRecent returns the caller's latest audit entries.
func (uc *LedgerUseCase) ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.UsageLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return uc.logs.ListByOwner(ctx, ownerID, limit)
}
