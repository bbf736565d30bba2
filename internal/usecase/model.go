package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"finetune-gateway/internal/domain"
)

// ManagedModelUseCase maintains the caller's internal-handle to
// provider-model mappings.
type ManagedModelUseCase struct {
	models   domain.ManagedModelRepository
	provider domain.ProviderClient
}

func NewManagedModelUseCase(models domain.ManagedModelRepository, provider domain.ProviderClient) *ManagedModelUseCase {
	return &ManagedModelUseCase{models: models, provider: provider}
}

func (uc *ManagedModelUseCase) Register(ctx context.Context, ownerID uuid.UUID, name, providerModelID string, usageLimit int64) (*domain.ManagedModel, error) {
	if name == "" {
		return nil, domain.ErrInvalidModelName
	}
	if providerModelID == "" {
		return nil, domain.ErrMissingProviderModel
	}
	if usageLimit < 0 {
		usageLimit = 0
	}

	now := time.Now()
	model := &domain.ManagedModel{
		ID:              uuid.New(),
		CreatedAt:       now,
		UpdatedAt:       now,
		OwnerID:         ownerID,
		Name:            name,
		ProviderModelID: providerModelID,
		UsageLimit:      usageLimit,
	}
	if err := uc.models.Create(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (uc *ManagedModelUseCase) Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*domain.ManagedModel, error) {
	return uc.models.GetByIDAndOwner(ctx, id, ownerID)
}

func (uc *ManagedModelUseCase) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.ManagedModel, error) {
	return uc.models.ListByOwner(ctx, ownerID)
}

func (uc *ManagedModelUseCase) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	return uc.models.Delete(ctx, id, ownerID)
}

// ListProviderModels surfaces the provider's fine-tuned model listing.
func (uc *ManagedModelUseCase) ListProviderModels(ctx context.Context) ([]domain.ProviderModel, error) {
	return uc.provider.ListFinetunedModels(ctx)
}
