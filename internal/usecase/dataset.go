package usecase

import (
	"context"
	"io"

	"finetune-gateway/internal/domain"
)

type DatasetUseCase struct {
	provider domain.ProviderClient
}

func NewDatasetUseCase(provider domain.ProviderClient) *DatasetUseCase {
	return &DatasetUseCase{provider: provider}
}

func (uc *DatasetUseCase) Upload(ctx context.Context, name, filename string, size int64, data io.Reader) (*domain.ProviderDataset, error) {
	if name == "" || filename == "" {
		return nil, domain.ErrMissingDatasetUpload
	}
	if size == 0 {
		return nil, domain.ErrEmptyDatasetFile
	}
	return uc.provider.CreateDataset(ctx, name, filename, data)
}

func (uc *DatasetUseCase) List(ctx context.Context) ([]domain.ProviderDataset, error) {
	return uc.provider.ListDatasets(ctx)
}

func (uc *DatasetUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingDatasetID
	}
	return uc.provider.DeleteDataset(ctx, id)
}
