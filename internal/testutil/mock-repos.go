package testutil

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"finetune-gateway/internal/domain"
)

// MockManagedModelRepo is a mock of ManagedModelRepository.
type MockManagedModelRepo struct {
	mock.Mock
}

func (m *MockManagedModelRepo) Create(ctx context.Context, model *domain.ManagedModel) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockManagedModelRepo) GetByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*domain.ManagedModel, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManagedModel), args.Error(1)
}

func (m *MockManagedModelRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ManagedModel, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ManagedModel), args.Error(1)
}

func (m *MockManagedModelRepo) IncrementUsage(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockManagedModelRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

// MockUsageLogRepo is a mock of UsageLogRepository.
type MockUsageLogRepo struct {
	mock.Mock
}

func (m *MockUsageLogRepo) Append(ctx context.Context, entry *domain.UsageLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockUsageLogRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.UsageLogEntry, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UsageLogEntry), args.Error(1)
}

// MockTrainingJobRepo is a mock of TrainingJobRepository.
type MockTrainingJobRepo struct {
	mock.Mock
}

func (m *MockTrainingJobRepo) Create(ctx context.Context, job *domain.TrainingJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockTrainingJobRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.TrainingJob, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TrainingJob), args.Error(1)
}

func (m *MockTrainingJobRepo) ListByStatus(ctx context.Context, statuses []domain.JobStatus) ([]*domain.TrainingJob, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TrainingJob), args.Error(1)
}

func (m *MockTrainingJobRepo) UpdateStatus(ctx context.Context, jobID string, status domain.JobStatus) error {
	args := m.Called(ctx, jobID, status)
	return args.Error(0)
}

func (m *MockTrainingJobRepo) UpdateStatusForOwner(ctx context.Context, jobID string, ownerID uuid.UUID, status domain.JobStatus) error {
	args := m.Called(ctx, jobID, ownerID, status)
	return args.Error(0)
}

// MockProviderClient is a mock of ProviderClient.
type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) Chat(ctx context.Context, apiKey, model, message string) (*domain.ChatReply, error) {
	args := m.Called(ctx, apiKey, model, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatReply), args.Error(1)
}

func (m *MockProviderClient) CreateDataset(ctx context.Context, name, filename string, data io.Reader) (*domain.ProviderDataset, error) {
	args := m.Called(ctx, name, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderDataset), args.Error(1)
}

func (m *MockProviderClient) ListDatasets(ctx context.Context) ([]domain.ProviderDataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProviderDataset), args.Error(1)
}

func (m *MockProviderClient) DeleteDataset(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProviderClient) CreateFinetunedModel(ctx context.Context, name, baseModel, datasetID string) (*domain.ProviderModel, error) {
	args := m.Called(ctx, name, baseModel, datasetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderModel), args.Error(1)
}

func (m *MockProviderClient) GetFinetunedModel(ctx context.Context, id string) (*domain.ProviderModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderModel), args.Error(1)
}

func (m *MockProviderClient) ListFinetunedModels(ctx context.Context) ([]domain.ProviderModel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProviderModel), args.Error(1)
}

func (m *MockProviderClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockIdentityVerifier is a mock of IdentityVerifier.
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
