package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finetune-gateway/internal/domain"
)

type managedModelRepo struct {
	pool *pgxpool.Pool
}

func NewManagedModelRepository(pool *pgxpool.Pool) domain.ManagedModelRepository {
	return &managedModelRepo{pool: pool}
}

const managedModelColumns = `
	id, created_at, updated_at, owner_id, name, provider_model_id,
	usage_count, usage_limit, last_used_at
`

func (r *managedModelRepo) Create(ctx context.Context, model *domain.ManagedModel) error {
	query := `
		INSERT INTO managed_models
			(id, created_at, updated_at, owner_id, name, provider_model_id,
			 usage_count, usage_limit, last_used_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	_, err := r.pool.Exec(ctx, query,
		model.ID, model.CreatedAt, model.UpdatedAt,
		model.OwnerID, model.Name, model.ProviderModelID,
		model.UsageCount, model.UsageLimit, model.LastUsedAt,
	)
	if err != nil {
		return fmt.Errorf("create managed model: %w", err)
	}
	return nil
}

func (r *managedModelRepo) GetByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*domain.ManagedModel, error) {
	query := `SELECT` + managedModelColumns + `FROM managed_models WHERE id = $1 AND owner_id = $2`

	model, err := scanManagedModel(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("get managed model: %w", err)
	}
	return model, nil
}

func (r *managedModelRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ManagedModel, error) {
	query := `SELECT` + managedModelColumns + `FROM managed_models WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list managed models: %w", err)
	}
	defer rows.Close()

	var models []*domain.ManagedModel
	for rows.Next() {
		m, err := scanManagedModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan managed model row: %w", err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate managed model rows: %w", err)
	}
	return models, nil
}

// IncrementUsage is a single atomic statement so concurrent dispatches cannot
// lose increments.
func (r *managedModelRepo) IncrementUsage(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (int64, error) {
	query := `
		UPDATE managed_models
		SET usage_count = usage_count + 1, last_used_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING usage_count
	`
	var count int64
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrModelNotFound
		}
		return 0, fmt.Errorf("increment usage: %w", err)
	}
	return count, nil
}

func (r *managedModelRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	query := `DELETE FROM managed_models WHERE id = $1 AND owner_id = $2`
	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete managed model: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrModelNotFound
	}
	return nil
}

func scanManagedModel(row pgx.Row) (*domain.ManagedModel, error) {
	m := &domain.ManagedModel{}
	err := row.Scan(
		&m.ID, &m.CreatedAt, &m.UpdatedAt, &m.OwnerID, &m.Name,
		&m.ProviderModelID, &m.UsageCount, &m.UsageLimit, &m.LastUsedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}
