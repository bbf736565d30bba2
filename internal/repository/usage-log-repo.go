package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"finetune-gateway/internal/domain"
)

type usageLogRepo struct {
	pool *pgxpool.Pool
}

func NewUsageLogRepository(pool *pgxpool.Pool) domain.UsageLogRepository {
	return &usageLogRepo{pool: pool}
}

func (r *usageLogRepo) Append(ctx context.Context, entry *domain.UsageLogEntry) error {
	query := `
		INSERT INTO usage_logs (id, owner_id, model_id, access_method, tokens_used, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.OwnerID, entry.ModelID,
		string(entry.AccessMethod), entry.TokensUsed, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append usage log: %w", err)
	}
	return nil
}

func (r *usageLogRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.UsageLogEntry, error) {
	query := `
		SELECT id, owner_id, model_id, access_method, tokens_used, created_at
		FROM usage_logs
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list usage logs: %w", err)
	}
	defer rows.Close()

	var entries []*domain.UsageLogEntry
	for rows.Next() {
		e := &domain.UsageLogEntry{}
		var method string
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.ModelID, &method, &e.TokensUsed, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usage log row: %w", err)
		}
		e.AccessMethod = domain.AccessMethod(method)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage log rows: %w", err)
	}
	return entries, nil
}
