package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finetune-gateway/internal/domain"
)

type trainingJobRepo struct {
	pool *pgxpool.Pool
}

func NewTrainingJobRepository(pool *pgxpool.Pool) domain.TrainingJobRepository {
	return &trainingJobRepo{pool: pool}
}

const trainingJobColumns = `
	id, created_at, updated_at, owner_id, job_id, name, base_model, dataset_id, status
`

func (r *trainingJobRepo) Create(ctx context.Context, job *domain.TrainingJob) error {
	query := `
		INSERT INTO training_jobs
			(id, created_at, updated_at, owner_id, job_id, name, base_model, dataset_id, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	_, err := r.pool.Exec(ctx, query,
		job.ID, job.CreatedAt, job.UpdatedAt, job.OwnerID,
		job.JobID, job.Name, job.BaseModel, job.DatasetID, string(job.Status),
	)
	if err != nil {
		return fmt.Errorf("create training job: %w", err)
	}
	return nil
}

func (r *trainingJobRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.TrainingJob, error) {
	query := `SELECT` + trainingJobColumns + `FROM training_jobs WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list training jobs: %w", err)
	}
	defer rows.Close()
	return scanTrainingJobs(rows)
}

func (r *trainingJobRepo) ListByStatus(ctx context.Context, statuses []domain.JobStatus) ([]*domain.TrainingJob, error) {
	query := `SELECT` + trainingJobColumns + `FROM training_jobs WHERE status = ANY($1) ORDER BY created_at`

	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	rows, err := r.pool.Query(ctx, query, values)
	if err != nil {
		return nil, fmt.Errorf("list jobs by status: %w", err)
	}
	defer rows.Close()
	return scanTrainingJobs(rows)
}

func (r *trainingJobRepo) UpdateStatus(ctx context.Context, jobID string, status domain.JobStatus) error {
	query := `UPDATE training_jobs SET status = $1, updated_at = NOW() WHERE job_id = $2`
	result, err := r.pool.Exec(ctx, query, string(status), jobID)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *trainingJobRepo) UpdateStatusForOwner(ctx context.Context, jobID string, ownerID uuid.UUID, status domain.JobStatus) error {
	query := `UPDATE training_jobs SET status = $1, updated_at = NOW() WHERE job_id = $2 AND owner_id = $3`
	result, err := r.pool.Exec(ctx, query, string(status), jobID, ownerID)
	if err != nil {
		return fmt.Errorf("update job status for owner: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func scanTrainingJobs(rows pgx.Rows) ([]*domain.TrainingJob, error) {
	var jobs []*domain.TrainingJob
	for rows.Next() {
		j := &domain.TrainingJob{}
		var status string
		err := rows.Scan(
			&j.ID, &j.CreatedAt, &j.UpdatedAt, &j.OwnerID,
			&j.JobID, &j.Name, &j.BaseModel, &j.DatasetID, &status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan training job row: %w", err)
		}
		j.Status = domain.JobStatus(status)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate training job rows: %w", err)
	}
	return jobs, nil
}
