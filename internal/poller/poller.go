package poller

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"finetune-gateway/internal/domain"
	"finetune-gateway/internal/metrics"
)

// JobSource is the stored-job side of a refresh pass.
type JobSource interface {
	ListByStatus(ctx context.Context, statuses []domain.JobStatus) ([]*domain.TrainingJob, error)
	UpdateStatus(ctx context.Context, jobID string, status domain.JobStatus) error
}

// StatusFetcher reads the provider's current view of one job.
type StatusFetcher interface {
	GetFinetunedModel(ctx context.Context, id string) (*domain.ProviderModel, error)
}

// Poller refreshes training job statuses from the provider on a fixed
// interval while any tracked job is non-terminal. When everything is
// terminal the timer is not armed; Kick wakes the loop when a new job
// appears. Each refresh replaces the snapshot wholesale (last write wins).
type Poller struct {
	jobs        JobSource
	provider    StatusFetcher
	interval    time.Duration
	nonTerminal []domain.JobStatus
	metrics     *metrics.Metrics

	kick chan struct{}

	mu       sync.RWMutex
	snapshot []*domain.TrainingJob
}

func New(jobs JobSource, provider StatusFetcher, interval time.Duration, nonTerminal []domain.JobStatus, m *metrics.Metrics) *Poller {
	if len(nonTerminal) == 0 {
		nonTerminal = []domain.JobStatus{domain.JobStatusPending, domain.JobStatusTraining}
	}
	return &Poller{
		jobs:        jobs,
		provider:    provider,
		interval:    interval,
		nonTerminal: nonTerminal,
		metrics:     m,
		kick:        make(chan struct{}, 1),
	}
}

// Kick wakes the loop without blocking. Safe from any goroutine.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Snapshot returns the jobs observed by the most recent refresh.
func (p *Poller) Snapshot() []*domain.TrainingJob {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

func (p *Poller) tracked(status domain.JobStatus) bool {
	for _, s := range p.nonTerminal {
		if s == status {
			return true
		}
	}
	return false
}

// Run drives the loop until ctx is cancelled. Single goroutine, no busy
// waiting: when no job is non-terminal the loop parks on the kick channel.
func (p *Poller) Run(ctx context.Context) {
	active := p.refresh(ctx)
	for {
		if !active {
			select {
			case <-ctx.Done():
				return
			case <-p.kick:
			}
		} else {
			timer := time.NewTimer(p.interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-p.kick:
				timer.Stop()
			case <-timer.C:
			}
		}
		active = p.refresh(ctx)
	}
}

// refresh fetches every non-terminal job's provider status, persists changes
// and replaces the snapshot. Returns true while another tick is needed.
func (p *Poller) refresh(ctx context.Context) bool {
	jobs, err := p.jobs.ListByStatus(ctx, p.nonTerminal)
	if err != nil {
		log.WithError(err).Error("list non-terminal jobs failed")
		return true
	}
	if p.metrics != nil {
		p.metrics.PollerRefreshesTotal.Inc()
	}

	remaining := false
	for _, job := range jobs {
		pm, err := p.provider.GetFinetunedModel(ctx, job.JobID)
		if err != nil {
			log.WithError(err).WithField("job_id", job.JobID).Warn("fetch job status failed")
			remaining = true
			continue
		}

		status := domain.NormalizeJobStatus(pm.Status)
		if status != job.Status {
			if err := p.jobs.UpdateStatus(ctx, job.JobID, status); err != nil {
				log.WithError(err).WithField("job_id", job.JobID).Warn("persist job status failed")
			}
			job.Status = status
		}
		if p.tracked(status) {
			remaining = true
		}
	}

	p.mu.Lock()
	p.snapshot = jobs
	p.mu.Unlock()

	return remaining
}
