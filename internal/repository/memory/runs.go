package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/RMahshie/scanlist/internal/repository"
	"github.com/RMahshie/scanlist/pkg/models"
	"github.com/google/uuid"
)

// RunRepository keeps run history in process memory. It is used when no
// database is configured.
type RunRepository struct {
	mu      sync.RWMutex
	runs    map[string]models.Run
	reports map[string]models.RunReport
	now     func() time.Time
}

// NewRunRepository creates an empty in-memory run repository
func NewRunRepository() repository.RunRepository {
	return &RunRepository{
		runs:    make(map[string]models.Run),
		reports: make(map[string]models.RunReport),
		now:     time.Now,
	}
}

func (r *RunRepository) Create(ctx context.Context, run *models.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = *run
	return nil
}

func (r *RunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id.String()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &run, nil
}

func (r *RunRepository) List(ctx context.Context, limit int) ([]*models.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*models.Run, 0, len(r.runs))
	for _, run := range r.runs {
		run := run
		runs = append(runs, &run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (r *RunRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	return r.update(id, func(run *models.Run, now time.Time) {
		run.Status = status
		run.Progress = progress
		if status == models.StatusCompleted {
			run.CompletedAt = &now
		}
	})
}

func (r *RunRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	return r.update(id, func(run *models.Run, _ time.Time) {
		run.Status = models.StatusFailed
		run.ErrorMsg = &errorMsg
	})
}

func (r *RunRepository) StoreReport(ctx context.Context, report *models.RunReport, reportKey *string) error {
	id, err := uuid.Parse(report.RunID)
	if err != nil {
		return err
	}

	scanList := report.ScanList
	if err := r.update(id, func(run *models.Run, _ time.Time) {
		run.ScanList = &scanList
		run.ReportKey = reportKey
	}); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[report.RunID] = *report
	return nil
}

func (r *RunRepository) GetReport(ctx context.Context, runID uuid.UUID) (*models.RunReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[runID.String()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &report, nil
}

func (r *RunRepository) update(id uuid.UUID, fn func(*models.Run, time.Time)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[id.String()]
	if !ok {
		return repository.ErrNotFound
	}
	now := r.now()
	fn(&run, now)
	run.UpdatedAt = now
	r.runs[id.String()] = run
	return nil
}
