package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/scanlist/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a run or report does not exist
var ErrNotFound = errors.New("not found")

// RunRepository defines the interface for run history operations
type RunRepository interface {
	Create(ctx context.Context, run *models.Run) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Run, error)
	List(ctx context.Context, limit int) ([]*models.Run, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	StoreReport(ctx context.Context, report *models.RunReport, reportKey *string) error
	GetReport(ctx context.Context, runID uuid.UUID) (*models.RunReport, error)
}
