package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RMahshie/scanlist/internal/repository"
	"github.com/RMahshie/scanlist/pkg/models"
	"github.com/google/uuid"
)

// PostgresRunRepository implements RunRepository for PostgreSQL
type PostgresRunRepository struct {
	db *sql.DB
}

// NewPostgresRunRepository creates a new PostgreSQL run repository
func NewPostgresRunRepository(db *sql.DB) repository.RunRepository {
	return &PostgresRunRepository{db: db}
}

const runColumns = `id, host, status, progress, scan_list, report_key, error_message, created_at, updated_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var run models.Run
	var scanList, reportKey, errorMsg sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&run.ID,
		&run.Host,
		&run.Status,
		&run.Progress,
		&scanList,
		&reportKey,
		&errorMsg,
		&run.CreatedAt,
		&run.UpdatedAt,
		&completedAt)
	if err != nil {
		return nil, err
	}

	if scanList.Valid {
		run.ScanList = &scanList.String
	}
	if reportKey.Valid {
		run.ReportKey = &reportKey.String
	}
	if errorMsg.Valid {
		run.ErrorMsg = &errorMsg.String
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return &run, nil
}

// Create inserts a new run record
func (r *PostgresRunRepository) Create(ctx context.Context, run *models.Run) error {
	query := `
		INSERT INTO runs (id, host, status, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Host,
		run.Status,
		run.Progress,
		run.CreatedAt,
		run.UpdatedAt)

	return err
}

// GetByID retrieves a run by ID
func (r *PostgresRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = $1`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return run, err
}

// List retrieves the most recent runs
func (r *PostgresRunRepository) List(ctx context.Context, limit int) ([]*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// UpdateStatus updates the status and progress of a run
func (r *PostgresRunRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	query := `
		UPDATE runs
		SET status = $1, progress = $2, updated_at = NOW(),
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, status, progress, id)
	return err
}

// UpdateError marks a run failed with a message
func (r *PostgresRunRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE runs
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, errorMsg, id)
	return err
}

// StoreReport stores a run report and records the scan-list on the run
func (r *PostgresRunRepository) StoreReport(ctx context.Context, report *models.RunReport, reportKey *string) error {
	windows, err := json.Marshal(report.Windows)
	if err != nil {
		return fmt.Errorf("failed to marshal windows: %w", err)
	}
	ranked, err := json.Marshal(report.Ranked)
	if err != nil {
		return fmt.Errorf("failed to marshal ranked frequencies: %w", err)
	}
	plan, err := json.Marshal(report.Plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO run_reports (id, run_id, samples_collected, frequencies, windows, ranked, plan, scan_list, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := tx.ExecContext(ctx, query,
		report.ID,
		report.RunID,
		report.SamplesCollected,
		report.Frequencies,
		string(windows),
		string(ranked),
		string(plan),
		report.ScanList,
		report.CreatedAt); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE runs SET scan_list = $1, report_key = $2, updated_at = NOW() WHERE id = $3`,
		report.ScanList, reportKey, report.RunID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetReport retrieves the report of a run
func (r *PostgresRunRepository) GetReport(ctx context.Context, runID uuid.UUID) (*models.RunReport, error) {
	query := `
		SELECT id, run_id, samples_collected, frequencies, windows, ranked, plan, scan_list, created_at
		FROM run_reports
		WHERE run_id = $1`

	var report models.RunReport
	var windows, ranked, plan []byte

	err := r.db.QueryRowContext(ctx, query, runID).Scan(
		&report.ID,
		&report.RunID,
		&report.SamplesCollected,
		&report.Frequencies,
		&windows,
		&ranked,
		&plan,
		&report.ScanList,
		&report.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(windows, &report.Windows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal windows: %w", err)
	}
	if err := json.Unmarshal(ranked, &report.Ranked); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ranked frequencies: %w", err)
	}
	if err := json.Unmarshal(plan, &report.Plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}

	return &report, nil
}
