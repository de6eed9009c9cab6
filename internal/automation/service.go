package automation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RMahshie/scanlist/internal/device"
	"github.com/RMahshie/scanlist/internal/metrics"
	"github.com/RMahshie/scanlist/internal/netutil"
	"github.com/RMahshie/scanlist/internal/repository"
	"github.com/RMahshie/scanlist/internal/spectral"
	"github.com/RMahshie/scanlist/internal/storage"
	"github.com/RMahshie/scanlist/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service runs frequency selection against devices and records the outcome.
type Service interface {
	// StartRun validates host and records a pending run.
	StartRun(ctx context.Context, host string) (*models.Run, error)
	// ProcessRun scans the device, selects frequencies and applies the
	// scan-list. The run is marked failed when an error is returned.
	ProcessRun(ctx context.Context, runID uuid.UUID, creds device.Credentials) error
	// Run is StartRun followed by ProcessRun.
	Run(ctx context.Context, creds device.Credentials) (*models.Run, error)
}

type service struct {
	connector  device.Connector
	repository repository.RunRepository
	archive    storage.ReportArchive // optional
	recorder   metrics.Recorder      // optional
	options    spectral.Options
	now        func() time.Time
}

// NewService creates a run service. archive and recorder may be nil.
func NewService(connector device.Connector, repo repository.RunRepository, archive storage.ReportArchive, recorder metrics.Recorder, opts spectral.Options) Service {
	return &service{
		connector:  connector,
		repository: repo,
		archive:    archive,
		recorder:   recorder,
		options:    opts,
		now:        time.Now,
	}
}

func (s *service) StartRun(ctx context.Context, host string) (*models.Run, error) {
	if _, err := netutil.ValidateIPv4(host); err != nil {
		return nil, err
	}

	now := s.now()
	run := &models.Run{
		ID:        uuid.New().String(),
		Host:      host,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repository.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	log.Info().Str("run_id", run.ID).Str("host", host).Msg("Run created")
	return run, nil
}

func (s *service) ProcessRun(ctx context.Context, runID uuid.UUID, creds device.Credentials) error {
	started := s.now()
	logger := log.With().Str("run_id", runID.String()).Str("host", creds.Host).Logger()

	// Step 1: Update to processing status
	if err := s.repository.UpdateStatus(ctx, runID, models.StatusProcessing, 10); err != nil {
		return s.fail(ctx, runID, started, err)
	}

	// Step 2: Spectral scan over the whole band
	opener := device.Bind(s.connector, creds)
	raw, err := spectral.Collect(ctx, opener, s.options)
	if err != nil {
		return s.fail(ctx, runID, started, err)
	}
	logger.Info().Int("samples", raw.Len()).Msg("Spectral scan collected")

	// Step 3: Aggregate, rank and select
	if err := s.repository.UpdateStatus(ctx, runID, models.StatusProcessing, 40); err != nil {
		return s.fail(ctx, runID, started, err)
	}
	analysis, err := spectral.Analyze(raw)
	if err != nil {
		return s.fail(ctx, runID, started, err)
	}
	scanList := analysis.ScanList()
	logger.Info().
		Int("frequencies", len(analysis.Profile)).
		Int("windows", len(analysis.Windows)).
		Str("scan_list", scanList.String()).
		Msg("Frequencies selected")

	// Step 4: Apply the scan-list
	if err := s.repository.UpdateStatus(ctx, runID, models.StatusProcessing, 70); err != nil {
		return s.fail(ctx, runID, started, err)
	}
	if _, err := spectral.Apply(ctx, opener, s.options, scanList); err != nil {
		return s.fail(ctx, runID, started, err)
	}
	logger.Info().Str("scan_list", scanList.String()).Msg("Scan-list applied")

	// Step 5: Store the report
	if err := s.repository.UpdateStatus(ctx, runID, models.StatusProcessing, 90); err != nil {
		return s.fail(ctx, runID, started, err)
	}
	report := buildReport(runID, analysis, s.now())
	reportKey := s.archiveReport(ctx, report)
	if err := s.repository.StoreReport(ctx, report, reportKey); err != nil {
		return s.fail(ctx, runID, started, fmt.Errorf("failed to store report: %w", err))
	}

	// Step 6: Mark complete
	if err := s.repository.UpdateStatus(ctx, runID, models.StatusCompleted, 100); err != nil {
		return s.fail(ctx, runID, started, err)
	}

	if s.recorder != nil {
		s.recorder.RecordRun("completed", s.now().Sub(started))
		s.recorder.RecordSelection(len(analysis.Samples), len(scanList))
	}
	return nil
}

func (s *service) Run(ctx context.Context, creds device.Credentials) (*models.Run, error) {
	run, err := s.StartRun(ctx, creds.Host)
	if err != nil {
		return nil, err
	}

	id := uuid.MustParse(run.ID)
	processErr := s.ProcessRun(ctx, id, creds)

	final, err := s.repository.GetByID(context.WithoutCancel(ctx), id)
	if err != nil {
		final = run
	}
	return final, processErr
}

// fail records err on the run and returns it unchanged.
func (s *service) fail(ctx context.Context, runID uuid.UUID, started time.Time, err error) error {
	outcome := Outcome(err)
	log.Error().Err(err).Str("run_id", runID.String()).Str("outcome", outcome).Msg("Run failed")

	if updateErr := s.repository.UpdateError(context.WithoutCancel(ctx), runID, err.Error()); updateErr != nil {
		log.Error().Err(updateErr).Str("run_id", runID.String()).Msg("Failed to record run error")
	}
	if s.recorder != nil {
		s.recorder.RecordRun(outcome, s.now().Sub(started))
	}
	return err
}

// archiveReport uploads the report when an archive is configured. Archive
// failures are logged and leave the run without a report key.
func (s *service) archiveReport(ctx context.Context, report *models.RunReport) *string {
	if s.archive == nil {
		return nil
	}

	body, err := json.Marshal(report)
	if err != nil {
		log.Warn().Err(err).Str("run_id", report.RunID).Msg("Failed to encode report")
		return nil
	}

	key := storage.ReportKey(report.RunID)
	if err := s.archive.PutReport(ctx, key, body); err != nil {
		log.Warn().Err(err).Str("run_id", report.RunID).Msg("Failed to archive report")
		return nil
	}
	return &key
}

// Outcome classifies a run error for metrics and user-facing messages.
func Outcome(err error) string {
	var invalid *netutil.InvalidAddressError
	var coercion *spectral.CoercionError

	switch {
	case err == nil:
		return "completed"
	case errors.As(err, &invalid):
		return "invalid_address"
	case errors.Is(err, device.ErrConnection):
		return "connection_error"
	case errors.Is(err, device.ErrCommunication):
		return "communication_error"
	case errors.As(err, &coercion):
		return "data_error"
	default:
		return "error"
	}
}

func buildReport(runID uuid.UUID, analysis *spectral.Analysis, now time.Time) *models.RunReport {
	windows := make([]models.WindowPoint, len(analysis.Windows))
	for i, w := range analysis.Windows {
		windows[i] = models.WindowPoint{
			Frequency: w.Freq,
			DBM:       w.DBM,
			DBMVar:    w.DBMVar,
			Colon:     w.Colon,
			ColonVar:  w.ColonVar,
			Dot:       w.Dot,
			DotVar:    w.DotVar,
		}
	}

	plan := make([]models.SegmentChoice, len(analysis.Plan))
	for i, p := range analysis.Plan {
		plan[i] = models.SegmentChoice{Segment: p.Segment.Label(), Frequency: p.Frequency}
	}

	return &models.RunReport{
		ID:               uuid.New().String(),
		RunID:            runID.String(),
		SamplesCollected: len(analysis.Samples),
		Frequencies:      len(analysis.Profile),
		Windows:          windows,
		Ranked:           append([]int{}, analysis.Ranked...),
		Plan:             plan,
		ScanList:         analysis.ScanList().String(),
		CreatedAt:        now,
	}
}
