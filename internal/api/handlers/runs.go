package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/RMahshie/scanlist/internal/automation"
	"github.com/RMahshie/scanlist/internal/device"
	"github.com/RMahshie/scanlist/internal/netutil"
	"github.com/RMahshie/scanlist/internal/repository"
	"github.com/RMahshie/scanlist/internal/storage"
	"github.com/RMahshie/scanlist/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RunHandler handles run-related HTTP requests
type RunHandler struct {
	repo    repository.RunRepository
	archive storage.ReportArchive
	svc     automation.Service
}

// NewRunHandler creates a new run handler. archive may be nil.
func NewRunHandler(repo repository.RunRepository, archive storage.ReportArchive, svc automation.Service) *RunHandler {
	return &RunHandler{
		repo:    repo,
		archive: archive,
		svc:     svc,
	}
}

// CreateRun records a run and processes it in the background
func (h *RunHandler) CreateRun(ctx context.Context, req *models.CreateRunRequest) (*models.CreateRunResponse, error) {
	log.Info().Str("host", req.Body.Host).Str("username", req.Body.Username).Msg("Run request received")

	run, err := h.svc.StartRun(ctx, req.Body.Host)
	if err != nil {
		var invalid *netutil.InvalidAddressError
		if errors.As(err, &invalid) {
			return nil, huma.Error400BadRequest(fmt.Sprintf("%s is invalid", invalid.Address), err)
		}
		return nil, huma.Error500InternalServerError("Failed to create run", err)
	}

	runID := uuid.MustParse(run.ID)
	creds := device.Credentials{
		Host:     req.Body.Host,
		Username: req.Body.Username,
		Password: req.Body.Password,
	}

	// Scans take tens of seconds; don't hold the request open
	go func() {
		if err := h.svc.ProcessRun(context.Background(), runID, creds); err != nil {
			log.Warn().Err(err).Str("run_id", run.ID).Msg("Background run failed")
		}
	}()

	return &models.CreateRunResponse{
		Status: http.StatusAccepted,
		Body: models.CreateRunResponseBody{
			ID:     run.ID,
			Status: run.Status,
		},
	}, nil
}

// ListRuns returns the most recent runs
func (h *RunHandler) ListRuns(ctx context.Context, req *models.ListRunsRequest) (*models.ListRunsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}

	runs, err := h.repo.List(ctx, limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list runs", err)
	}

	resp := &models.ListRunsResponse{}
	resp.Body.Runs = runs
	if resp.Body.Runs == nil {
		resp.Body.Runs = []*models.Run{}
	}
	return resp, nil
}

// GetRunStatus returns the current status of a run
func (h *RunHandler) GetRunStatus(ctx context.Context, req *models.GetRunStatusRequest) (*models.GetRunStatusResponse, error) {
	runID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid run ID", err)
	}

	run, err := h.repo.GetByID(ctx, runID)
	if err != nil {
		return nil, lookupError(err)
	}

	return &models.GetRunStatusResponse{
		Body: models.GetRunStatusResponseBody{
			ID:       run.ID,
			Host:     run.Host,
			Status:   run.Status,
			Progress: run.Progress,
			Message:  statusMessage(run.Status, run.Progress),
			ScanList: run.ScanList,
			Error:    run.ErrorMsg,
		},
	}, nil
}

// GetRunReport returns the report of a completed run
func (h *RunHandler) GetRunReport(ctx context.Context, req *models.GetRunReportRequest) (*models.GetRunReportResponse, error) {
	runID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid run ID", err)
	}

	run, err := h.repo.GetByID(ctx, runID)
	if err != nil {
		return nil, lookupError(err)
	}

	if run.Status != models.StatusCompleted {
		return nil, huma.Error409Conflict("Run not yet completed",
			fmt.Errorf("run status is %s", run.Status))
	}

	report, err := h.repo.GetReport(ctx, runID)
	if errors.Is(err, repository.ErrNotFound) && h.archive != nil && run.ReportKey != nil {
		report, err = h.archivedReport(ctx, *run.ReportKey)
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to get report", err)
	}

	resp := &models.GetRunReportResponse{}
	resp.Body.RunReport = *report

	if h.archive != nil && run.ReportKey != nil {
		url, err := h.archive.GenerateDownloadURL(ctx, *run.ReportKey)
		if err != nil {
			log.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to sign report URL")
		} else {
			resp.Body.ReportURL = url
		}
	}

	return resp, nil
}

// archivedReport loads a report the repository no longer holds
func (h *RunHandler) archivedReport(ctx context.Context, key string) (*models.RunReport, error) {
	body, err := h.archive.GetReport(ctx, key)
	if err != nil {
		return nil, err
	}

	var report models.RunReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to decode archived report: %w", err)
	}
	return &report, nil
}

func lookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return huma.Error404NotFound("Run not found", err)
	}
	return huma.Error500InternalServerError("Failed to get run", err)
}

// statusMessage creates a human-readable status message
func statusMessage(status string, progress int) string {
	switch status {
	case models.StatusPending:
		return "Run queued..."
	case models.StatusProcessing:
		if progress < 40 {
			return "Running spectral scan..."
		} else if progress < 70 {
			return "Selecting frequencies..."
		} else if progress < 90 {
			return "Applying scan-list..."
		} else {
			return "Saving report..."
		}
	case models.StatusCompleted:
		return "Scan-list applied"
	case models.StatusFailed:
		return "Run failed"
	default:
		return "Unknown status"
	}
}
