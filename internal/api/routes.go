package api

import (
	"net/http"

	"github.com/RMahshie/scanlist/internal/api/handlers"
	"github.com/RMahshie/scanlist/internal/automation"
	"github.com/RMahshie/scanlist/internal/repository"
	"github.com/RMahshie/scanlist/internal/storage"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, runRepo repository.RunRepository, archive storage.ReportArchive, svc automation.Service) {
	// Initialize handlers
	runHandler := handlers.NewRunHandler(runRepo, archive, svc)

	// Register run routes
	huma.Register(api, huma.Operation{
		OperationID:   "createRun",
		Method:        http.MethodPost,
		Path:          "/api/runs",
		Summary:       "Start a frequency selection run",
		Description:   "Scans the device's 5 GHz band and applies the selected scan-list in the background",
		Tags:          []string{"Runs"},
		DefaultStatus: http.StatusAccepted,
	}, runHandler.CreateRun)

	huma.Register(api, huma.Operation{
		OperationID: "listRuns",
		Method:      http.MethodGet,
		Path:        "/api/runs",
		Summary:     "List runs",
		Description: "Returns the most recent runs, newest first",
		Tags:        []string{"Runs"},
	}, runHandler.ListRuns)

	huma.Register(api, huma.Operation{
		OperationID: "getRunStatus",
		Method:      http.MethodGet,
		Path:        "/api/runs/{id}/status",
		Summary:     "Get run status",
		Description: "Returns the current status and progress of a run",
		Tags:        []string{"Runs"},
	}, runHandler.GetRunStatus)

	huma.Register(api, huma.Operation{
		OperationID: "getRunReport",
		Method:      http.MethodGet,
		Path:        "/api/runs/{id}/report",
		Summary:     "Get run report",
		Description: "Returns the windows, ranking and selection plan of a completed run",
		Tags:        []string{"Runs"},
	}, runHandler.GetRunReport)
}
