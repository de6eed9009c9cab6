package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// CreateRunRequest represents a request to start a frequency selection run
type CreateRunRequest struct {
	Body struct {
		Host     string `json:"host" required:"true" doc:"Device IPv4 address"`
		Username string `json:"username" minLength:"1" required:"true" doc:"RouterOS API user"`
		Password string `json:"password" doc:"RouterOS API password"`
	}
}

// CreateRunResponseBody is the body of the create run response
type CreateRunResponseBody struct {
	ID     string `json:"id" doc:"Run unique identifier"`
	Status string `json:"status" doc:"Initial run status"`
}

// CreateRunResponse represents the response from starting a run
type CreateRunResponse struct {
	Status int
	Body   CreateRunResponseBody
}

// ListRunsRequest represents a request to list recent runs
type ListRunsRequest struct {
	Limit int `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum number of runs"`
}

// ListRunsResponse represents recent runs, newest first
type ListRunsResponse struct {
	Body struct {
		Runs []*Run `json:"runs" doc:"Recent runs"`
	}
}

// GetRunStatusRequest represents a request to get run status
type GetRunStatusRequest struct {
	ID string `path:"id" doc:"Run ID"`
}

// GetRunStatusResponseBody is the body of the status response
type GetRunStatusResponseBody struct {
	ID       string  `json:"id" doc:"Run ID"`
	Host     string  `json:"host" doc:"Device address"`
	Status   string  `json:"status" enum:"pending,processing,completed,failed" doc:"Run status"`
	Progress int     `json:"progress" minimum:"0" maximum:"100" doc:"Run progress percentage"`
	Message  string  `json:"message,omitempty" doc:"Human-readable status message"`
	ScanList *string `json:"scan_list,omitempty" doc:"Applied scan-list when the run completes"`
	Error    *string `json:"error,omitempty" doc:"Failure reason"`
}

// GetRunStatusResponse represents the current status of a run
type GetRunStatusResponse struct {
	Body GetRunStatusResponseBody
}

// GetRunReportRequest represents a request to get a run report
type GetRunReportRequest struct {
	ID string `path:"id" doc:"Run ID"`
}

// GetRunReportResponseBody is the body of the report response
type GetRunReportResponseBody struct {
	RunReport
	ReportURL string `json:"report_url,omitempty" doc:"Pre-signed download URL of the archived report"`
}

// GetRunReportResponse represents the complete run report
type GetRunReportResponse struct {
	Body GetRunReportResponseBody
}
