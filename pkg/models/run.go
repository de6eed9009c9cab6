package models

import (
	"time"
)

// Run statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Run represents one frequency selection run against a device (for internal use)
type Run struct {
	ID          string     `json:"id"`
	Host        string     `json:"host"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	ScanList    *string    `json:"scan_list,omitempty"`
	ReportKey   *string    `json:"report_key,omitempty"` // Archive object key
	ErrorMsg    *string    `json:"error_message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RunReport represents the stored outcome of a completed run
type RunReport struct {
	ID               string          `json:"id"`
	RunID            string          `json:"run_id"`
	SamplesCollected int             `json:"samples_collected"`
	Frequencies      int             `json:"frequencies"` // Distinct 1 MHz buckets
	Windows          []WindowPoint   `json:"windows"`
	Ranked           []int           `json:"ranked"`
	Plan             []SegmentChoice `json:"plan"`
	ScanList         string          `json:"scan_list"`
	CreatedAt        time.Time       `json:"created_at"`
}
