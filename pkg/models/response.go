package models

import "time"

// ScanResponse reports the outcome of a synchronous mailbox scan.
type ScanResponse struct {
	Success        bool          `json:"success"`
	Created        int           `json:"created"`
	ProcessingTime time.Duration `json:"processing_time"`
	RequestID      string        `json:"request_id"`
}

// AsyncScanResponse acknowledges a background scan submission.
type AsyncScanResponse struct {
	ProcessID string `json:"process_id"`
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
}

// ApplicationResponse is the API view of one tracked application.
type ApplicationResponse struct {
	ID          uint       `json:"id"`
	Company     string     `json:"company"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	DateApplied *time.Time `json:"date_applied,omitempty"`
	AIChance    int        `json:"ai_chance"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ApplicationListResponse wraps a user's applications.
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int                   `json:"total"`
}

// StatsResponse carries the dashboard's per-status counts.
type StatsResponse struct {
	Counts map[string]int64 `json:"counts"`
	Total  int64            `json:"total"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
