package models

// ScanRequest triggers a mailbox scan for the calling user.
type ScanRequest struct {
	// Query narrows which messages are scanned; empty means the configured
	// default query.
	Query string `json:"query"`
	// Async runs the scan as a background task and returns a process ID
	// instead of blocking.
	Async bool `json:"async"`
}
