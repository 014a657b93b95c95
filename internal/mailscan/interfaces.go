package mailscan

import (
	"context"
	"time"
)

// MessageRef identifies one message in the user's mailbox.
type MessageRef struct {
	ID string
}

// MailSource abstracts the mailbox the scanner reads from. The Gmail
// implementation lives in internal/mail; tests use an in-memory fake.
type MailSource interface {
	// ListMessages returns references for messages matching the search query.
	ListMessages(ctx context.Context, userID, query string) ([]MessageRef, error)

	// GetMessage fetches the full content of a single message.
	GetMessage(ctx context.Context, userID, id string) (RawEmail, error)
}

// ApplicationStore is the persistence collaborator for application rows.
type ApplicationStore interface {
	// FindByFuzzyCompany returns the user's applications where the stored
	// company and the fragment contain each other in either direction,
	// most recently created first.
	FindByFuzzyCompany(ctx context.Context, userID, fragment string) ([]StoredApplication, error)

	// Insert persists a new application and returns its ID.
	Insert(ctx context.Context, app StoredApplication) (uint, error)

	// UpdateFields applies a non-empty patch to an existing application.
	UpdateFields(ctx context.Context, userID string, id uint, patch Patch) error
}

// EventStore checks for and records interview events so the scanner can skip
// scheduling duplicates.
type EventStore interface {
	// HasEventOn reports whether the user already has an event whose summary
	// starts with summaryPrefix on the given calendar day.
	HasEventOn(ctx context.Context, userID, summaryPrefix string, day time.Time) (bool, error)

	// Record persists the event locally after the calendar sink accepted it.
	Record(ctx context.Context, userID string, req CalendarEventRequest) error
}

// CalendarSink pushes interview events to an external calendar. Implementations
// are best-effort: the scanner logs and swallows their failures.
type CalendarSink interface {
	CreateEvent(ctx context.Context, userID string, req CalendarEventRequest) error
}

// ChanceScorer estimates the applicant's odds for a newly created record.
// It is advisory only; the pipeline never depends on its success.
type ChanceScorer interface {
	ScoreChance(ctx context.Context, company, role string, status StatusTag) (int, error)
}

// ScanCache remembers which message IDs have already been ingested so a
// re-scan of the same mailbox skips them.
type ScanCache interface {
	Seen(ctx context.Context, userID, messageID string) (bool, error)
	MarkSeen(ctx context.Context, userID, messageID string) error
}
