package mailscan

import "time"

// Unknown is the placeholder for a company or role that no extraction
// strategy has resolved yet. It must never reach persisted output.
const Unknown = "Unknown"

// JobBoardLabel replaces the company name when an extraction resolves the
// job board itself (LinkedIn notifications carry the board's name in places
// where the employer should be).
const JobBoardLabel = "LinkedIn Job Board"

// RawEmail is the immutable view of a fetched message that the pipeline
// consumes. It is derived once per message and never mutated.
type RawEmail struct {
	ID         string
	Subject    string
	Sender     string
	Snippet    string
	TextBody   string
	HTMLBody   string
	ReceivedAt time.Time
}

// ExtractedJobRecord is the value produced by a successful pipeline run.
// It has no identity until the reconciler persists it.
type ExtractedJobRecord struct {
	Company        string
	Role           string
	Status         StatusTag
	EventTimestamp time.Time
	Confidence     int
}

// CalendarEventRequest describes a best-effort scheduling side effect for an
// interview email. Failures creating the event never abort the pipeline.
type CalendarEventRequest struct {
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// StoredApplication is the reconciler's view of a persisted application row.
type StoredApplication struct {
	ID          uint
	UserID      string
	Company     string
	Role        string
	Status      StatusTag
	DateApplied *time.Time
	AIChance    int
	CreatedAt   time.Time
}

// Patch is the minimal field-level update the reconciler computes for an
// existing application. Nil fields are left untouched.
type Patch struct {
	Status      *StatusTag
	DateApplied *time.Time
}

// Empty reports whether the patch would change nothing.
func (p Patch) Empty() bool {
	return p.Status == nil && p.DateApplied == nil
}

// ActionKind enumerates the reconciler's possible decisions.
type ActionKind int

const (
	ActionCreate ActionKind = iota
	ActionUpdate
	ActionNone
)

func (k ActionKind) String() string {
	switch k {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionNone:
		return "noop"
	}
	return "unknown"
}

// Action is the reconciler's decision for one candidate record.
// TargetID is set for ActionUpdate and ActionNone (the matched row).
type Action struct {
	Kind     ActionKind
	TargetID uint
	Patch    Patch
}
