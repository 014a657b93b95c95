package mailscan

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"jobtrail/internal/logging"
)

// ScannerOptions tune one scan invocation's behavior.
type ScannerOptions struct {
	// MaxMessages caps how many listed messages one scan will process.
	MaxMessages int
	// PerMessageTimeout bounds the fetch-and-process work for one message.
	// A timeout is a per-message failure, not a scan abort.
	PerMessageTimeout time.Duration
	// MinEmailYear feeds the validity gate's stale-mail guard.
	MinEmailYear int
	// FetchesPerSecond rate-limits calls against the mail source.
	FetchesPerSecond float64
}

func (o ScannerOptions) withDefaults() ScannerOptions {
	if o.MaxMessages <= 0 {
		o.MaxMessages = 100
	}
	if o.PerMessageTimeout <= 0 {
		o.PerMessageTimeout = 15 * time.Second
	}
	if o.FetchesPerSecond <= 0 {
		o.FetchesPerSecond = 5
	}
	return o
}

// Scanner drives the full pipeline over a batch of fetched messages for one
// user. Messages are processed strictly sequentially: each reconciliation
// must observe the writes of prior iterations, so two emails about the same
// company within one scan produce at most one new record.
type Scanner struct {
	mail     MailSource
	apps     ApplicationStore
	events   EventStore
	calendar CalendarSink
	scorer   ChanceScorer
	cache    ScanCache
	gate     ValidityGate
	opts     ScannerOptions
	limiter  *rate.Limiter

	// now is swapped in tests.
	now func() time.Time
}

// NewScanner wires a scanner from its collaborators. scorer and cache may be
// nil; scoring then falls back to the extraction confidence and every listed
// message is treated as unseen.
func NewScanner(mail MailSource, apps ApplicationStore, events EventStore, calendar CalendarSink, scorer ChanceScorer, cache ScanCache, opts ScannerOptions) *Scanner {
	opts = opts.withDefaults()
	return &Scanner{
		mail:     mail,
		apps:     apps,
		events:   events,
		calendar: calendar,
		scorer:   scorer,
		cache:    cache,
		gate:     NewValidityGate(opts.MinEmailYear),
		opts:     opts,
		limiter:  rate.NewLimiter(rate.Limit(opts.FetchesPerSecond), 1),
		now:      time.Now,
	}
}

// ScanMailbox runs the pipeline over every message matching the query and
// returns the count of newly created application records. A failure on one
// message is logged and skipped; it never drops the remaining messages.
func (s *Scanner) ScanMailbox(ctx context.Context, userID, query string) (int, error) {
	log := logging.FromContext(ctx).With().Str("user_id", userID).Logger()

	refs, err := s.mail.ListMessages(ctx, userID, query)
	if err != nil {
		return 0, fmt.Errorf("listing messages: %w", err)
	}
	if len(refs) > s.opts.MaxMessages {
		refs = refs[:s.opts.MaxMessages]
	}

	log.Info().Int("messages", len(refs)).Str("query", query).Msg("mailbox scan started")

	created := 0
	for _, ref := range refs {
		if ctx.Err() != nil {
			return created, ctx.Err()
		}

		if s.cache != nil {
			seen, err := s.cache.Seen(ctx, userID, ref.ID)
			if err != nil {
				log.Warn().Err(err).Str("message_id", ref.ID).Msg("scan cache lookup failed")
			} else if seen {
				continue
			}
		}

		delta, err := s.processMessage(ctx, userID, ref.ID)
		if err != nil {
			log.Warn().Err(err).Str("message_id", ref.ID).Msg("message skipped")
			continue
		}
		created += delta

		if s.cache != nil {
			if err := s.cache.MarkSeen(ctx, userID, ref.ID); err != nil {
				log.Warn().Err(err).Str("message_id", ref.ID).Msg("scan cache write failed")
			}
		}
	}

	log.Info().Int("created", created).Msg("mailbox scan finished")
	return created, nil
}

// processMessage runs one message through the whole pipeline. A nil error
// with zero delta means the message was examined and legitimately produced
// nothing, which is the expected outcome for most mail.
func (s *Scanner) processMessage(ctx context.Context, userID, messageID string) (int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	msgCtx, cancel := context.WithTimeout(ctx, s.opts.PerMessageTimeout)
	defer cancel()

	raw, err := s.mail.GetMessage(msgCtx, userID, messageID)
	if err != nil {
		return 0, fmt.Errorf("fetching message: %w", err)
	}

	record, ok := s.ExtractRecord(raw)
	if !ok {
		return 0, nil
	}

	matches, err := s.apps.FindByFuzzyCompany(msgCtx, userID, record.Company)
	if err != nil {
		return 0, fmt.Errorf("looking up existing applications: %w", err)
	}

	action := Reconcile(record, matches)
	log := logging.FromContext(ctx).With().
		Str("user_id", userID).
		Str("company", record.Company).
		Str("action", action.Kind.String()).
		Logger()

	switch action.Kind {
	case ActionCreate:
		app := StoredApplication{
			UserID:      userID,
			Company:     record.Company,
			Role:        record.Role,
			Status:      record.Status,
			AIChance:    s.scoreChance(msgCtx, record),
			DateApplied: &record.EventTimestamp,
		}
		if _, err := s.apps.Insert(msgCtx, app); err != nil {
			return 0, fmt.Errorf("inserting application: %w", err)
		}
		if record.Status == StatusInterview {
			s.scheduleInterview(ctx, userID, raw, record)
		}
		log.Info().Str("role", record.Role).Str("status", string(record.Status)).Msg("application created")
		return 1, nil

	case ActionUpdate:
		if err := s.apps.UpdateFields(msgCtx, userID, action.TargetID, action.Patch); err != nil {
			return 0, fmt.Errorf("updating application %d: %w", action.TargetID, err)
		}
		if action.Patch.Status != nil && *action.Patch.Status == StatusInterview {
			s.scheduleInterview(ctx, userID, raw, record)
		}
		log.Info().Uint("application_id", action.TargetID).Msg("application updated")
		return 0, nil
	}

	return 0, nil
}

// ExtractRecord runs the stateless pipeline stages (gates, classifier,
// extraction, status) over one message. The boolean is false when the message
// is not a job application: a designed negative result, not an error.
func (s *Scanner) ExtractRecord(raw RawEmail) (ExtractedJobRecord, bool) {
	if s.gate.Stale(raw.ReceivedAt) {
		return ExtractedJobRecord{}, false
	}
	if s.gate.BlockedSender(raw.Sender) {
		return ExtractedJobRecord{}, false
	}
	if s.gate.BlockedSubject(raw.Subject) {
		return ExtractedJobRecord{}, false
	}
	if !IsJobEmail(raw.Subject, raw.Snippet) {
		return ExtractedJobRecord{}, false
	}

	fields := ExtractCompanyAndRole(raw)
	if fields.Company == Unknown {
		return ExtractedJobRecord{}, false
	}
	// The company gate runs mid-pipeline: it can override an otherwise
	// successful extraction.
	if s.gate.BlockedCompany(fields.Company) {
		return ExtractedJobRecord{}, false
	}

	body := bodyText(raw)
	if fields.Role == Unknown {
		fields.Role = GenericRoleFallback(raw.Subject, body)
		if fields.Role == "" {
			return ExtractedJobRecord{}, false
		}
	}

	status := ClassifyStatus(raw.Subject, body)
	return ExtractedJobRecord{
		Company:        fields.Company,
		Role:           fields.Role,
		Status:         status,
		EventTimestamp: raw.ReceivedAt,
		Confidence:     ScoreConfidence(fields, status),
	}, true
}

// scheduleInterview extracts an interview moment from the message body and
// pushes a calendar event, guarded by a duplicate check against events
// already recorded for the same day. Failures here are logged and swallowed;
// they never abort the record write.
func (s *Scanner) scheduleInterview(ctx context.Context, userID string, raw RawEmail, record ExtractedJobRecord) {
	log := logging.FromContext(ctx).With().Str("user_id", userID).Str("company", record.Company).Logger()

	start, end, ok := ExtractInterviewMoment(bodyText(raw), s.now())
	if !ok {
		return
	}

	summary := fmt.Sprintf("Interview: %s", record.Company)
	exists, err := s.events.HasEventOn(ctx, userID, summary, start)
	if err != nil {
		log.Warn().Err(err).Msg("event duplicate check failed")
		return
	}
	if exists {
		log.Debug().Time("start", start).Msg("interview event already scheduled")
		return
	}

	req := CalendarEventRequest{
		Summary:     summary,
		Description: fmt.Sprintf("%s interview for the %s position", record.Company, record.Role),
		StartTime:   start,
		EndTime:     end,
	}
	if err := s.calendar.CreateEvent(ctx, userID, req); err != nil {
		log.Warn().Err(err).Msg("calendar event creation failed")
		return
	}
	if err := s.events.Record(ctx, userID, req); err != nil {
		log.Warn().Err(err).Msg("recording calendar event failed")
	}
	log.Info().Time("start", start).Msg("interview event scheduled")
}

// scoreChance asks the scorer for the applicant's odds, falling back to the
// extraction confidence when no scorer is wired or it fails.
func (s *Scanner) scoreChance(ctx context.Context, record ExtractedJobRecord) int {
	if s.scorer == nil {
		return record.Confidence
	}
	chance, err := s.scorer.ScoreChance(ctx, record.Company, record.Role, record.Status)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("chance scoring failed, using extraction confidence")
		return record.Confidence
	}
	return chance
}
