package mailscan

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMail struct {
	refs    []MessageRef
	msgs    map[string]RawEmail
	fail    map[string]error
	fetches int
}

func (f *fakeMail) ListMessages(ctx context.Context, userID, query string) ([]MessageRef, error) {
	return f.refs, nil
}

func (f *fakeMail) GetMessage(ctx context.Context, userID, id string) (RawEmail, error) {
	f.fetches++
	if err, ok := f.fail[id]; ok {
		return RawEmail{}, err
	}
	return f.msgs[id], nil
}

type fakeApps struct {
	rows   []StoredApplication
	nextID uint
}

func (f *fakeApps) FindByFuzzyCompany(ctx context.Context, userID, fragment string) ([]StoredApplication, error) {
	var out []StoredApplication
	frag := strings.ToLower(fragment)
	// Most recently inserted first and matching in both directions,
	// mirroring the store's query.
	for i := len(f.rows) - 1; i >= 0; i-- {
		row := f.rows[i]
		stored := strings.ToLower(row.Company)
		if row.UserID == userID && (strings.Contains(stored, frag) || strings.Contains(frag, stored)) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeApps) Insert(ctx context.Context, app StoredApplication) (uint, error) {
	f.nextID++
	app.ID = f.nextID
	f.rows = append(f.rows, app)
	return app.ID, nil
}

func (f *fakeApps) UpdateFields(ctx context.Context, userID string, id uint, patch Patch) error {
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			if patch.Status != nil {
				f.rows[i].Status = *patch.Status
			}
			if patch.DateApplied != nil {
				f.rows[i].DateApplied = patch.DateApplied
			}
			return nil
		}
	}
	return errors.New("no such application")
}

type fakeEvents struct {
	has      bool
	recorded []CalendarEventRequest
}

func (f *fakeEvents) HasEventOn(ctx context.Context, userID, summaryPrefix string, day time.Time) (bool, error) {
	return f.has, nil
}

func (f *fakeEvents) Record(ctx context.Context, userID string, req CalendarEventRequest) error {
	f.recorded = append(f.recorded, req)
	return nil
}

type fakeSink struct {
	err     error
	created []CalendarEventRequest
}

func (f *fakeSink) CreateEvent(ctx context.Context, userID string, req CalendarEventRequest) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, req)
	return nil
}

type fakeScorer struct {
	chance int
	err    error
}

func (f *fakeScorer) ScoreChance(ctx context.Context, company, role string, status StatusTag) (int, error) {
	return f.chance, f.err
}

type fakeCache struct {
	seen   map[string]bool
	marked []string
}

func (f *fakeCache) Seen(ctx context.Context, userID, messageID string) (bool, error) {
	return f.seen[messageID], nil
}

func (f *fakeCache) MarkSeen(ctx context.Context, userID, messageID string) error {
	f.marked = append(f.marked, messageID)
	return nil
}

var fixedNow = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func testScanner(mail *fakeMail, apps *fakeApps, events *fakeEvents, sink *fakeSink, scorer ChanceScorer, cache ScanCache) *Scanner {
	s := NewScanner(mail, apps, events, sink, scorer, cache, ScannerOptions{
		FetchesPerSecond: 1000,
	})
	s.now = func() time.Time { return fixedNow }
	return s
}

func applicationMail(id string) RawEmail {
	return RawEmail{
		ID:         id,
		Sender:     "LinkedIn <jobs-noreply@linkedin.com>",
		Subject:    "Your application was sent to Acme Corp",
		Snippet:    "Your application was sent",
		TextBody:   "Your application for Backend Engineer was sent to Acme Corp.",
		ReceivedAt: time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC),
	}
}

func interviewMail(id, company string) RawEmail {
	return RawEmail{
		ID:         id,
		Sender:     "Recruiting <talent@" + strings.ToLower(company) + ".example>",
		Subject:    "Interview invitation – Backend Engineer at " + company,
		Snippet:    "Interview invitation",
		TextBody:   "Your interview is on Mar 14 at 2pm. Good luck!",
		ReceivedAt: time.Date(2026, time.February, 12, 8, 0, 0, 0, time.UTC),
	}
}

func TestScanMailboxCreatesApplication(t *testing.T) {
	mail := &fakeMail{
		refs: []MessageRef{{ID: "m1"}},
		msgs: map[string]RawEmail{"m1": applicationMail("m1")},
	}
	apps := &fakeApps{}
	cache := &fakeCache{seen: map[string]bool{}}
	s := testScanner(mail, apps, &fakeEvents{}, &fakeSink{}, &fakeScorer{chance: 55}, cache)

	created, err := s.ScanMailbox(context.Background(), "user-1", "category:primary")
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	require.Len(t, apps.rows, 1)
	row := apps.rows[0]
	assert.Equal(t, "user-1", row.UserID)
	assert.Equal(t, "Acme Corp", row.Company)
	assert.Equal(t, "Backend Engineer", row.Role)
	assert.Equal(t, StatusApplied, row.Status)
	assert.Equal(t, 55, row.AIChance)
	require.NotNil(t, row.DateApplied)
	assert.Equal(t, time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC), *row.DateApplied)

	assert.Equal(t, []string{"m1"}, cache.marked)
}

func TestScanMailboxSecondEmailUpdatesExisting(t *testing.T) {
	mail := &fakeMail{
		refs: []MessageRef{{ID: "m1"}, {ID: "m2"}},
		msgs: map[string]RawEmail{
			"m1": applicationMail("m1"),
			"m2": interviewMail("m2", "Acme Corp"),
		},
	}
	apps := &fakeApps{}
	events := &fakeEvents{}
	sink := &fakeSink{}
	s := testScanner(mail, apps, events, sink, &fakeScorer{chance: 55}, nil)

	created, err := s.ScanMailbox(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	require.Len(t, apps.rows, 1)
	assert.Equal(t, StatusInterview, apps.rows[0].Status)

	require.Len(t, sink.created, 1)
	assert.Equal(t, "Interview: Acme Corp", sink.created[0].Summary)
	assert.Equal(t, time.Date(2026, time.March, 14, 14, 0, 0, 0, time.UTC), sink.created[0].StartTime)
	assert.Len(t, events.recorded, 1)
}

func TestScanMailboxMatchesStoredCompanyVariant(t *testing.T) {
	mail := &fakeMail{
		refs: []MessageRef{{ID: "m1"}},
		msgs: map[string]RawEmail{"m1": interviewMail("m1", "Globex Inc")},
	}
	// The row was created from an earlier email that resolved the shorter
	// name; the follow-up mail spells the employer out in full.
	apps := &fakeApps{
		rows:   []StoredApplication{{ID: 1, UserID: "user-1", Company: "Globex", Status: StatusApplied}},
		nextID: 1,
	}
	s := testScanner(mail, apps, &fakeEvents{}, &fakeSink{}, nil, nil)

	created, err := s.ScanMailbox(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	require.Len(t, apps.rows, 1)
	assert.Equal(t, "Globex", apps.rows[0].Company)
	assert.Equal(t, StatusInterview, apps.rows[0].Status)
	require.NotNil(t, apps.rows[0].DateApplied)
	assert.Equal(t, time.Date(2026, time.February, 12, 8, 0, 0, 0, time.UTC), *apps.rows[0].DateApplied)
}

func TestScanMailboxFailureIsolation(t *testing.T) {
	mail := &fakeMail{
		refs: []MessageRef{{ID: "bad"}, {ID: "good"}},
		msgs: map[string]RawEmail{"good": applicationMail("good")},
		fail: map[string]error{"bad": errors.New("transient fetch failure")},
	}
	apps := &fakeApps{}
	cache := &fakeCache{seen: map[string]bool{}}
	s := testScanner(mail, apps, &fakeEvents{}, &fakeSink{}, nil, cache)

	created, err := s.ScanMailbox(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Len(t, apps.rows, 1)

	// Only the processed message is remembered; the failed one stays eligible
	// for the next scan.
	assert.Equal(t, []string{"good"}, cache.marked)
}

func TestScanMailboxSkipsSeenMessages(t *testing.T) {
	mail := &fakeMail{
		refs: []MessageRef{{ID: "m1"}},
		msgs: map[string]RawEmail{"m1": applicationMail("m1")},
	}
	apps := &fakeApps{}
	cache := &fakeCache{seen: map[string]bool{"m1": true}}
	s := testScanner(mail, apps, &fakeEvents{}, &fakeSink{}, nil, cache)

	created, err := s.ScanMailbox(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Zero(t, mail.fetches)
	assert.Empty(t, apps.rows)
}

func TestScanMailboxCalendarFailureSwallowed(t *testing.T) {
	mail := &fakeMail{
		refs: []MessageRef{{ID: "m1"}},
		msgs: map[string]RawEmail{"m1": interviewMail("m1", "Globex")},
	}
	apps := &fakeApps{}
	events := &fakeEvents{}
	sink := &fakeSink{err: errors.New("calendar quota exceeded")}
	s := testScanner(mail, apps, events, sink, nil, nil)

	created, err := s.ScanMailbox(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	require.Len(t, apps.rows, 1)
	assert.Equal(t, StatusInterview, apps.rows[0].Status)
	assert.Empty(t, events.recorded)
}

func TestScanMailboxSkipsDuplicateInterviewEvents(t *testing.T) {
	mail := &fakeMail{
		refs: []MessageRef{{ID: "m1"}},
		msgs: map[string]RawEmail{"m1": interviewMail("m1", "Globex")},
	}
	events := &fakeEvents{has: true}
	sink := &fakeSink{}
	s := testScanner(mail, &fakeApps{}, events, sink, nil, nil)

	_, err := s.ScanMailbox(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Empty(t, sink.created)
}

func TestScanMailboxIgnoresNonJobMail(t *testing.T) {
	mail := &fakeMail{
		refs: []MessageRef{{ID: "m1"}},
		msgs: map[string]RawEmail{"m1": {
			ID:         "m1",
			Sender:     "Shop <noreply@shop.example>",
			Subject:    "Your order has shipped",
			Snippet:    "Track your package",
			ReceivedAt: time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC),
		}},
	}
	apps := &fakeApps{}
	s := testScanner(mail, apps, &fakeEvents{}, &fakeSink{}, nil, nil)

	created, err := s.ScanMailbox(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Empty(t, apps.rows)
}

func TestScanMailboxScorerFallback(t *testing.T) {
	mail := &fakeMail{
		refs: []MessageRef{{ID: "m1"}},
		msgs: map[string]RawEmail{"m1": applicationMail("m1")},
	}
	apps := &fakeApps{}
	scorer := &fakeScorer{err: errors.New("provider unavailable")}
	s := testScanner(mail, apps, &fakeEvents{}, &fakeSink{}, scorer, nil)

	_, err := s.ScanMailbox(context.Background(), "user-1", "")
	require.NoError(t, err)

	require.Len(t, apps.rows, 1)
	// Both fields came from the subject line, so the extraction confidence
	// backs the chance value.
	assert.Equal(t, 84, apps.rows[0].AIChance)
}

func TestScanMailboxHonorsMessageCap(t *testing.T) {
	mail := &fakeMail{
		refs: []MessageRef{{ID: "m1"}, {ID: "m2"}, {ID: "m3"}},
		msgs: map[string]RawEmail{
			"m1": applicationMail("m1"),
			"m2": applicationMail("m2"),
			"m3": applicationMail("m3"),
		},
	}
	s := NewScanner(mail, &fakeApps{}, &fakeEvents{}, &fakeSink{}, nil, nil, ScannerOptions{
		MaxMessages:      2,
		FetchesPerSecond: 1000,
	})

	_, err := s.ScanMailbox(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, 2, mail.fetches)
}

func TestExtractRecordIsDeterministic(t *testing.T) {
	s := testScanner(&fakeMail{}, &fakeApps{}, &fakeEvents{}, &fakeSink{}, nil, nil)

	t.Run("same message yields the same record", func(t *testing.T) {
		msg := applicationMail("m1")
		first, ok := s.ExtractRecord(msg)
		require.True(t, ok)
		second, ok := s.ExtractRecord(msg)
		require.True(t, ok)
		assert.Equal(t, first, second)
	})

	t.Run("same rejection both times", func(t *testing.T) {
		msg := applicationMail("m1")
		msg.Sender = "Weekly Newsletter <news@example.com>"
		_, ok := s.ExtractRecord(msg)
		require.False(t, ok)
		_, ok = s.ExtractRecord(msg)
		assert.False(t, ok)
	})
}

func TestExtractRecordGates(t *testing.T) {
	s := testScanner(&fakeMail{}, &fakeApps{}, &fakeEvents{}, &fakeSink{}, nil, nil)

	t.Run("stale mail is discarded", func(t *testing.T) {
		msg := applicationMail("m1")
		msg.ReceivedAt = time.Date(2019, time.May, 1, 0, 0, 0, 0, time.UTC)
		_, ok := s.ExtractRecord(msg)
		assert.False(t, ok)
	})

	t.Run("blocked sender is discarded", func(t *testing.T) {
		msg := applicationMail("m1")
		msg.Sender = "Career Newsletter <digest@jobs.example>"
		_, ok := s.ExtractRecord(msg)
		assert.False(t, ok)
	})

	t.Run("blocked company overrides extraction", func(t *testing.T) {
		msg := applicationMail("m1")
		msg.Subject = "Your application was sent to Amazon"
		msg.TextBody = "Your application for Backend Engineer was sent to Amazon."
		_, ok := s.ExtractRecord(msg)
		assert.False(t, ok)
	})

	t.Run("unknown role falls back to a generic label", func(t *testing.T) {
		msg := RawEmail{
			ID:         "m1",
			Sender:     "Hooli <careers@hooli.example>",
			Subject:    "Thank you for applying to Hooli",
			Snippet:    "application received",
			TextBody:   "Our engineering team will review your profile.",
			ReceivedAt: time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC),
		}
		record, ok := s.ExtractRecord(msg)
		require.True(t, ok)
		assert.Equal(t, "Hooli", record.Company)
		assert.Equal(t, "Engineer", record.Role)
	})

	t.Run("unresolvable role discards the record", func(t *testing.T) {
		msg := RawEmail{
			ID:         "m1",
			Sender:     "Hooli <careers@hooli.example>",
			Subject:    "Thank you for applying to Hooli",
			Snippet:    "application received",
			TextBody:   "We will be in touch.",
			ReceivedAt: time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC),
		}
		_, ok := s.ExtractRecord(msg)
		assert.False(t, ok)
	})
}
