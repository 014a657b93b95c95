// Package calendar implements the mailscan.CalendarSink collaborator on the
// Google Calendar API. The sink is best-effort by contract: callers swallow
// its failures.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"jobtrail/internal/config"
	"jobtrail/internal/mailscan"
)

// GoogleCalendar pushes interview events to the configured calendar.
type GoogleCalendar struct {
	service    *calendarapi.Service
	calendarID string
}

// NewGoogleCalendar builds a calendar client from the same credential files
// the Gmail source uses.
func NewGoogleCalendar(ctx context.Context, cfg *config.Config) (*GoogleCalendar, error) {
	b, err := os.ReadFile(cfg.Gmail.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading calendar credentials: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, calendarapi.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar credentials: %w", err)
	}

	tok, err := tokenFromFile(cfg.Gmail.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("loading calendar token: %w", err)
	}

	svc, err := calendarapi.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}

	return &GoogleCalendar{service: svc, calendarID: cfg.Calendar.CalendarID}, nil
}

// CreateEvent inserts a one-off event into the user's calendar.
func (g *GoogleCalendar) CreateEvent(ctx context.Context, userID string, req mailscan.CalendarEventRequest) error {
	event := &calendarapi.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       &calendarapi.EventDateTime{DateTime: req.StartTime.Format(time.RFC3339)},
		End:         &calendarapi.EventDateTime{DateTime: req.EndTime.Format(time.RFC3339)},
	}

	if _, err := g.service.Events.Insert(g.calendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("inserting calendar event: %w", err)
	}
	return nil
}

// NoopSink satisfies mailscan.CalendarSink when calendar integration is
// disabled. Every event is silently dropped.
type NoopSink struct{}

func (NoopSink) CreateEvent(context.Context, string, mailscan.CalendarEventRequest) error {
	return nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}
