package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"jobtrail/internal/mailscan"
	"jobtrail/internal/storage/models"
)

// EventStore implements mailscan.EventStore on MySQL.
type EventStore struct {
	db *gorm.DB
}

// NewEventStore creates an interview event store backed by db.
func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

// HasEventOn reports whether the user already has an event with the given
// summary prefix on the same calendar day as day.
func (s *EventStore) HasEventOn(ctx context.Context, userID, summaryPrefix string, day time.Time) (bool, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.InterviewEvent{}).
		Where("user_id = ? AND summary LIKE ? AND start_time >= ? AND start_time < ?",
			userID, summaryPrefix+"%", dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking events for user %s: %w", userID, err)
	}
	return count > 0, nil
}

// Record persists an interview event after the calendar sink accepted it.
func (s *EventStore) Record(ctx context.Context, userID string, req mailscan.CalendarEventRequest) error {
	row := models.InterviewEvent{
		UserID:      userID,
		Summary:     req.Summary,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("recording interview event: %w", err)
	}
	return nil
}
