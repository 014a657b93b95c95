// Package models holds the persisted entities backing the application
// tracker.
package models

import "time"

// Application is one tracked job application, keyed per user.
type Application struct {
	ID          uint       `gorm:"primaryKey"`
	UserID      string     `gorm:"size:64;index:idx_app_user;not null"`
	Company     string     `gorm:"size:255;not null"`
	Role        string     `gorm:"size:255;not null"`
	Status      string     `gorm:"size:32;not null;default:'Applied'"`
	DateApplied *time.Time `gorm:"type:date"`
	AIChance    int        `gorm:"column:ai_chance"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InterviewEvent records an interview scheduled from a scanned email, so
// re-scans can detect that a calendar event already exists.
type InterviewEvent struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      string    `gorm:"size:64;index:idx_event_user;not null"`
	Summary     string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:1024"`
	StartTime   time.Time `gorm:"not null"`
	EndTime     time.Time `gorm:"not null"`
	CreatedAt   time.Time
}
