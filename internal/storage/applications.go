package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"jobtrail/internal/mailscan"
	"jobtrail/internal/storage/models"
)

// ApplicationStore implements mailscan.ApplicationStore on MySQL.
type ApplicationStore struct {
	db *gorm.DB
}

// NewApplicationStore creates an application store backed by db.
func NewApplicationStore(db *gorm.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// FindByFuzzyCompany returns the user's applications where either company
// name contains the other, most recently created first. The match runs in
// both directions so "Globex Inc" in a later email still lands on a row
// stored as "Globex". Recency ordering is what makes "first match wins" in
// the reconciler deterministic when several rows match.
func (s *ApplicationStore) FindByFuzzyCompany(ctx context.Context, userID, fragment string) ([]mailscan.StoredApplication, error) {
	var rows []models.Application
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND (company LIKE ? OR ? LIKE CONCAT('%', company, '%'))",
			userID, "%"+fragment+"%", fragment).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("querying applications for user %s: %w", userID, err)
	}

	out := make([]mailscan.StoredApplication, 0, len(rows))
	for _, row := range rows {
		out = append(out, toStored(row))
	}
	return out, nil
}

// Insert persists a new application and returns its ID.
func (s *ApplicationStore) Insert(ctx context.Context, app mailscan.StoredApplication) (uint, error) {
	row := models.Application{
		UserID:      app.UserID,
		Company:     app.Company,
		Role:        app.Role,
		Status:      string(app.Status),
		DateApplied: app.DateApplied,
		AIChance:    app.AIChance,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("inserting application: %w", err)
	}
	return row.ID, nil
}

// UpdateFields applies a patch to an existing application. Only the fields
// present in the patch are written.
func (s *ApplicationStore) UpdateFields(ctx context.Context, userID string, id uint, patch mailscan.Patch) error {
	updates := map[string]interface{}{}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.DateApplied != nil {
		updates["date_applied"] = *patch.DateApplied
	}
	if len(updates) == 0 {
		return nil
	}

	res := s.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("updating application %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("application %d not found for user %s", id, userID)
	}
	return nil
}

// ListByUser returns all of a user's applications, newest first.
func (s *ApplicationStore) ListByUser(ctx context.Context, userID string) ([]mailscan.StoredApplication, error) {
	var rows []models.Application
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing applications for user %s: %w", userID, err)
	}

	out := make([]mailscan.StoredApplication, 0, len(rows))
	for _, row := range rows {
		out = append(out, toStored(row))
	}
	return out, nil
}

// CountByStatus returns the user's application counts grouped by status,
// feeding the dashboard.
func (s *ApplicationStore) CountByStatus(ctx context.Context, userID string) (map[string]int64, error) {
	type bucket struct {
		Status string
		Total  int64
	}
	var buckets []bucket
	err := s.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("status, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&buckets).Error
	if err != nil {
		return nil, fmt.Errorf("counting applications for user %s: %w", userID, err)
	}

	counts := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		counts[b.Status] = b.Total
	}
	return counts, nil
}

func toStored(row models.Application) mailscan.StoredApplication {
	return mailscan.StoredApplication{
		ID:          row.ID,
		UserID:      row.UserID,
		Company:     row.Company,
		Role:        row.Role,
		Status:      mailscan.StatusTag(row.Status),
		DateApplied: row.DateApplied,
		AIChance:    row.AIChance,
		CreatedAt:   row.CreatedAt,
	}
}
