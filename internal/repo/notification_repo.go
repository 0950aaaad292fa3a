// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Notification model and the feed statistics used for conditional (ETag)
// responses.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
)

// CreateNotification inserts a notification row for userID. The store
// assigns the numeric id. This is the ingestion point of the external
// monitoring pipeline; the application itself never calls it outside tests.
func CreateNotification(ctx context.Context, db *gorm.DB, userID string, n domain.Notification) (*domain.Notification, error) {
	n.ID = 0
	n.UserID = userID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListNotifications returns the full notification set for userID in store
// order. Callers re-sort the snapshot; the query intentionally carries no
// ORDER BY so the display ordering is owned in one place (the service).
func ListNotifications(ctx context.Context, db *gorm.DB, userID string) ([]domain.Notification, error) {
	var out []domain.Notification
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&out).Error
	return out, err
}

// DeleteNotification removes a notification by its numeric id within the
// user's namespace. If no rows are affected (missing or not owned by
// userID), it returns ErrNotFound.
func DeleteNotification(ctx context.Context, db *gorm.DB, id int64, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NotificationsStats returns the row count and the newest creation
// timestamp for userID's feed. The pair changes whenever the feed changes,
// which makes it a cheap weak-ETag source for the polling endpoint.
func NotificationsStats(ctx context.Context, db *gorm.DB, userID string) (count int64, maxCreatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Notification{}).Where("user_id = ?", userID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
