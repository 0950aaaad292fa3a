// Package services – NotificationService
//
// This file implements the NotificationService, which serves the
// notification feed. The feed is read-mostly: rows are produced by the
// external monitoring pipeline, and this service only snapshots, re-sorts,
// and deletes them. Every read returns the full set re-sorted descending by
// creation timestamp regardless of store order (full resync, no incremental
// merge), which keeps the polling contract simple at the feed's small scale.
package services

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/repo"
)

// NotificationService implements the use-cases around the notification feed.
type NotificationService struct {
	// DB is the database handle used for all feed operations.
	DB *gorm.DB
}

// Snapshot returns the user's full notification set sorted by creation
// timestamp descending. The sort always happens here, never in the query:
// the display ordering must not depend on whatever order the store returns
// rows in. Ties fall back to descending id so the order is total.
func (s *NotificationService) Snapshot(ctx context.Context, userID string) ([]domain.Notification, error) {
	out, err := repo.ListNotifications(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Delete removes one notification by its numeric id within the user's
// namespace. There is no optimistic variant: callers observe the deletion
// through the next snapshot.
func (s *NotificationService) Delete(ctx context.Context, userID string, id int64) error {
	if err := repo.DeleteNotification(ctx, s.DB, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// Stats exposes the feed's (count, newest-timestamp) pair for the
// conditional polling endpoint's weak ETag.
func (s *NotificationService) Stats(ctx context.Context, userID string) (int64, int64, error) {
	count, maxTS, err := repo.NotificationsStats(ctx, s.DB, userID)
	if err != nil {
		return 0, 0, err
	}
	var ts int64
	if maxTS != nil {
		ts = maxTS.Unix()
	}
	return count, ts, nil
}
