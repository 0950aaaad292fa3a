package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
)

func TestCreateAndListNotifications(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n1, err := CreateNotification(ctx, db, "u1", domain.Notification{
		ProductName: "Echo Dot 5",
		Status:      domain.StatusAvailable,
		Price:       279.90,
		ProductLink: "https://www.amazon.com.br/dp/B09B8VGCR8",
		SoldBy:      "Amazon",
	})
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if n1.ID == 0 {
		t.Fatal("expected store-assigned numeric id")
	}

	n2, err := CreateNotification(ctx, db, "u1", domain.Notification{
		ProductName: "Kindle Paperwhite",
		Status:      domain.StatusOutOfStock,
		Price:       499.00,
		ProductLink: "https://www.amazon.com.br/dp/B08N3J8GTX",
		SoldBy:      "Amazon",
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if n2.ID == n1.ID {
		t.Fatalf("ids not unique: %d", n1.ID)
	}

	out, err := ListNotifications(ctx, db, "u1")
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}

	// Other users see nothing.
	other, err := ListNotifications(ctx, db, "u2")
	if err != nil {
		t.Fatalf("ListNotifications(u2): %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("cross-user leak: %v", other)
	}
}

func TestDeleteNotification_Ownership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n, err := CreateNotification(ctx, db, "u1", domain.Notification{
		ProductName: "Echo Dot 5",
		Status:      domain.StatusAvailable,
		Price:       279.90,
		ProductLink: "https://example.com/p",
		SoldBy:      "Amazon",
	})
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	if err := DeleteNotification(ctx, db, n.ID, "u2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user delete: err = %v", err)
	}
	if err := DeleteNotification(ctx, db, n.ID, "u1"); err != nil {
		t.Fatalf("DeleteNotification: %v", err)
	}
	if err := DeleteNotification(ctx, db, n.ID, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: err = %v", err)
	}
}

func TestNotificationsStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	count, maxTS, err := NotificationsStats(ctx, db, "u1")
	if err != nil {
		t.Fatalf("NotificationsStats: %v", err)
	}
	if count != 0 || maxTS != nil {
		t.Fatalf("empty feed stats: count=%d maxTS=%v", count, maxTS)
	}

	newest := time.Now().UTC().Truncate(time.Second)
	for i, ts := range []time.Time{newest.Add(-2 * time.Hour), newest, newest.Add(-time.Hour)} {
		_, err := CreateNotification(ctx, db, "u1", domain.Notification{
			ProductName: "p",
			Status:      domain.StatusAvailable,
			Price:       float64(i),
			ProductLink: "https://example.com/p",
			SoldBy:      "Amazon",
			CreatedAt:   ts,
		})
		if err != nil {
			t.Fatalf("CreateNotification #%d: %v", i, err)
		}
	}

	count, maxTS, err = NotificationsStats(ctx, db, "u1")
	if err != nil {
		t.Fatalf("NotificationsStats: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d", count)
	}
	if maxTS == nil || !maxTS.Equal(newest) {
		t.Fatalf("maxTS = %v, want %v", maxTS, newest)
	}
}
