// Notification HTTP handlers.
//
// This file exposes the REST endpoints for the price-alert feed:
//   - GET    /notifications      (paginated feed, weak ETag support)
//   - DELETE /notifications/:id  (dismiss one alert)
//
// The frontend keeps the feed fresh by polling GET /notifications with
// If-None-Match. The weak ETag is derived from (count, newest timestamp), so
// an unchanged feed answers 304 with no body and a change of any kind forces
// a full page re-fetch. Prices are rendered server-side in pt-BR so every
// client shows the same "R$ 1.234,56" string.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/pagination"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/services"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/utils"
)

// NotificationService defines the feed operations consumed by HTTP handlers.
// Implementations must be safe for concurrent use and honor the provided
// context.
type NotificationService interface {
	// Snapshot returns the user's full feed, newest first.
	Snapshot(ctx context.Context, userID string) ([]domain.Notification, error)
	// Delete dismisses one notification by its numeric id.
	Delete(ctx context.Context, userID string, id int64) error
	// Stats returns the (count, newest unix timestamp) pair for the ETag.
	Stats(ctx context.Context, userID string) (int64, int64, error)
}

// ptBR renders numbers with Brazilian grouping and decimal separators.
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// NotificationView is a feed entry plus its display-ready price string.
type NotificationView struct {
	domain.Notification
	PriceDisplay string `json:"priceDisplay"`
}

// ListNotificationsResponse wraps one page of the feed and its pagination
// window, including the pager controls the frontend renders verbatim.
type ListNotificationsResponse struct {
	Notifications []NotificationView `json:"notifications"`
	Pagination    pagination.Window  `json:"pagination"`
}

// priceDisplay formats a price as Brazilian currency, e.g. "R$ 1.234,56".
func priceDisplay(v float64) string {
	return ptBR.Sprintf("R$ %.2f", v)
}

// ListNotifications returns one page of the user's feed.
//
// Query params: page (default 1) and page_size (one of 5, 10, 20, 50,
// default 5; anything else falls back to the default). An out-of-range page
// is clamped rather than rejected, so a page left open while its last item
// is dismissed elsewhere still renders.
func (h *Handlers) ListNotifications(c *gin.Context) {
	uid, okUser := currentUser(c)
	if !okUser {
		return
	}
	ctx := c.Request.Context()

	// ETag pre-check (best effort): skip the snapshot entirely when the
	// poller already holds the current feed.
	count, ts, err := h.notifSvc.Stats(ctx, uid)
	if err == nil {
		etag := fmt.Sprintf(`W/"notifications:%s:%d:%d"`, uid, count, ts)
		c.Header("ETag", etag)
		c.Header("Cache-Control", "no-cache")
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, err := h.notifSvc.Snapshot(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	page := utils.AtoiDefault(c.Query("page"), 1)
	pageSize := pagination.NormalizePageSize(utils.AtoiDefault(c.Query("page_size"), pagination.DefaultPageSize))
	win := pagination.NewWindow(len(items), pageSize, page)

	start, end := pagination.SliceBounds(len(items), win.ItemsPerPage, win.CurrentPage)
	views := make([]NotificationView, 0, end-start)
	for _, n := range items[start:end] {
		views = append(views, NotificationView{
			Notification: n,
			PriceDisplay: priceDisplay(n.Price),
		})
	}

	ok(c, http.StatusOK, ListNotificationsResponse{
		Notifications: views,
		Pagination:    win,
	})
}

// DeleteNotification dismisses one alert. The feed's ETag changes as a side
// effect, so other open tabs pick the deletion up on their next poll.
func (h *Handlers) DeleteNotification(c *gin.Context) {
	uid, okUser := currentUser(c)
	if !okUser {
		return
	}

	id := utils.ParseInt64Default(c.Param("id"), -1)
	if id < 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id da notificação deve ser numérico")
		return
	}

	if err := h.notifSvc.Delete(c.Request.Context(), uid, id); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "Notificação não encontrada")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
