package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/http/middleware"
)

// ---- stubs to satisfy handlers.New() dependencies ----

type stubAuthSvc struct {
	register func(ctx context.Context, name, email, password string) (*domain.User, error)
	login    func(ctx context.Context, email, password string) (*domain.User, *domain.Session, error)
	logout   func(ctx context.Context, sessionID string) error
	current  func(ctx context.Context, sessionID string) (*domain.User, error)
}

func (s stubAuthSvc) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if s.register != nil {
		return s.register(ctx, name, email, password)
	}
	return &domain.User{ID: "u1", Name: name, Email: email}, nil
}

func (s stubAuthSvc) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	if s.login != nil {
		return s.login(ctx, email, password)
	}
	return &domain.User{ID: "u1", Email: email}, &domain.Session{ID: "s1", UserID: "u1"}, nil
}

func (s stubAuthSvc) Logout(ctx context.Context, sessionID string) error {
	if s.logout != nil {
		return s.logout(ctx, sessionID)
	}
	return nil
}

func (s stubAuthSvc) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	if s.current != nil {
		return s.current(ctx, sessionID)
	}
	return &domain.User{ID: "u1"}, nil
}

type stubProductSvc struct {
	create func(ctx context.Context, userID string, p domain.Product) (*domain.Product, error)
	list   func(ctx context.Context, userID string) ([]domain.Product, error)
	get    func(ctx context.Context, userID, id string) (*domain.Product, error)
	update func(ctx context.Context, userID, id string, p domain.Product) error
	del    func(ctx context.Context, userID, id string) error
}

func (s stubProductSvc) Create(ctx context.Context, userID string, p domain.Product) (*domain.Product, error) {
	if s.create != nil {
		return s.create(ctx, userID, p)
	}
	out := p
	out.ID = "11111111-1111-1111-1111-111111111111"
	out.UserID = userID
	return &out, nil
}

func (s stubProductSvc) List(ctx context.Context, userID string) ([]domain.Product, error) {
	if s.list != nil {
		return s.list(ctx, userID)
	}
	return nil, nil
}

func (s stubProductSvc) Get(ctx context.Context, userID, id string) (*domain.Product, error) {
	if s.get != nil {
		return s.get(ctx, userID, id)
	}
	return &domain.Product{ID: id, UserID: userID}, nil
}

func (s stubProductSvc) Update(ctx context.Context, userID, id string, p domain.Product) error {
	if s.update != nil {
		return s.update(ctx, userID, id, p)
	}
	return nil
}

func (s stubProductSvc) Delete(ctx context.Context, userID, id string) error {
	if s.del != nil {
		return s.del(ctx, userID, id)
	}
	return nil
}

type stubNotifSvc struct {
	snapshot func(ctx context.Context, userID string) ([]domain.Notification, error)
	del      func(ctx context.Context, userID string, id int64) error
	stats    func(ctx context.Context, userID string) (int64, int64, error)
}

func (s stubNotifSvc) Snapshot(ctx context.Context, userID string) ([]domain.Notification, error) {
	if s.snapshot != nil {
		return s.snapshot(ctx, userID)
	}
	return nil, nil
}

func (s stubNotifSvc) Delete(ctx context.Context, userID string, id int64) error {
	if s.del != nil {
		return s.del(ctx, userID, id)
	}
	return nil
}

func (s stubNotifSvc) Stats(ctx context.Context, userID string) (int64, int64, error) {
	if s.stats != nil {
		return s.stats(ctx, userID)
	}
	return 0, 0, nil
}

type stubProfileSvc struct {
	phones   func(ctx context.Context, userID string) ([]string, error)
	remember func(ctx context.Context, userID, phone string) error
}

func (s stubProfileSvc) Phones(ctx context.Context, userID string) ([]string, error) {
	if s.phones != nil {
		return s.phones(ctx, userID)
	}
	return []string{}, nil
}

func (s stubProfileSvc) RememberPhone(ctx context.Context, userID, phone string) error {
	if s.remember != nil {
		return s.remember(ctx, userID, phone)
	}
	return nil
}

// ---- router helpers ----

// asUser simulates the session gate by injecting a resolved user ID.
func asUser(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

// newTestRouter mounts every handler route behind a fake gate resolving to
// uid, mirroring the production route table shape.
func newTestRouter(t *testing.T, h *Handlers, uid string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	prot := r.Group("/", asUser(uid))
	prot.POST("/auth/logout", h.Logout)
	prot.GET("/auth/me", h.Me)
	prot.POST("/products", h.CreateProduct)
	prot.GET("/products", h.ListProducts)
	prot.GET("/products/:id", h.GetProduct)
	prot.PUT("/products/:id", h.UpdateProduct)
	prot.DELETE("/products/:id", h.DeleteProduct)
	prot.GET("/notifications", h.ListNotifications)
	prot.DELETE("/notifications/:id", h.DeleteNotification)
	prot.GET("/profile/phones", h.ProfilePhones)
	return r
}

// sessionCookie extracts the session cookie from a recorded response,
// returning nil when absent.
func sessionCookie(w *httptest.ResponseRecorder) *httpCookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return &httpCookie{value: c.Value, maxAge: c.MaxAge, httpOnly: c.HttpOnly}
		}
	}
	return nil
}

type httpCookie struct {
	value    string
	maxAge   int
	httpOnly bool
}
