// Product HTTP handlers.
//
// This file exposes the REST endpoints for tracked products:
//   - POST   /products       (register a product to watch)
//   - GET    /products       (list the user's products)
//   - GET    /products/:id   (fetch one, used to pre-fill the edit form)
//   - PUT    /products/:id   (full-record overwrite)
//   - DELETE /products/:id   (stop watching)
//
// All routes sit behind the session gate, so every operation is scoped to
// the authenticated user. Validation failures answer 400 with the same
// Portuguese messages the registration form shows inline.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/http/middleware"
	"github.com/douglasgmsantos/monitoramento-produtos/internal/services"
)

// ProductService defines the product lifecycle operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type ProductService interface {
	// Create validates and inserts a product owned by userID.
	Create(ctx context.Context, userID string, p domain.Product) (*domain.Product, error)
	// List returns the user's products, newest first.
	List(ctx context.Context, userID string) ([]domain.Product, error)
	// Get fetches one product owned by userID.
	Get(ctx context.Context, userID, id string) (*domain.Product, error)
	// Update validates and replaces the full record at id.
	Update(ctx context.Context, userID, id string, p domain.Product) error
	// Delete removes a product owned by userID.
	Delete(ctx context.Context, userID, id string) error
}

// ProfileService defines the profile operations consumed by HTTP handlers.
type ProfileService interface {
	// Phones lists the phone numbers previously used on product alerts.
	Phones(ctx context.Context, userID string) ([]string, error)
	// RememberPhone records a phone number for future suggestions.
	RememberPhone(ctx context.Context, userID, phone string) error
}

// ProductRequest is the JSON payload of the product form, shared by create
// and update since the update is a full overwrite of the same fields.
type ProductRequest struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	SoldBy      string  `json:"soldBy"`
	MaxPrice    float64 `json:"maxPrice"`
	PhoneNumber string  `json:"phoneNumber"`
}

// ListProductsResponse wraps the user's products.
type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
}

// product converts the request payload into a domain record. Key, owner, and
// creation timestamp are always store-assigned.
func (r ProductRequest) product() domain.Product {
	return domain.Product{
		Name:        r.Name,
		URL:         r.URL,
		SoldBy:      r.SoldBy,
		MaxPrice:    r.MaxPrice,
		PhoneNumber: r.PhoneNumber,
	}
}

// failProductValidation maps the field-rule errors to 400 responses carrying
// the form's inline messages. It reports whether err was handled.
func failProductValidation(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrNameTooShort):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "O nome deve ter pelo menos 3 caracteres")
	case errors.Is(err, services.ErrInvalidURL):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Informe uma URL válida")
	case errors.Is(err, services.ErrInvalidSeller):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Selecione um vendedor válido")
	case errors.Is(err, services.ErrInvalidMaxPrice):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Informe um preço máximo maior que zero")
	case errors.Is(err, services.ErrPhoneRequired):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Informe um número de telefone")
	default:
		return false
	}
	return true
}

// productID validates the :id path param. Product keys are UUIDs; anything
// else is rejected before touching the store.
func productID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id do produto deve ser um UUID")
		return "", false
	}
	return id, true
}

// CreateProduct registers a new product to watch.
func (h *Handlers) CreateProduct(c *gin.Context) {
	uid, okUser := currentUser(c)
	if !okUser {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "corpo JSON inválido")
		return
	}

	ctx := c.Request.Context()
	p, err := h.prodSvc.Create(ctx, uid, req.product())
	if err != nil {
		if failProductValidation(c, err) {
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "Ocorreu um erro ao criar o produto")
		return
	}

	// Best effort: remember the phone for the form's suggestion list.
	if err := h.profSvc.RememberPhone(ctx, uid, p.PhoneNumber); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("remember phone failed")
	}

	ok(c, http.StatusCreated, p)
}

// ListProducts returns all products of the current user, newest first.
func (h *Handlers) ListProducts(c *gin.Context) {
	uid, okUser := currentUser(c)
	if !okUser {
		return
	}

	items, err := h.prodSvc.List(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if items == nil {
		items = []domain.Product{}
	}
	ok(c, http.StatusOK, ListProductsResponse{Products: items})
}

// GetProduct fetches one product for the edit form pre-fill.
func (h *Handlers) GetProduct(c *gin.Context) {
	uid, okUser := currentUser(c)
	if !okUser {
		return
	}
	id, okID := productID(c)
	if !okID {
		return
	}

	p, err := h.prodSvc.Get(c.Request.Context(), uid, id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "Produto não encontrado")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdateProduct replaces the full record at id with the submitted payload.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	uid, okUser := currentUser(c)
	if !okUser {
		return
	}
	id, okID := productID(c)
	if !okID {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "corpo JSON inválido")
		return
	}

	ctx := c.Request.Context()
	if err := h.prodSvc.Update(ctx, uid, id, req.product()); err != nil {
		if failProductValidation(c, err) {
			return
		}
		if errors.Is(err, services.ErrProductNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "Produto não encontrado")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "Ocorreu um erro ao atualizar o produto")
		return
	}

	if err := h.profSvc.RememberPhone(ctx, uid, req.PhoneNumber); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("remember phone failed")
	}

	noContent(c)
}

// DeleteProduct stops watching a product.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	uid, okUser := currentUser(c)
	if !okUser {
		return
	}
	id, okID := productID(c)
	if !okID {
		return
	}

	if err := h.prodSvc.Delete(c.Request.Context(), uid, id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "Produto não encontrado")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// ProfilePhones lists the phone numbers the user has used before, for the
// product form's suggestion dropdown.
func (h *Handlers) ProfilePhones(c *gin.Context) {
	uid, okUser := currentUser(c)
	if !okUser {
		return
	}

	phones, err := h.profSvc.Phones(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"phones": phones})
}
