// Package services – ProductService
//
// This file implements the ProductService, which manages the lifecycle of
// tracked products. It validates every field before any write is issued,
// enforces ownership rules, and coordinates repository operations for
// creating (append with generated key), reading, overwriting (full-record
// replacement at the key), listing, and deleting products.
//
// Service-level errors (e.g., ErrProductNotFound, ErrNameTooShort) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
)

// minProductNameLen mirrors the form rule "O nome deve ter pelo menos 3
// caracteres".
const minProductNameLen = 3

// ProductRepo defines the repository contract required by ProductService.
// Implementations are responsible for persistence of product records.
type ProductRepo interface {
	// CreateProduct inserts a new product row for the given user with a
	// store-assigned key and creation timestamp.
	CreateProduct(ctx context.Context, db *gorm.DB, userID string, p domain.Product) (*domain.Product, error)

	// ListProducts returns all products belonging to the user.
	ListProducts(ctx context.Context, db *gorm.DB, userID string) ([]domain.Product, error)

	// GetProduct fetches a product by ID ensuring it belongs to the user.
	GetProduct(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Product, error)

	// OverwriteProduct replaces the full record at the key (only if it
	// belongs to the user).
	OverwriteProduct(ctx context.Context, db *gorm.DB, id, userID string, p domain.Product) error

	// DeleteProduct removes a product (only if it belongs to the user).
	DeleteProduct(ctx context.Context, db *gorm.DB, id, userID string) error
}

// ProductService provides product-level operations. It owns field
// validation so no malformed record ever reaches the store.
type ProductService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the product repository used by this service.
	Repo ProductRepo
}

// NewProductService constructs a ProductService.
func NewProductService(db *gorm.DB, r ProductRepo) *ProductService {
	return &ProductService{DB: db, Repo: r}
}

// Create validates the fields and inserts a new product owned by userID.
// The store assigns the key and the creation timestamp.
func (s *ProductService) Create(ctx context.Context, userID string, p domain.Product) (*domain.Product, error) {
	normalize(&p)
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return s.Repo.CreateProduct(ctx, s.DB, userID, p)
}

// Get fetches a single product for the edit form pre-fill. Missing records
// yield ErrProductNotFound.
func (s *ProductService) Get(ctx context.Context, userID, id string) (*domain.Product, error) {
	p, err := s.Repo.GetProduct(ctx, s.DB, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns all products for a user, newest first.
func (s *ProductService) List(ctx context.Context, userID string) ([]domain.Product, error) {
	return s.Repo.ListProducts(ctx, s.DB, userID)
}

// Update validates the fields and replaces the full record at id. This is
// a whole-record overwrite: every stored field is replaced by the submitted
// payload (and the creation timestamp is stamped again), so anything the
// payload omits is lost. The id and owner are preserved.
func (s *ProductService) Update(ctx context.Context, userID, id string, p domain.Product) error {
	normalize(&p)
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.Repo.OverwriteProduct(ctx, s.DB, id, userID, p); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// Delete removes a product owned by userID.
func (s *ProductService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.DeleteProduct(ctx, s.DB, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// normalize trims the free-text fields in place before validation.
func normalize(p *domain.Product) {
	p.Name = strings.TrimSpace(p.Name)
	p.URL = strings.TrimSpace(p.URL)
	p.SoldBy = strings.TrimSpace(p.SoldBy)
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
}

// validateProduct applies the form rules. The first violated rule wins;
// nothing is written when any rule fails.
func validateProduct(p domain.Product) error {
	if utf8.RuneCountInString(p.Name) < minProductNameLen {
		return ErrNameTooShort
	}
	if !wellFormedURL(p.URL) {
		return ErrInvalidURL
	}
	if !allowedSeller(p.SoldBy) {
		return ErrInvalidSeller
	}
	if p.MaxPrice <= 0 {
		return ErrInvalidMaxPrice
	}
	if p.PhoneNumber == "" {
		return ErrPhoneRequired
	}
	return nil
}

// wellFormedURL accepts absolute http(s) URLs with a host.
func wellFormedURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// allowedSeller reports whether the seller is in the closed marketplace set.
func allowedSeller(s string) bool {
	for _, v := range domain.SoldBySellers {
		if s == v {
			return true
		}
	}
	return false
}
