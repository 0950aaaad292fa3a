// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Product
// model.
//
// Functions:
//
//   - CreateProduct(ctx, db, userID, p) -> *domain.Product, error
//     Inserts a new Product row with a fresh UUID key and UTC timestamp
//     (the append-with-generated-key path).
//
//   - ListProducts(ctx, db, userID) -> []domain.Product, error
//     Returns all products for a user, ordered by creation time descending.
//
//   - GetProduct(ctx, db, id, userID) -> *domain.Product, error
//     Fetches a single product by ID/userID, or ErrNotFound if missing.
//
//   - OverwriteProduct(ctx, db, id, userID, p) -> error
//     Replaces the full record at the key, enforcing user ownership.
//     Returns ErrNotFound if the product does not exist.
//
//   - DeleteProduct(ctx, db, id, userID) -> error
//     Removes a product, enforcing user ownership.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.ProductService) which enforces field validation.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
)

// CreateProduct inserts a new Product row owned by userID. The store
// assigns a random UUID key and stamps CreatedAt with the current UTC time;
// any ID or CreatedAt on p is ignored.
func CreateProduct(ctx context.Context, db *gorm.DB, userID string, p domain.Product) (*domain.Product, error) {
	p.ID = uuid.NewString()
	p.UserID = userID
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns all products belonging to userID, ordered by
// creation time descending (most recent first). It returns an empty slice
// if the user has no products.
func ListProducts(ctx context.Context, db *gorm.DB, userID string) ([]domain.Product, error) {
	var out []domain.Product
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetProduct fetches a single product by its ID and owner (userID). If the
// record does not exist, it returns ErrNotFound.
func GetProduct(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// OverwriteProduct replaces the full record stored at id with p, enforcing
// user ownership. Every column except the key and the owner is written,
// including CreatedAt, which is stamped with the current UTC time. This is
// a whole-record overwrite, not a partial patch, so fields absent from p
// are lost. If no rows are affected (product missing or not owned by
// userID), it returns ErrNotFound.
func OverwriteProduct(ctx context.Context, db *gorm.DB, id, userID string, p domain.Product) error {
	res := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND user_id = ?", id, userID).
		Select("name", "url", "sold_by", "max_price", "phone_number", "created_at").
		Updates(domain.Product{
			Name:        p.Name,
			URL:         p.URL,
			SoldBy:      p.SoldBy,
			MaxPrice:    p.MaxPrice,
			PhoneNumber: p.PhoneNumber,
			CreatedAt:   time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProduct removes a product identified by id and owned by userID.
// If no rows are affected, it returns ErrNotFound.
func DeleteProduct(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
