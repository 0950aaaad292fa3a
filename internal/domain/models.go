// Package domain defines the persistence models for users, sessions,
// tracked products, notifications, and user profiles. These types are mapped
// with GORM and form the core data layer of the product-watch application.
package domain

import (
	"time"
)

// Allowed values for Notification.Status. The set is closed: rows are
// written by the external monitoring pipeline and only ever read or
// deleted here.
const (
	StatusAvailable  = "available"
	StatusOutOfStock = "outOfStock"
)

// SoldBySellers is the closed set of marketplaces a product may be tracked
// on. Currently a single entry; validation reads from this slice so adding
// a marketplace is a one-line change.
var SoldBySellers = []string{"Amazon"}

// User represents a registered account. Credentials are stored as a bcrypt
// hash; the plaintext password never reaches the persistence layer.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: display name shown in the navigation greeting.
//   - Email: login identifier, unique across accounts.
//   - PasswordHash: bcrypt hash of the account password.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID           string    `json:"id"    gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name"  gorm:"type:varchar(255);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `json:"-"     gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Session represents an authenticated browser session. The session ID is an
// opaque UUID carried in an HTTP-only cookie; rows past ExpiresAt are
// treated as absent by the lookup path.
type Session struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index:idx_user_sessions"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Session.
func (Session) TableName() string { return "sessions" }

// Product represents an item a user watches on a marketplace. Each row is
// owned by exactly one user; every read and write is scoped by UserID.
//
// Fields:
//   - ID: store-assigned UUID key (char(36)), generated on create.
//   - UserID: identifier of the owner; indexed for efficient retrieval.
//   - Name: product name (minimum 3 characters, enforced by the service).
//   - URL: source page on the marketplace (must be a well-formed http(s) URL).
//   - SoldBy: marketplace/seller, one of SoldBySellers.
//   - MaxPrice: maximum acceptable price, strictly positive.
//   - PhoneNumber: number the external pipeline notifies; pre-filled from
//     the owner's profile and treated read-only by the UI.
//   - CreatedAt: creation timestamp. An edit performs a full-record
//     overwrite and stamps this field again.
type Product struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"user_id"     gorm:"type:char(36);not null;index:idx_user_products"`
	Name        string    `json:"name"        gorm:"type:varchar(255);not null"`
	URL         string    `json:"url"         gorm:"type:text;not null"`
	SoldBy      string    `json:"soldBy"      gorm:"type:varchar(64);not null"`
	MaxPrice    float64   `json:"maxPrice"    gorm:"not null"`
	PhoneNumber string    `json:"phoneNumber" gorm:"type:varchar(32);not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "products" }

// Notification represents a detected change (availability, price, status)
// for a tracked product. Rows are inserted by the external monitoring
// pipeline and are read-mostly here: the application only lists and deletes
// them. Unlike products, notifications carry a numeric identity.
//
// The displayed feed is always re-sorted by CreatedAt descending regardless
// of the order rows come back from the store.
type Notification struct {
	ID          int64     `json:"id"          gorm:"primaryKey;autoIncrement"`
	UserID      string    `json:"-"           gorm:"type:char(36);not null;index:idx_user_notifications"`
	ProductName string    `json:"productName" gorm:"type:varchar(255);not null"`
	Status      string    `json:"status"      gorm:"type:varchar(16);not null;check:status IN ('available','outOfStock')"`
	Price       float64   `json:"price"       gorm:"not null"`
	ProductLink string    `json:"productLink" gorm:"type:text;not null"`
	SoldBy      string    `json:"soldBy"      gorm:"type:varchar(64);not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName returns the database table name for Notification.
func (Notification) TableName() string { return "notifications" }

// Profile is the per-user profile document. It currently carries only the
// stored phone numbers used to pre-fill the product form; the list is
// persisted as a JSON column.
type Profile struct {
	UserID    string    `json:"user_id" gorm:"type:char(36);primaryKey"`
	Phones    []string  `json:"phones"  gorm:"serializer:json"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }
