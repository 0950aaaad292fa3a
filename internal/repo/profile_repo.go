package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
)

// GetProfile fetches the per-user profile document. A missing profile is
// not an error for the read path: the form simply has nothing to pre-fill,
// so an empty Profile is returned instead of ErrNotFound.
func GetProfile(ctx context.Context, db *gorm.DB, userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &domain.Profile{UserID: userID}, nil
		}
		return nil, err
	}
	return &p, nil
}

// UpsertProfile stores the phone list for userID, creating the profile row
// on first write.
func UpsertProfile(ctx context.Context, db *gorm.DB, userID string, phones []string) (*domain.Profile, error) {
	p := &domain.Profile{
		UserID:    userID,
		Phones:    phones,
		UpdatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}
