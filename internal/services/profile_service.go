// Package services – ProfileService
//
// This file implements the ProfileService, which maintains the user's
// lightweight profile: today that is the set of phone numbers previously used
// on product alerts, offered back as suggestions when registering a new
// product. Phones are remembered as a side effect of product writes, so the
// set only ever grows with numbers the user actually submitted.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/repo"
)

// ProfileService provides read and upsert access to the user profile.
type ProfileService struct {
	// DB is the database handle used for all profile operations.
	DB *gorm.DB
}

// Phones returns the phone numbers the user has used before, in the order
// they were first seen. A user without a profile gets an empty list.
func (s *ProfileService) Phones(ctx context.Context, userID string) ([]string, error) {
	p, err := repo.GetProfile(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	if p.Phones == nil {
		return []string{}, nil
	}
	return p.Phones, nil
}

// RememberPhone records a phone number in the user's profile if it is not
// already present. Blank numbers are ignored.
func (s *ProfileService) RememberPhone(ctx context.Context, userID, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	p, err := repo.GetProfile(ctx, s.DB, userID)
	if err != nil {
		return err
	}
	for _, known := range p.Phones {
		if known == phone {
			return nil
		}
	}
	_, err = repo.UpsertProfile(ctx, s.DB, userID, append(p.Phones, phone))
	return err
}
