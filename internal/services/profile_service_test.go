package services

import (
	"context"
	"testing"
)

func TestProfilePhones_EmptyWithoutProfile(t *testing.T) {
	s := &ProfileService{DB: newServiceDB(t)}

	phones, err := s.Phones(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Phones: %v", err)
	}
	if len(phones) != 0 {
		t.Fatalf("phones = %v", phones)
	}
}

func TestRememberPhone_DedupesAndPreservesOrder(t *testing.T) {
	s := &ProfileService{DB: newServiceDB(t)}
	ctx := context.Background()

	for _, p := range []string{"+5511999990000", "+5521988880000", "+5511999990000", "  ", ""} {
		if err := s.RememberPhone(ctx, "u1", p); err != nil {
			t.Fatalf("RememberPhone(%q): %v", p, err)
		}
	}

	phones, err := s.Phones(ctx, "u1")
	if err != nil {
		t.Fatalf("Phones: %v", err)
	}
	if len(phones) != 2 || phones[0] != "+5511999990000" || phones[1] != "+5521988880000" {
		t.Fatalf("phones = %v", phones)
	}
}

func TestRememberPhone_IsolatedPerUser(t *testing.T) {
	s := &ProfileService{DB: newServiceDB(t)}
	ctx := context.Background()

	if err := s.RememberPhone(ctx, "u1", "+5511999990000"); err != nil {
		t.Fatalf("RememberPhone: %v", err)
	}
	phones, err := s.Phones(ctx, "u2")
	if err != nil {
		t.Fatalf("Phones: %v", err)
	}
	if len(phones) != 0 {
		t.Fatalf("u2 phones = %v", phones)
	}
}
