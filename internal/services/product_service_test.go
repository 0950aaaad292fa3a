package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/douglasgmsantos/monitoramento-produtos/internal/domain"
)

// ----- Fake repo -----

type fakeProductRepo struct {
	// capture args
	createUserID string
	createInput  domain.Product
	createCalls  int

	getID     string
	getUserID string
	getOut    *domain.Product
	getErr    error

	overwriteID     string
	overwriteUserID string
	overwriteInput  domain.Product
	overwriteCalls  int
	overwriteErr    error

	listUserID string
	listOut    []domain.Product
	listErr    error

	deleteID     string
	deleteUserID string
	deleteErr    error
}

func (r *fakeProductRepo) CreateProduct(ctx context.Context, db *gorm.DB, userID string, p domain.Product) (*domain.Product, error) {
	r.createCalls++
	r.createUserID = userID
	r.createInput = p
	out := p
	out.ID = "p1"
	out.UserID = userID
	return &out, nil
}

func (r *fakeProductRepo) ListProducts(ctx context.Context, db *gorm.DB, userID string) ([]domain.Product, error) {
	r.listUserID = userID
	return r.listOut, r.listErr
}

func (r *fakeProductRepo) GetProduct(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Product, error) {
	r.getID, r.getUserID = id, userID
	return r.getOut, r.getErr
}

func (r *fakeProductRepo) OverwriteProduct(ctx context.Context, db *gorm.DB, id, userID string, p domain.Product) error {
	r.overwriteCalls++
	r.overwriteID, r.overwriteUserID, r.overwriteInput = id, userID, p
	return r.overwriteErr
}

func (r *fakeProductRepo) DeleteProduct(ctx context.Context, db *gorm.DB, id, userID string) error {
	r.deleteID, r.deleteUserID = id, userID
	return r.deleteErr
}

func validInput() domain.Product {
	return domain.Product{
		Name:        "Echo Dot 5",
		URL:         "https://www.amazon.com.br/dp/B09B8VGCR8",
		SoldBy:      "Amazon",
		MaxPrice:    299.90,
		PhoneNumber: "+5511999990000",
	}
}

// ----- Tests -----

func TestProductCreate_ValidationRejectsBeforeAnyWrite(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*domain.Product)
		wantErr error
	}{
		{"two-char name", func(p *domain.Product) { p.Name = "ab" }, ErrNameTooShort},
		{"whitespace-padded short name", func(p *domain.Product) { p.Name = "  ab  " }, ErrNameTooShort},
		{"relative url", func(p *domain.Product) { p.URL = "/dp/B09B8VGCR8" }, ErrInvalidURL},
		{"ftp url", func(p *domain.Product) { p.URL = "ftp://example.com/x" }, ErrInvalidURL},
		{"garbage url", func(p *domain.Product) { p.URL = "not a url" }, ErrInvalidURL},
		{"unknown seller", func(p *domain.Product) { p.SoldBy = "MercadoLivre" }, ErrInvalidSeller},
		{"zero price", func(p *domain.Product) { p.MaxPrice = 0 }, ErrInvalidMaxPrice},
		{"negative price", func(p *domain.Product) { p.MaxPrice = -10 }, ErrInvalidMaxPrice},
		{"empty phone", func(p *domain.Product) { p.PhoneNumber = "   " }, ErrPhoneRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &fakeProductRepo{}
			s := NewProductService(nil, r)

			in := validInput()
			tc.mutate(&in)

			_, err := s.Create(context.Background(), "u1", in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Create err = %v, want %v", err, tc.wantErr)
			}
			if r.createCalls != 0 {
				t.Fatal("repository write issued despite validation failure")
			}
		})
	}
}

func TestProductCreate_IssuesExactlyOneAppend(t *testing.T) {
	r := &fakeProductRepo{}
	s := NewProductService(nil, r)

	p, err := s.Create(context.Background(), "u1", validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.createCalls != 1 {
		t.Fatalf("create calls = %d, want 1", r.createCalls)
	}
	if r.createUserID != "u1" {
		t.Fatalf("owner = %q", r.createUserID)
	}
	if p.ID != "p1" {
		t.Fatalf("id = %q", p.ID)
	}
}

func TestProductCreate_TrimsFields(t *testing.T) {
	r := &fakeProductRepo{}
	s := NewProductService(nil, r)

	in := validInput()
	in.Name = "  Echo Dot 5  "
	in.PhoneNumber = " +5511999990000 "

	if _, err := s.Create(context.Background(), "u1", in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.createInput.Name != "Echo Dot 5" || r.createInput.PhoneNumber != "+5511999990000" {
		t.Fatalf("fields not trimmed: %+v", r.createInput)
	}
}

func TestProductUpdate_OverwritesAtKey(t *testing.T) {
	r := &fakeProductRepo{}
	s := NewProductService(nil, r)

	if err := s.Update(context.Background(), "u1", "p42", validInput()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if r.overwriteCalls != 1 || r.createCalls != 0 {
		t.Fatalf("overwrite=%d create=%d, want 1/0", r.overwriteCalls, r.createCalls)
	}
	if r.overwriteID != "p42" || r.overwriteUserID != "u1" {
		t.Fatalf("overwrite target = %q/%q", r.overwriteID, r.overwriteUserID)
	}
}

func TestProductUpdate_ValidatesBeforeWrite(t *testing.T) {
	r := &fakeProductRepo{}
	s := NewProductService(nil, r)

	in := validInput()
	in.Name = "ab"
	if err := s.Update(context.Background(), "u1", "p42", in); !errors.Is(err, ErrNameTooShort) {
		t.Fatalf("Update err = %v", err)
	}
	if r.overwriteCalls != 0 {
		t.Fatal("overwrite issued despite validation failure")
	}
}

func TestProductUpdate_MissingRecord(t *testing.T) {
	r := &fakeProductRepo{overwriteErr: gorm.ErrRecordNotFound}
	s := NewProductService(nil, r)

	if err := s.Update(context.Background(), "u1", "missing", validInput()); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("Update err = %v, want ErrProductNotFound", err)
	}
}

func TestProductGet(t *testing.T) {
	want := validInput()
	want.ID = "p1"
	r := &fakeProductRepo{getOut: &want}
	s := NewProductService(nil, r)

	got, err := s.Get(context.Background(), "u1", "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "p1" || r.getUserID != "u1" {
		t.Fatalf("got %+v via user %q", got, r.getUserID)
	}

	r.getOut, r.getErr = nil, gorm.ErrRecordNotFound
	if _, err := s.Get(context.Background(), "u1", "missing"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing Get err = %v", err)
	}
}

func TestProductDelete(t *testing.T) {
	r := &fakeProductRepo{}
	s := NewProductService(nil, r)

	if err := s.Delete(context.Background(), "u1", "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if r.deleteID != "p1" || r.deleteUserID != "u1" {
		t.Fatalf("delete target = %q/%q", r.deleteID, r.deleteUserID)
	}

	r.deleteErr = gorm.ErrRecordNotFound
	if err := s.Delete(context.Background(), "u1", "p1"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing Delete err = %v", err)
	}
}
