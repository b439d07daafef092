package validation

import (
	"testing"

	domainerrors "github.com/productivite/productivite-server/internal/errors"
)

type sampleRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Slug    string `json:"slug" validate:"omitempty,slug"`
	Rating  int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Pricing string `json:"pricing" validate:"omitempty,oneof=free freemium paid enterprise"`
}

func TestValidate_Success(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{
		Email:   "ada@example.com",
		Name:    "Ada",
		Slug:    "time-tracker",
		Rating:  5,
		Pricing: "freemium",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{
		Email:   "not-an-email",
		Name:    "A",
		Slug:    "Not A Slug",
		Rating:  6,
		Pricing: "donationware",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var domainErr *domainerrors.Error
	if !domainerrors.As(err, &domainErr) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if domainErr.Code != domainerrors.CodeValidation {
		t.Errorf("expected VALIDATION code, got %s", domainErr.Code)
	}

	fields, ok := domainErr.Details.(map[string]string)
	if !ok {
		t.Fatalf("expected map[string]string details, got %T", domainErr.Details)
	}
	for _, field := range []string{"email", "name", "slug", "rating", "pricing"} {
		if _, present := fields[field]; !present {
			t.Errorf("expected error for field %q, got %v", field, fields)
		}
	}
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{Name: "Ada"})
	var domainErr *domainerrors.Error
	if !domainerrors.As(err, &domainErr) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	fields := domainErr.Details.(map[string]string)
	if _, ok := fields["Email"]; ok {
		t.Error("expected json tag name 'email', found struct field name 'Email'")
	}
	if msg := fields["email"]; msg != "is required" {
		t.Errorf("expected 'is required' for email, got %q", msg)
	}
}
