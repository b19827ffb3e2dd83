package errors

import (
	"errors"
	"testing"
)

func TestValidationErrorUnwrapsToSentinel(t *testing.T) {
	err := NewValidation(
		FieldError{Field: "email", Message: "email is required"},
		FieldError{Field: "password", Message: "password must be at least 8 characters"},
	)
	if !IsValidation(err) {
		t.Fatal("want IsValidation")
	}
	ve, ok := AsValidation(err)
	if !ok || len(ve.Fields) != 2 {
		t.Fatalf("want 2 field errors, got %+v", ve)
	}
	if ve.Fields[0].Field != "email" {
		t.Fatalf("want email first, got %s", ve.Fields[0].Field)
	}
}

func TestWrappersKeepKind(t *testing.T) {
	base := errors.New("boom")

	if !IsStorage(WrapStorage(base, "create user")) {
		t.Fatal("want IsStorage")
	}
	if !IsConfiguration(WrapConfiguration(base, "read private key")) {
		t.Fatal("want IsConfiguration")
	}
	if !IsInternal(WrapInternal(base, "hash")) {
		t.Fatal("want IsInternal")
	}
	if !IsConflict(NewConflict("duplicate email")) {
		t.Fatal("want IsConflict")
	}
}

func TestKindsAreDistinct(t *testing.T) {
	err := WrapConfiguration(errors.New("no key"), "read private key")
	if IsStorage(err) || IsValidation(err) || IsUnauthorized(err) {
		t.Fatal("configuration error must not match other kinds")
	}
}
