package validator

import "testing"

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("ab"); err != ErrUsernameTooShort {
		t.Fatalf("expected ErrUsernameTooShort, got %v", err)
	}
	if err := ValidateUsername("  a  "); err != ErrUsernameTooShort {
		t.Fatalf("expected ErrUsernameTooShort for padded short name, got %v", err)
	}
	if err := ValidateUsername("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("12345"); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := ValidatePassword("123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatePasswordConfirmation(t *testing.T) {
	if err := ValidatePasswordConfirmation("secret1", "secret2"); err != ErrPasswordMismatch {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := ValidatePasswordConfirmation("secret1", "secret1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateAccountName(t *testing.T) {
	if err := ValidateAccountName("   "); err != ErrEmptyAccountName {
		t.Fatalf("expected ErrEmptyAccountName, got %v", err)
	}
	if err := ValidateAccountName("Primary Account"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
