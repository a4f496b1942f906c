package validator

import (
	"errors"
	"strings"
)

var (
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmptyAccountName = errors.New("account name cannot be empty")
)

func ValidateUsername(username string) error {
	if len(strings.TrimSpace(username)) < 3 {
		return ErrUsernameTooShort
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	return nil
}

func ValidatePasswordConfirmation(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

func ValidateAccountName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyAccountName
	}
	return nil
}
