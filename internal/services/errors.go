package services

import (
	"errors"
	"fmt"
)

// The four error kinds. Every specific error below wraps one of them so
// callers can classify with errors.Is.
var (
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("already exists")
	ErrAuth       = errors.New("invalid username or password")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrPasswordMismatch    = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrUsernameTooShort    = fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	ErrPasswordTooShort    = fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	ErrUsernameTaken       = fmt.Errorf("username %w", ErrConflict)
	ErrAccountNameEmpty    = fmt.Errorf("%w: account name cannot be empty", ErrValidation)
	ErrAccountNameTaken    = fmt.Errorf("account name %w", ErrConflict)
	ErrInvalidRecipient    = fmt.Errorf("%w: invalid recipient account", ErrValidation)
	ErrSameAccountTransfer = fmt.Errorf("%w: cannot transfer to the same account", ErrValidation)
	ErrInvalidAmount       = fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	ErrInsufficientFunds   = fmt.Errorf("%w: insufficient balance", ErrValidation)
	ErrNoTransactions      = fmt.Errorf("%w: no transactions to export", ErrValidation)
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
)
