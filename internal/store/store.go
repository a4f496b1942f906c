package store

import (
	"context"

	"minibank/internal/models"
)

// Repository is the persistence substrate for the four record collections.
// Save calls replace the whole collection; absence of persisted data is not
// an error and is resolved by SeedIfAbsent.
type Repository interface {
	Users(ctx context.Context) ([]models.User, error)
	SaveUsers(ctx context.Context, users []models.User) error

	Accounts(ctx context.Context) ([]models.Account, error)
	SaveAccounts(ctx context.Context, accounts []models.Account) error

	Transactions(ctx context.Context) ([]models.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []models.Transaction) error

	// Session returns the persisted session, or nil when nobody is logged in.
	Session(ctx context.Context) (*models.Session, error)
	// SaveSession persists the session; nil clears it.
	SaveSession(ctx context.Context, session *models.Session) error

	// SeedIfAbsent writes demo data for every collection that has never been
	// persisted. Collections that already exist are left untouched.
	SeedIfAbsent(ctx context.Context) error
}
