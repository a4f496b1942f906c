package store

import (
	"time"

	"minibank/internal/auth"
	"minibank/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	seedUsername = "demo_user"
	seedPassword = "password123"
)

// SeedUsers returns the default user collection: one demo user.
func SeedUsers(now time.Time) ([]models.User, error) {
	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		return nil, err
	}
	return []models.User{
		{ID: 1, Username: seedUsername, PasswordHash: hash, CreatedAt: now},
	}, nil
}

// SeedAccounts returns the default account collection: two accounts owned by
// the demo user.
func SeedAccounts(now time.Time) []models.Account {
	return []models.Account{
		{ID: 1, UserID: 1, Name: "Primary Account", Balance: decimal.NewFromInt(1000), CreatedAt: now},
		{ID: 2, UserID: 1, Name: "Savings Account", Balance: decimal.NewFromInt(5000), CreatedAt: now},
	}
}

// SeedTransactions returns the default transaction log reflecting the seeded
// account balances.
func SeedTransactions(now time.Time) []models.Transaction {
	primary := int64(1)
	savings := int64(2)
	return []models.Transaction{
		{
			ID:          1,
			Reference:   uuid.NewString(),
			ToAccountID: &primary,
			Amount:      decimal.NewFromInt(1000),
			Type:        models.TransactionTopUp,
			Note:        "Initial balance",
			CreatedAt:   now,
		},
		{
			ID:            2,
			Reference:     uuid.NewString(),
			FromAccountID: &primary,
			ToAccountID:   &savings,
			Amount:        decimal.NewFromInt(200),
			Type:          models.TransactionTransfer,
			Note:          "Transfer to savings",
			CreatedAt:     now,
		},
	}
}
