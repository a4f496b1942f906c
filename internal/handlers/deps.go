package handlers

import (
	"context"

	"minibank/internal/models"
	"minibank/internal/services"
)

type SessionService interface {
	Register(ctx context.Context, username, password, confirm string) (models.User, error)
	Login(ctx context.Context, username, password string) (models.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Session, error)
	UserByID(ctx context.Context, userID int64) (models.User, error)
}

type LedgerService interface {
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)
	GetAccount(ctx context.Context, userID, accountID int64) (models.Account, error)
	CreateAccount(ctx context.Context, userID int64, name string) (models.Account, error)
	TopUp(ctx context.Context, userID, accountID int64) (models.Account, error)
	Transfer(ctx context.Context, req services.TransferRequest) (models.Transaction, error)
	ListTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error)
}

type ExportService interface {
	AccountTransactions(ctx context.Context, userID, accountID int64) (services.ExportFile, error)
}
