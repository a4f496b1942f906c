package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTopUp    = "top-up"
	TransactionTransfer = "transfer"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"password_hash"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Account struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Name      string          `db:"name" json:"account_name"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

type Transaction struct {
	ID            int64           `db:"id" json:"id"`
	Reference     string          `db:"reference" json:"reference"`
	FromAccountID *int64          `db:"from_account_id" json:"from_account_id,omitempty"`
	ToAccountID   *int64          `db:"to_account_id" json:"to_account_id,omitempty"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Type          string          `db:"type" json:"type"`
	Note          string          `db:"note" json:"note"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Session mirrors the logged-in user to storage so a restart restores it.
type Session struct {
	UserID   int64  `db:"user_id" json:"id"`
	Username string `db:"username" json:"username"`
}
