package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"minibank/internal/models"
	"minibank/internal/money"
	"minibank/internal/store"
	"minibank/internal/validator"
	"minibank/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	topUpNote   = "Demo top-up $100"
	defaultNote = "Transfer"
)

// Every top-up credits the same fixed demo amount.
var topUpAmount = decimal.NewFromInt(100)

type BalanceHub interface {
	BroadcastBalance(userID int64, update websocket.BalanceUpdate)
}

// LedgerService owns account creation and every balance-changing operation.
// Mutations validate against a loaded snapshot and persist only when the
// whole operation is valid, so a rejected request never leaves partial state.
type LedgerService struct {
	repo store.Repository
	hub  BalanceHub
	mu   sync.Mutex
}

func NewLedgerService(repo store.Repository, hub BalanceHub) *LedgerService {
	return &LedgerService{repo: repo, hub: hub}
}

func (s *LedgerService) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]models.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.UserID == userID {
			owned = append(owned, a)
		}
	}
	return owned, nil
}

func (s *LedgerService) GetAccount(ctx context.Context, userID, accountID int64) (models.Account, error) {
	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		return models.Account{}, err
	}
	for _, a := range accounts {
		if a.ID == accountID && a.UserID == userID {
			return a, nil
		}
	}
	return models.Account{}, ErrAccountNotFound
}

// CreateAccount opens a new account with a zero balance. The name must be
// unique among the owner's accounts, compared case-insensitively.
func (s *LedgerService) CreateAccount(ctx context.Context, userID int64, name string) (models.Account, error) {
	name = strings.TrimSpace(name)
	if err := validator.ValidateAccountName(name); err != nil {
		return models.Account{}, ErrAccountNameEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		return models.Account{}, err
	}
	for _, a := range accounts {
		if a.UserID == userID && strings.EqualFold(a.Name, name) {
			return models.Account{}, ErrAccountNameTaken
		}
	}
	account := models.Account{
		ID:        nextAccountID(accounts),
		UserID:    userID,
		Name:      name,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}
	accounts = append(accounts, account)
	if err := s.repo.SaveAccounts(ctx, accounts); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// TopUp credits the fixed demo amount to one of the caller's accounts and
// appends the matching top-up transaction.
func (s *LedgerService) TopUp(ctx context.Context, userID, accountID int64) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		return models.Account{}, err
	}
	idx := -1
	for i, a := range accounts {
		if a.ID == accountID && a.UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Account{}, ErrAccountNotFound
	}
	transactions, err := s.repo.Transactions(ctx)
	if err != nil {
		return models.Account{}, err
	}

	accounts[idx].Balance = accounts[idx].Balance.Add(topUpAmount)
	transactions = append(transactions, models.Transaction{
		ID:          nextTransactionID(transactions),
		Reference:   uuid.NewString(),
		ToAccountID: &accountID,
		Amount:      topUpAmount,
		Type:        models.TransactionTopUp,
		Note:        topUpNote,
		CreatedAt:   time.Now().UTC(),
	})
	if err := s.repo.SaveAccounts(ctx, accounts); err != nil {
		return models.Account{}, err
	}
	if err := s.repo.SaveTransactions(ctx, transactions); err != nil {
		return models.Account{}, err
	}
	s.broadcast(accounts[idx])
	return accounts[idx], nil
}

type TransferRequest struct {
	UserID        int64
	FromAccountID int64
	ToAccountID   int64
	Amount        decimal.Decimal
	Note          string
}

// Transfer moves amount between two accounts of the same user. Validation
// happens before any mutation; on failure both balances and the transaction
// log are unchanged.
func (s *LedgerService) Transfer(ctx context.Context, req TransferRequest) (models.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return models.Transaction{}, ErrInvalidAmount
	}
	if req.FromAccountID == req.ToAccountID {
		return models.Transaction{}, ErrSameAccountTransfer
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		return models.Transaction{}, err
	}
	fromIdx, toIdx := -1, -1
	for i, a := range accounts {
		if a.UserID != req.UserID {
			continue
		}
		switch a.ID {
		case req.FromAccountID:
			fromIdx = i
		case req.ToAccountID:
			toIdx = i
		}
	}
	if fromIdx < 0 {
		return models.Transaction{}, ErrAccountNotFound
	}
	if toIdx < 0 {
		return models.Transaction{}, ErrInvalidRecipient
	}
	if accounts[fromIdx].Balance.LessThan(req.Amount) {
		return models.Transaction{}, ErrInsufficientFunds
	}
	transactions, err := s.repo.Transactions(ctx)
	if err != nil {
		return models.Transaction{}, err
	}

	accounts[fromIdx].Balance = accounts[fromIdx].Balance.Sub(req.Amount)
	accounts[toIdx].Balance = accounts[toIdx].Balance.Add(req.Amount)

	note := strings.TrimSpace(req.Note)
	if note == "" {
		note = defaultNote
	}
	transaction := models.Transaction{
		ID:            nextTransactionID(transactions),
		Reference:     uuid.NewString(),
		FromAccountID: &req.FromAccountID,
		ToAccountID:   &req.ToAccountID,
		Amount:        req.Amount,
		Type:          models.TransactionTransfer,
		Note:          note,
		CreatedAt:     time.Now().UTC(),
	}
	transactions = append(transactions, transaction)
	if err := s.repo.SaveAccounts(ctx, accounts); err != nil {
		return models.Transaction{}, err
	}
	if err := s.repo.SaveTransactions(ctx, transactions); err != nil {
		return models.Transaction{}, err
	}
	s.broadcast(accounts[fromIdx])
	s.broadcast(accounts[toIdx])
	return transaction, nil
}

// ListTransactions returns a snapshot of the transactions touching the
// account, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	transactions, err := s.repo.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if touchesAccount(t, accountID) {
			filtered = append(filtered, t)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].ID > filtered[j].ID
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

func (s *LedgerService) broadcast(account models.Account) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastBalance(account.UserID, websocket.BalanceUpdate{
		AccountID: account.ID,
		Balance:   money.Format(account.Balance),
	})
}

func touchesAccount(t models.Transaction, accountID int64) bool {
	if t.FromAccountID != nil && *t.FromAccountID == accountID {
		return true
	}
	return t.ToAccountID != nil && *t.ToAccountID == accountID
}

func nextAccountID(accounts []models.Account) int64 {
	var max int64
	for _, a := range accounts {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}

func nextTransactionID(transactions []models.Transaction) int64 {
	var max int64
	for _, t := range transactions {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}
