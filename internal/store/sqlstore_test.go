package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"minibank/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

func newMockSQLStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return NewSQLStore(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestSQLStoreUsers(t *testing.T) {
	s, mock := newMockSQLStore(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, password_hash, created_at FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(1, "demo_user", "hash", created))

	users, err := s.Users(context.Background())
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(users) != 1 || users[0].Username != "demo_user" || !users[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected users: %#v", users)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreAccountsScansDecimalBalance(t *testing.T) {
	s, mock := newMockSQLStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, balance, created_at FROM accounts")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "balance", "created_at"}).
			AddRow(1, 1, "Primary Account", "1000.00", time.Now().UTC()))

	accounts, err := s.Accounts(context.Background())
	if err != nil {
		t.Fatalf("Accounts: %v", err)
	}
	if len(accounts) != 1 || !accounts[0].Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected accounts: %#v", accounts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreSaveAccountsReplacesCollectionInTx(t *testing.T) {
	s, mock := newMockSQLStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO accounts")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	accounts := []models.Account{
		{ID: 1, UserID: 1, Name: "Primary Account", Balance: decimal.NewFromInt(1000), CreatedAt: time.Now().UTC()},
	}
	if err := s.SaveAccounts(context.Background(), accounts); err != nil {
		t.Fatalf("SaveAccounts: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreSessionAbsent(t *testing.T) {
	s, mock := newMockSQLStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, username FROM session WHERE id = 1")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username"}))

	session, err := s.Session(context.Background())
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if session != nil {
		t.Fatalf("expected nil session, got %#v", session)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreSaveSessionUpsertAndClear(t *testing.T) {
	s, mock := newMockSQLStore(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session")).
		WithArgs(int64(1), "demo_user").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM session WHERE id = 1")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	if err := s.SaveSession(ctx, &models.Session{UserID: 1, Username: "demo_user"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := s.SaveSession(ctx, nil); err != nil {
		t.Fatalf("SaveSession(nil): %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
