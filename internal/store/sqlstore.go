package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"minibank/internal/db"
	"minibank/internal/models"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY,
	username      TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS accounts (
	id         INTEGER PRIMARY KEY,
	user_id    INTEGER NOT NULL,
	name       TEXT NOT NULL,
	balance    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS transactions (
	id              INTEGER PRIMARY KEY,
	reference       TEXT NOT NULL,
	from_account_id INTEGER,
	to_account_id   INTEGER,
	amount          TEXT NOT NULL,
	type            TEXT NOT NULL,
	note            TEXT NOT NULL,
	created_at      TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS session (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	user_id  INTEGER NOT NULL,
	username TEXT NOT NULL
);
`

// SQLStore keeps the collections in an embedded SQLite database. Each save
// replaces the collection inside one transaction, mirroring the snapshot
// semantics of the JSON store.
type SQLStore struct {
	db     *sqlx.DB
	runner db.TxRunner
}

func NewSQLStore(database *sqlx.DB) *SQLStore {
	return &SQLStore{db: database, runner: db.NewTxRunner(database)}
}

func (s *SQLStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *SQLStore) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users, `SELECT id, username, password_hash, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *SQLStore) SaveUsers(ctx context.Context, users []models.User) error {
	return s.runner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
			return err
		}
		for _, u := range users {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO users (id, username, password_hash, created_at)
				VALUES (?, ?, ?, ?)
			`, u.ID, u.Username, u.PasswordHash, u.CreatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) Accounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	err := s.db.SelectContext(ctx, &accounts, `SELECT id, user_id, name, balance, created_at FROM accounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *SQLStore) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	return s.runner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
			return err
		}
		for _, a := range accounts {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO accounts (id, user_id, name, balance, created_at)
				VALUES (?, ?, ?, ?, ?)
			`, a.ID, a.UserID, a.Name, a.Balance, a.CreatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.SelectContext(ctx, &transactions, `
		SELECT id, reference, from_account_id, to_account_id, amount, type, note, created_at
		FROM transactions ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *SQLStore) SaveTransactions(ctx context.Context, transactions []models.Transaction) error {
	return s.runner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
			return err
		}
		for _, t := range transactions {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO transactions (id, reference, from_account_id, to_account_id, amount, type, note, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, t.ID, t.Reference, t.FromAccountID, t.ToAccountID, t.Amount, t.Type, t.Note, t.CreatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) Session(ctx context.Context) (*models.Session, error) {
	var session models.Session
	err := s.db.GetContext(ctx, &session, `SELECT user_id, username FROM session WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SQLStore) SaveSession(ctx context.Context, session *models.Session) error {
	if session == nil {
		_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`)
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, user_id, username) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET user_id = excluded.user_id, username = excluded.username
	`, session.UserID, session.Username)
	return err
}

func (s *SQLStore) SeedIfAbsent(ctx context.Context) error {
	now := time.Now().UTC()
	empty, err := s.tableEmpty(ctx, "users")
	if err != nil {
		return err
	}
	if empty {
		users, err := SeedUsers(now)
		if err != nil {
			return err
		}
		if err := s.SaveUsers(ctx, users); err != nil {
			return err
		}
	}
	if empty, err = s.tableEmpty(ctx, "accounts"); err != nil {
		return err
	} else if empty {
		if err := s.SaveAccounts(ctx, SeedAccounts(now)); err != nil {
			return err
		}
	}
	if empty, err = s.tableEmpty(ctx, "transactions"); err != nil {
		return err
	} else if empty {
		if err := s.SaveTransactions(ctx, SeedTransactions(now)); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) tableEmpty(ctx context.Context, table string) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM `+table); err != nil {
		return false, err
	}
	return count == 0, nil
}
