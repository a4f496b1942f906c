package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"minibank/internal/models"
)

const (
	usersFile        = "users.json"
	accountsFile     = "accounts.json"
	transactionsFile = "transactions.json"
	sessionFile      = "logged_in.json"
)

// JSONStore persists each collection as a JSON file in a data directory.
// Writes go through a temporary file and rename so a crash mid-write never
// corrupts the previous snapshot.
type JSONStore struct {
	dir string
	mu  sync.Mutex
}

func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &JSONStore{dir: dir}, nil
}

func (s *JSONStore) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.read(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *JSONStore) SaveUsers(ctx context.Context, users []models.User) error {
	return s.write(usersFile, users)
}

func (s *JSONStore) Accounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.read(accountsFile, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *JSONStore) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	return s.write(accountsFile, accounts)
}

func (s *JSONStore) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.read(transactionsFile, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *JSONStore) SaveTransactions(ctx context.Context, transactions []models.Transaction) error {
	return s.write(transactionsFile, transactions)
}

func (s *JSONStore) Session(ctx context.Context) (*models.Session, error) {
	var session models.Session
	err := s.read(sessionFile, &session)
	if err != nil {
		return nil, err
	}
	if session.UserID == 0 {
		return nil, nil
	}
	return &session, nil
}

func (s *JSONStore) SaveSession(ctx context.Context, session *models.Session) error {
	if session == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		err := os.Remove(filepath.Join(s.dir, sessionFile))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return s.write(sessionFile, session)
}

func (s *JSONStore) SeedIfAbsent(ctx context.Context) error {
	now := time.Now().UTC()
	if missing, err := s.absent(usersFile); err != nil {
		return err
	} else if missing {
		users, err := SeedUsers(now)
		if err != nil {
			return err
		}
		if err := s.SaveUsers(ctx, users); err != nil {
			return err
		}
	}
	if missing, err := s.absent(accountsFile); err != nil {
		return err
	} else if missing {
		if err := s.SaveAccounts(ctx, SeedAccounts(now)); err != nil {
			return err
		}
	}
	if missing, err := s.absent(transactionsFile); err != nil {
		return err
	} else if missing {
		if err := s.SaveTransactions(ctx, SeedTransactions(now)); err != nil {
			return err
		}
	}
	return nil
}

func (s *JSONStore) absent(name string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	return false, err
}

func (s *JSONStore) read(name string, dest any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(dest)
}

func (s *JSONStore) write(name string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
