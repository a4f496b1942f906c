package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"minibank/internal/auth"
	"minibank/internal/models"
	"minibank/internal/store"
	"minibank/internal/validator"
)

// SessionService registers and authenticates users and tracks the persisted
// session marker.
type SessionService struct {
	repo store.Repository
	mu   sync.Mutex
}

func NewSessionService(repo store.Repository) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) Register(ctx context.Context, username, password, confirm string) (models.User, error) {
	username = strings.TrimSpace(username)
	if err := validator.ValidatePasswordConfirmation(password, confirm); err != nil {
		return models.User{}, ErrPasswordMismatch
	}
	if err := validator.ValidateUsername(username); err != nil {
		return models.User{}, ErrUsernameTooShort
	}
	if err := validator.ValidatePassword(password); err != nil {
		return models.User{}, ErrPasswordTooShort
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.repo.Users(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return models.User{}, ErrUsernameTaken
		}
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		ID:           nextUserID(users),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	users = append(users, user)
	if err := s.repo.SaveUsers(ctx, users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login matches the username case-insensitively but the password exactly.
// The session is persisted so a restart restores it.
func (s *SessionService) Login(ctx context.Context, username, password string) (models.Session, error) {
	users, err := s.repo.Users(ctx)
	if err != nil {
		return models.Session{}, err
	}
	username = strings.TrimSpace(username)
	for _, u := range users {
		if strings.EqualFold(u.Username, username) && auth.CheckPassword(u.PasswordHash, password) {
			session := models.Session{UserID: u.ID, Username: u.Username}
			if err := s.repo.SaveSession(ctx, &session); err != nil {
				return models.Session{}, err
			}
			return session, nil
		}
	}
	return models.Session{}, ErrAuth
}

// Logout clears the session marker; user and account data are untouched.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.repo.SaveSession(ctx, nil)
}

// Current returns the persisted session, or nil when nobody is logged in.
func (s *SessionService) Current(ctx context.Context) (*models.Session, error) {
	return s.repo.Session(ctx)
}

func (s *SessionService) UserByID(ctx context.Context, userID int64) (models.User, error) {
	users, err := s.repo.Users(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.ID == userID {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func nextUserID(users []models.User) int64 {
	var max int64
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}
