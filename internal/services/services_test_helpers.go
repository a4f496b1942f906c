package services

import (
	"context"
	"testing"

	"minibank/internal/store"
	"minibank/internal/websocket"
)

// seededRepo returns a JSON repository in a temp dir populated with the demo
// seed: demo_user owning Primary Account (1000.00) and Savings Account
// (5000.00) plus the two seed transactions.
func seededRepo(t *testing.T) *store.JSONStore {
	t.Helper()
	repo, err := store.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	if err := repo.SeedIfAbsent(context.Background()); err != nil {
		t.Fatalf("SeedIfAbsent: %v", err)
	}
	return repo
}

type stubHub struct {
	calls []websocket.BalanceUpdate
}

func (s *stubHub) BroadcastBalance(_ int64, update websocket.BalanceUpdate) {
	s.calls = append(s.calls, update)
}
