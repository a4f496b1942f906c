package handlers

import (
	"net/http"
	"testing"
)

func TestListAccountsRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/accounts/", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestListAccountsReturnsSeededAccounts(t *testing.T) {
	router := newTestRouter(t)
	token := loginDemoUser(t, router)

	rr := doJSON(t, router, http.MethodGet, "/accounts/", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	accounts := decodeList(t, rr)
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0]["account_name"] != "Primary Account" || accounts[0]["balance"] != "1000.00" {
		t.Fatalf("unexpected first account: %#v", accounts[0])
	}
	if accounts[1]["account_name"] != "Savings Account" || accounts[1]["balance"] != "5000.00" {
		t.Fatalf("unexpected second account: %#v", accounts[1])
	}
}

func TestCreateAccountStatuses(t *testing.T) {
	router := newTestRouter(t)
	token := loginDemoUser(t, router)

	rr := doJSON(t, router, http.MethodPost, "/accounts/", token, map[string]string{
		"account_name": "Holiday Fund",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rr.Code, rr.Body.String())
	}
	account := decodeMap(t, rr)
	if account["account_name"] != "Holiday Fund" || account["balance"] != "0.00" {
		t.Fatalf("unexpected account: %#v", account)
	}

	rr = doJSON(t, router, http.MethodPost, "/accounts/", token, map[string]string{
		"account_name": "holiday fund",
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate name, got %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodPost, "/accounts/", token, map[string]string{
		"account_name": "   ",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty name, got %d", rr.Code)
	}
}

func TestTopUpEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := loginDemoUser(t, router)

	rr := doJSON(t, router, http.MethodPost, "/accounts/1/topup", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	account := decodeMap(t, rr)
	if account["balance"] != "1100.00" {
		t.Fatalf("expected balance 1100.00, got %v", account["balance"])
	}

	rr = doJSON(t, router, http.MethodPost, "/accounts/42/topup", token, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown account, got %d", rr.Code)
	}
	rr = doJSON(t, router, http.MethodPost, "/accounts/abc/topup", token, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rr.Code)
	}
}

func TestListTransactionsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := loginDemoUser(t, router)

	rr := doJSON(t, router, http.MethodGet, "/accounts/1/transactions", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	transactions := decodeList(t, rr)
	if len(transactions) != 2 {
		t.Fatalf("expected 2 seed transactions, got %d", len(transactions))
	}
	// Seed rows share a timestamp; id breaks the tie newest-first.
	if transactions[0]["type"] != "transfer" || transactions[0]["to"] != "Savings Account" {
		t.Fatalf("unexpected first transaction: %#v", transactions[0])
	}
	if transactions[1]["type"] != "top-up" || transactions[1]["from"] != "External" {
		t.Fatalf("unexpected second transaction: %#v", transactions[1])
	}

	rr = doJSON(t, router, http.MethodGet, "/accounts/42/transactions", token, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown account, got %d", rr.Code)
	}
}
