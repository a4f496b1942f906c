package handlers

import (
	"net/http"
	"strconv"
	"testing"
)

func TestTransferEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := loginDemoUser(t, router)

	rr := doJSON(t, router, http.MethodPost, "/transactions/transfer", token, map[string]any{
		"from_account_id": 1,
		"to_account_id":   2,
		"amount":          "200",
		"note":            "to savings",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rr.Code, rr.Body.String())
	}
	transaction := decodeMap(t, rr)
	if transaction["amount"] != "200.00" || transaction["type"] != "transfer" || transaction["note"] != "to savings" {
		t.Fatalf("unexpected transaction: %#v", transaction)
	}
	if transaction["from"] != "Primary Account" || transaction["to"] != "Savings Account" {
		t.Fatalf("unexpected endpoint labels: %#v", transaction)
	}

	rr = doJSON(t, router, http.MethodGet, "/accounts/1", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if account := decodeMap(t, rr); account["balance"] != "800.00" {
		t.Fatalf("expected sender balance 800.00, got %v", account["balance"])
	}
	rr = doJSON(t, router, http.MethodGet, "/accounts/2", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if account := decodeMap(t, rr); account["balance"] != "5200.00" {
		t.Fatalf("expected recipient balance 5200.00, got %v", account["balance"])
	}
}

func TestTransferRejections(t *testing.T) {
	router := newTestRouter(t)
	token := loginDemoUser(t, router)

	cases := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"malformed amount", map[string]any{"from_account_id": 1, "to_account_id": 2, "amount": "abc"}, http.StatusBadRequest},
		{"negative amount", map[string]any{"from_account_id": 1, "to_account_id": 2, "amount": "-5"}, http.StatusBadRequest},
		{"insufficient balance", map[string]any{"from_account_id": 1, "to_account_id": 2, "amount": "99999"}, http.StatusBadRequest},
		{"unknown recipient", map[string]any{"from_account_id": 1, "to_account_id": 42, "amount": "10"}, http.StatusBadRequest},
		{"unknown sender", map[string]any{"from_account_id": 42, "to_account_id": 2, "amount": "10"}, http.StatusNotFound},
	}
	for _, tc := range cases {
		rr := doJSON(t, router, http.MethodPost, "/transactions/transfer", token, tc.body)
		if rr.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d %s", tc.name, tc.status, rr.Code, rr.Body.String())
		}
	}

	// Balances stay untouched after the rejected attempts.
	rr := doJSON(t, router, http.MethodGet, "/accounts/1", token, nil)
	if account := decodeMap(t, rr); account["balance"] != "1000.00" {
		t.Fatalf("rejected transfers mutated balance: %v", account["balance"])
	}
}

func TestExportEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := loginDemoUser(t, router)

	rr := doJSON(t, router, http.MethodGet, "/accounts/1/export", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename="Primary_Account_transactions.xlsx"` {
		t.Fatalf("unexpected content disposition: %q", cd)
	}
	if rr.Body.Len() == 0 {
		t.Fatal("expected workbook bytes")
	}
}

func TestExportEmptyAccountFails(t *testing.T) {
	router := newTestRouter(t)
	token := loginDemoUser(t, router)

	rr := doJSON(t, router, http.MethodPost, "/accounts/", token, map[string]string{
		"account_name": "Empty Account",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	account := decodeMap(t, rr)
	id := int(account["id"].(float64))

	rr = doJSON(t, router, http.MethodGet, "/accounts/"+strconv.Itoa(id)+"/export", token, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty history, got %d %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("Content-Disposition") != "" {
		t.Fatal("no file must be produced for an empty history")
	}
}
