package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"minibank/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accounts, err := h.ledger.ListAccounts(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	normalized := make([]map[string]any, 0, len(accounts))
	for _, account := range accounts {
		normalized = append(normalized, accountJSON(account))
	}
	respondJSON(w, http.StatusOK, normalized)
}

type createAccountRequest struct {
	AccountName string `json:"account_name"`
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	account, err := h.ledger.CreateAccount(r.Context(), userID, req.AccountName)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, accountJSON(account))
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID, err := accountIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	account, err := h.ledger.GetAccount(r.Context(), userID, accountID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accountJSON(account))
}

func (h *Handler) TopUp(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID, err := accountIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	account, err := h.ledger.TopUp(r.Context(), userID, accountID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accountJSON(account))
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID, err := accountIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	// Ownership check before exposing the history.
	if _, err := h.ledger.GetAccount(r.Context(), userID, accountID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	transactions, err := h.ledger.ListTransactions(r.Context(), accountID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	accounts, err := h.ledger.ListAccounts(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	names := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}
	normalized := make([]map[string]any, 0, len(transactions))
	for _, t := range transactions {
		normalized = append(normalized, transactionJSON(t, names))
	}
	respondJSON(w, http.StatusOK, normalized)
}

func accountIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
