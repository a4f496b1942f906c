package handlers

import (
	"encoding/json"
	"net/http"

	"minibank/internal/middleware"
	"minibank/internal/money"
	"minibank/internal/services"
)

type transferRequest struct {
	FromAccountID int64  `json:"from_account_id"`
	ToAccountID   int64  `json:"to_account_id"`
	Amount        string `json:"amount"`
	Note          string `json:"note"`
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.ParsePositive(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, services.ErrInvalidAmount.Error())
		return
	}
	transaction, err := h.ledger.Transfer(r.Context(), services.TransferRequest{
		UserID:        userID,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        amount,
		Note:          req.Note,
	})
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
	respondJSON(w, http.StatusCreated, transactionJSON(transaction, names))
}
