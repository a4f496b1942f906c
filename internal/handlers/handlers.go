package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"minibank/internal/config"
	"minibank/internal/logger"
	"minibank/internal/models"
	"minibank/internal/money"
	"minibank/internal/services"
	"minibank/internal/websocket"
)

type Handler struct {
	cfg      config.Config
	log      *logger.Logger
	sessions SessionService
	ledger   LedgerService
	exports  ExportService
	hub      *websocket.Hub
}

func New(cfg config.Config, log *logger.Logger, sessions SessionService, ledger LedgerService, exports ExportService, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		ledger:   ledger,
		exports:  exports,
		hub:      hub,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the service error kinds onto HTTP statuses.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrAuth):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Errorw("request failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func accountJSON(a models.Account) map[string]any {
	return map[string]any{
		"id":           a.ID,
		"user_id":      a.UserID,
		"account_name": a.Name,
		"balance":      money.Format(a.Balance),
		"created_at":   a.CreatedAt,
	}
}

func transactionJSON(t models.Transaction, names map[int64]string) map[string]any {
	return map[string]any{
		"id":              t.ID,
		"reference":       t.Reference,
		"from_account_id": t.FromAccountID,
		"to_account_id":   t.ToAccountID,
		"from":            endpointLabel(t.FromAccountID, names),
		"to":              endpointLabel(t.ToAccountID, names),
		"amount":          money.Format(t.Amount),
		"type":            t.Type,
		"note":            t.Note,
		"created_at":      t.CreatedAt,
	}
}

// endpointLabel resolves a transaction endpoint to a display name; nil and
// foreign accounts render as "External".
func endpointLabel(accountID *int64, names map[int64]string) string {
	if accountID == nil {
		return "External"
	}
	if name, ok := names[*accountID]; ok {
		return name
	}
	return "External"
}
