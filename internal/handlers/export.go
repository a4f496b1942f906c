package handlers

import (
	"net/http"
	"strconv"

	"minibank/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportTransactions streams the account's history as an xlsx attachment.
func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
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
	file, err := h.exports.AccountTransactions(r.Context(), userID, accountID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}
