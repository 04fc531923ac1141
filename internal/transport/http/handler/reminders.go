package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JuanDluna/biosafe/internal/application/reminder"
	"github.com/JuanDluna/biosafe/internal/domain"
	"github.com/JuanDluna/biosafe/internal/pkg/validate"
	"github.com/JuanDluna/biosafe/internal/transport/http/middleware"
)

// ReminderHandler handles the synchronous dosage-reminder endpoint.
type ReminderHandler struct {
	svc reminder.Service
}

func NewReminderHandler(svc reminder.Service) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

// SendDosage forces a "take your dose now" push for the authenticated caller.
// Identity is checked before anything touches the store.
func (h *ReminderHandler) SendDosage(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.DosageReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ack, err := h.svc.Send(r.Context(), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ack)
}
