package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JuanDluna/biosafe/internal/application/expiration"
	"github.com/JuanDluna/biosafe/internal/domain"
	"github.com/JuanDluna/biosafe/internal/pkg/validate"
)

// TriggerHandler adapts the two external triggers, per-write change events
// and the periodic sweep, onto the decision engine. Per the propagation
// policy, a delivery problem never turns into a non-2xx response here: the
// platform behind these endpoints would retry the whole event redundantly.
type TriggerHandler struct {
	engine expiration.Service
}

func NewTriggerHandler(engine expiration.Service) *TriggerHandler {
	return &TriggerHandler{engine: engine}
}

// MedicineChange receives one before/after snapshot pair per write to a
// medicine record. Only malformed payloads are rejected.
func (h *TriggerHandler) MedicineChange(w http.ResponseWriter, r *http.Request) {
	var event domain.MedicineChangeEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(event); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if event.Before != nil && event.Before.MedicineID == "" {
		event.Before.MedicineID = event.MedicineID
	}
	if event.After != nil && event.After.MedicineID == "" {
		event.After.MedicineID = event.MedicineID
	}

	change, err := domain.NewMedicineChange(event.Before, event.After)
	if err != nil {
		httpError(w, err)
		return
	}
	outcome := h.engine.HandleChange(r.Context(), change)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: string(outcome)})
}

// Sweep runs one sweep synchronously and returns its report. The scheduled
// daily run uses the same engine; this endpoint exists for operators and the
// hosting platform's own cron.
func (h *TriggerHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	report, err := h.engine.RunSweep(r.Context())
	if err != nil {
		// Only the initial store query can land here; per-item delivery
		// failures are already folded into the report.
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}
