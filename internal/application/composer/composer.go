// Package composer maps urgency tiers to rendered push messages.
// Every function here is pure: same inputs, byte-identical outputs, no I/O.
package composer

import (
	"fmt"
	"strconv"

	"github.com/JuanDluna/biosafe/internal/domain"
)

// Message is a fully rendered notification ready for the push gateway.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Expiration renders the expiration-alert message for the given tier.
// Callers only pass tiers in {Expired, Critical, Upcoming}; anything else
// falls through to the Upcoming template so the function stays total.
func Expiration(urgency domain.Urgency, days int, medicineID, name string) Message {
	var title, body string
	switch urgency {
	case domain.UrgencyExpired:
		title = "⚠️ Medicamento Vencido"
		body = fmt.Sprintf("%s ha vencido hoy. Por favor, revisa tu inventario.", name)
	case domain.UrgencyCritical:
		title = "🔴 Alerta: Medicamento Próximo a Vencer"
		body = fmt.Sprintf("%s vence en %d %s.", name, days, dayWord(days))
	default:
		title = "🟡 Recordatorio: Medicamento Próximo a Vencer"
		body = fmt.Sprintf("%s vence en %d %s.", name, days, dayWord(days))
	}
	return Message{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":                  domain.CategoryExpirationAlert,
			"medicine_id":           medicineID,
			"medicine_name":         name,
			"days_until_expiration": strconv.Itoa(days),
		},
	}
}

// DosageReminder renders the fixed "time to take your dose" message for the
// manual reminder path. Not tier-based.
func DosageReminder(medicineID, name, dosage string) Message {
	if dosage == "" {
		dosage = "tu dosis"
	}
	return Message{
		Title: "💊 Recordatorio: Es hora de tomar tu medicamento",
		Body:  fmt.Sprintf("Es hora de tomar: %s de %s", dosage, name),
		Data: map[string]string{
			"type":          domain.CategoryDosageReminder,
			"medicine_id":   medicineID,
			"medicine_name": name,
		},
	}
}

// dayWord picks the singular form at exactly one day.
func dayWord(days int) string {
	if days == 1 {
		return "día"
	}
	return "días"
}
