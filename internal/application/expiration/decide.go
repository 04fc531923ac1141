// Package expiration is the decision engine: it computes urgency tiers and
// decides, per trigger path, whether a medicine warrants a notification.
package expiration

import (
	"math"
	"time"

	"github.com/JuanDluna/biosafe/internal/domain"
)

// sweepMaxDays is the tighter window the sweep path covers: it is the safety
// net for imminent or expired medicines regardless of when the expiration
// date was last edited. The change path covers the full alert range.
const sweepMaxDays = 7

// Decision says one notification is warranted for one medicine.
type Decision struct {
	UserID     string
	MedicineID string
	Name       string
	Urgency    domain.Urgency
	Days       int
}

// DaysUntil returns the ceiling of (expiration - now) in whole days.
// Negative when the expiration has already passed.
func DaysUntil(expiration, now time.Time) int {
	return int(math.Ceil(expiration.Sub(now).Hours() / 24))
}

// Classify maps a day count onto an urgency tier.
func Classify(days int) domain.Urgency {
	switch {
	case days == 0:
		return domain.UrgencyExpired
	case days >= 1 && days <= 7:
		return domain.UrgencyCritical
	case days >= 8 && days <= 30:
		return domain.UrgencyUpcoming
	default:
		return domain.UrgencyNoAlert
	}
}

// DecideOnChange evaluates one write to a medicine record. It emits a
// decision only when the current snapshot has an owner and an expiration in
// the alert range, and the expiration value is new information: the record
// was just created, or its expiration differs from the previous snapshot's.
// Renames and other unrelated edits never notify. A tier that drifted purely
// through elapsed time under an unchanged expiration is left to the sweep.
func DecideOnChange(change domain.MedicineChange, now time.Time) *Decision {
	if change.Kind == domain.ChangeDeleted || change.After == nil {
		return nil
	}
	m := change.After
	if m.UserID == "" || m.Expiration == nil {
		return nil
	}
	days := DaysUntil(*m.Expiration, now)
	urgency := Classify(days)
	if urgency == domain.UrgencyNoAlert {
		return nil
	}
	if prev := change.Before; prev != nil && prev.Expiration != nil && prev.Expiration.Equal(*m.Expiration) {
		return nil
	}
	return &Decision{
		UserID:     m.UserID,
		MedicineID: m.MedicineID,
		Name:       m.DisplayName(),
		Urgency:    urgency,
		Days:       days,
	}
}

// DecideOnSweep evaluates one medicine during the daily sweep. No
// new-information gate here: the sweep re-decides from urgency alone, and
// the caller dedups against the notification log.
func DecideOnSweep(m domain.Medicine, now time.Time) *Decision {
	if m.UserID == "" || m.Expiration == nil {
		return nil
	}
	days := DaysUntil(*m.Expiration, now)
	if days < 0 || days > sweepMaxDays {
		return nil
	}
	return &Decision{
		UserID:     m.UserID,
		MedicineID: m.MedicineID,
		Name:       m.DisplayName(),
		Urgency:    Classify(days),
		Days:       days,
	}
}
