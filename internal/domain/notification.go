package domain

import "time"

// Notification delivery status and category tags. StatusSent is the only
// status ever written: failed deliveries are logged, not recorded.
const (
	StatusSent = "sent"

	CategoryExpirationAlert = "expiration_alert"
	CategoryDosageReminder  = "dosage_reminder"
)

// Notification is one append-only audit record per successful push delivery.
// Never mutated or deleted. The urgency field doubles as the dedup key:
// the sweep consults the latest expiration_alert per medicine and skips
// re-sends for an unchanged tier.
type Notification struct {
	NotificationID      string    `json:"id" dynamodbav:"notification_id"`
	UserID              string    `json:"user_id" dynamodbav:"user_id"`
	MedicineID          string    `json:"medicine_id" dynamodbav:"medicine_id"`
	Time                time.Time `json:"time" dynamodbav:"time"`
	Message             string    `json:"message" dynamodbav:"message"`
	Status              string    `json:"status" dynamodbav:"status"`
	Category            string    `json:"category" dynamodbav:"category"`
	Urgency             string    `json:"urgency,omitempty" dynamodbav:"urgency"`
	DaysUntilExpiration int       `json:"days_until_expiration" dynamodbav:"days_until_expiration"`
}
