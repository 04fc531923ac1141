package domain

// Urgency orders the expiration tiers from least to most pressing.
type Urgency int

const (
	UrgencyNoAlert Urgency = iota
	UrgencyUpcoming
	UrgencyCritical
	UrgencyExpired
)

func (u Urgency) String() string {
	switch u {
	case UrgencyUpcoming:
		return "upcoming"
	case UrgencyCritical:
		return "critical"
	case UrgencyExpired:
		return "expired"
	default:
		return "no_alert"
	}
}
