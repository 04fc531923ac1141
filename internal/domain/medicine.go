package domain

import (
	"fmt"
	"time"
)

// DefaultMedicineName is used when a medicine record carries no display name.
const DefaultMedicineName = "Medicamento"

type Medicine struct {
	MedicineID string     `json:"id" dynamodbav:"medicine_id"`
	UserID     string     `json:"user_id" dynamodbav:"user_id"`
	Name       string     `json:"name" dynamodbav:"name"`
	Expiration *time.Time `json:"expiration_date" dynamodbav:"expiration_date"`
	CreatedAt  time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// DisplayName returns the medicine name, falling back to a generic label.
func (m *Medicine) DisplayName() string {
	if m.Name == "" {
		return DefaultMedicineName
	}
	return m.Name
}

// ChangeKind tags a MedicineChange so consumers never have to reason about
// which combination of nil snapshots is valid.
type ChangeKind int

const (
	ChangeCreated ChangeKind = iota
	ChangeUpdated
	ChangeDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// MedicineChange is the before/after pairing produced once per write to a
// medicine record. Before is nil on creation, After is nil on deletion.
type MedicineChange struct {
	Kind   ChangeKind
	Before *Medicine
	After  *Medicine
}

// NewMedicineChange derives the change kind from the snapshot pair.
// A change with neither snapshot is malformed.
func NewMedicineChange(before, after *Medicine) (MedicineChange, error) {
	switch {
	case before == nil && after == nil:
		return MedicineChange{}, fmt.Errorf("change carries no snapshots: %w", ErrBadRequest)
	case before == nil:
		return MedicineChange{Kind: ChangeCreated, After: after}, nil
	case after == nil:
		return MedicineChange{Kind: ChangeDeleted, Before: before}, nil
	default:
		return MedicineChange{Kind: ChangeUpdated, Before: before, After: after}, nil
	}
}

// MedicineChangeEvent is the wire payload delivered by the change trigger,
// once per write to a medicine record.
type MedicineChangeEvent struct {
	MedicineID string    `json:"medicine_id" validate:"required"`
	Before     *Medicine `json:"before"`
	After      *Medicine `json:"after"`
}

// DosageReminderRequest is the caller-supplied argument record for the
// manual dosage-reminder endpoint.
type DosageReminderRequest struct {
	MedicineID   string `json:"medicine_id" validate:"required"`
	MedicineName string `json:"medicine_name" validate:"required"`
	DosageAmount string `json:"dosage_amount"`
}
