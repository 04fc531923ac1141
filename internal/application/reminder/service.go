// Package reminder is the synchronous dosage-reminder path. It bypasses the
// decision engine entirely: the caller, not medicine state, triggers it, and
// unlike the trigger paths it surfaces typed failures to its caller.
package reminder

import (
	"context"
	"fmt"

	"github.com/JuanDluna/biosafe/internal/application/composer"
	"github.com/JuanDluna/biosafe/internal/application/delivery"
	"github.com/JuanDluna/biosafe/internal/domain"
)

// Ack is returned to the caller on a successful send.
type Ack struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
}

type Service interface {
	Send(ctx context.Context, userID string, req domain.DosageReminderRequest) (*Ack, error)
}

type service struct {
	delivery delivery.Service
}

func NewService(d delivery.Service) Service {
	return &service{delivery: d}
}

func (s *service) Send(ctx context.Context, userID string, req domain.DosageReminderRequest) (*Ack, error) {
	msg := composer.DosageReminder(req.MedicineID, req.MedicineName, req.DosageAmount)
	res := s.delivery.Send(ctx, delivery.Request{
		UserID:     userID,
		MedicineID: req.MedicineID,
		Message:    msg,
		Category:   domain.CategoryDosageReminder,
	})
	switch res.Outcome {
	case delivery.Delivered:
		return &Ack{Success: true, MessageID: res.MessageID}, nil
	case delivery.NoRecipient:
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	case delivery.NoToken:
		return nil, fmt.Errorf("user %s has no registered device token: %w", userID, domain.ErrFailedPrecondition)
	default:
		return nil, fmt.Errorf("send dosage reminder (%s): %w", res.Outcome, res.Err)
	}
}
