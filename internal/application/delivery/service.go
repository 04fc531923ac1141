// Package delivery resolves a user's push destination, invokes the gateway
// and appends the audit record. It reports every outcome as a value; the
// caller decides which failures to swallow.
package delivery

import (
	"context"
	"errors"
	"time"

	"github.com/JuanDluna/biosafe/internal/application/composer"
	"github.com/JuanDluna/biosafe/internal/domain"
	"github.com/JuanDluna/biosafe/internal/infrastructure/sns"
	"github.com/JuanDluna/biosafe/internal/pkg/id"
	"go.uber.org/zap"
)

// Outcome classifies one delivery attempt.
type Outcome int

const (
	// Delivered means the gateway accepted the message and a record was written.
	Delivered Outcome = iota
	// NoRecipient means the owner's user record does not exist. Not an error
	// on trigger paths; the manual path maps it to a not-found failure.
	NoRecipient
	// NoToken means the user exists but has no registered device token.
	NoToken
	// Failed means the gateway or the user lookup failed; Err carries the cause.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case NoRecipient:
		return "no_recipient"
	case NoToken:
		return "no_token"
	default:
		return "failed"
	}
}

// Result is the explicit outcome of one delivery attempt. No retries happen
// below this point; a Failed result is final.
type Result struct {
	Outcome   Outcome
	MessageID string
	Record    *domain.Notification
	Err       error
}

// Request carries everything needed to deliver one composed notification.
// Urgency and Days are recorded only for expiration alerts.
type Request struct {
	UserID     string
	MedicineID string
	Message    composer.Message
	Category   string
	Urgency    domain.Urgency
	Days       int
}

type Service interface {
	Send(ctx context.Context, req Request) Result
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type notificationLog interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type service struct {
	users userStore
	log   notificationLog
	push  sns.PushSender
}

type ServiceDeps struct {
	UserRepo         userStore
	NotificationRepo notificationLog
	PushSender       sns.PushSender
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users: deps.UserRepo,
		log:   deps.NotificationRepo,
		push:  deps.PushSender,
	}
}

func (s *service) Send(ctx context.Context, req Request) Result {
	u, err := s.users.Get(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			zap.S().Infow("push skipped, user not found",
				"user_id", req.UserID, "medicine_id", req.MedicineID)
			return Result{Outcome: NoRecipient, Err: err}
		}
		zap.S().Errorw("push aborted, user lookup failed",
			"user_id", req.UserID, "medicine_id", req.MedicineID, "err", err)
		return Result{Outcome: Failed, Err: err}
	}
	if !u.HasToken() {
		zap.S().Infow("push skipped, user has no device token",
			"user_id", req.UserID, "medicine_id", req.MedicineID)
		return Result{Outcome: NoToken}
	}

	msgID, err := s.push.Send(ctx, *u.FCMToken, sns.Payload{
		Title: req.Message.Title,
		Body:  req.Message.Body,
		Data:  req.Message.Data,
	})
	if err != nil {
		zap.S().Errorw("push delivery failed",
			"user_id", req.UserID, "medicine_id", req.MedicineID, "err", err)
		return Result{Outcome: Failed, Err: err}
	}

	rec := &domain.Notification{
		NotificationID:      id.New(),
		UserID:              req.UserID,
		MedicineID:          req.MedicineID,
		Time:                time.Now().UTC(),
		Message:             req.Message.Body,
		Status:              domain.StatusSent,
		Category:            req.Category,
		DaysUntilExpiration: req.Days,
	}
	if req.Category == domain.CategoryExpirationAlert {
		rec.Urgency = req.Urgency.String()
	}
	if err := s.log.Put(ctx, rec); err != nil {
		// The push already went out; a lost audit record only weakens the
		// sweep dedup, which tolerates at-least-once.
		zap.S().Errorw("notification record write failed",
			"user_id", req.UserID, "medicine_id", req.MedicineID, "err", err)
	}

	zap.S().Infow("push delivered",
		"user_id", req.UserID, "medicine_id", req.MedicineID,
		"category", req.Category, "sns_message_id", msgID)
	return Result{Outcome: Delivered, MessageID: msgID, Record: rec}
}
