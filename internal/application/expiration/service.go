package expiration

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JuanDluna/biosafe/internal/application/composer"
	"github.com/JuanDluna/biosafe/internal/application/delivery"
	"github.com/JuanDluna/biosafe/internal/domain"
	"go.uber.org/zap"
)

// ChangeOutcome summarises what the engine did with one change event.
// Trigger adapters report it instead of an error: a delivery problem must
// never fail the event processing that invoked us.
type ChangeOutcome string

const (
	OutcomeNotified        ChangeOutcome = "notified"
	OutcomeNoDecision      ChangeOutcome = "no_decision"
	OutcomeDeleted         ChangeOutcome = "deleted"
	OutcomeAlreadyNotified ChangeOutcome = "already_notified"
	OutcomeNoRecipient     ChangeOutcome = "no_recipient"
	OutcomeDeliveryFailed  ChangeOutcome = "delivery_failed"
)

// SweepReport is the summary of one sweep run. Failed counts deliveries that
// errored; they are logged and abandoned, never retried.
type SweepReport struct {
	Scanned         int   `json:"scanned"`
	Notified        int64 `json:"notified"`
	Skipped         int64 `json:"skipped"`
	AlreadyNotified int64 `json:"already_notified"`
	Failed          int64 `json:"failed"`
}

type Service interface {
	// HandleChange processes one write to a medicine record.
	HandleChange(ctx context.Context, change domain.MedicineChange) ChangeOutcome
	// RunSweep queries medicines expiring within the window and dispatches
	// alerts for those within seven days, deduplicated against the log.
	RunSweep(ctx context.Context) (SweepReport, error)
}

type medicineStore interface {
	ExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Medicine, error)
}

type alertLog interface {
	// LatestAlert returns the newest expiration_alert record for the
	// medicine, or nil when none exists.
	LatestAlert(ctx context.Context, medicineID string) (*domain.Notification, error)
}

type service struct {
	medicines medicineStore
	alerts    alertLog
	delivery  delivery.Service
	window    time.Duration
	now       func() time.Time
}

type ServiceDeps struct {
	MedicineRepo     medicineStore
	NotificationRepo alertLog
	Delivery         delivery.Service
	// SweepWindowDays bounds the sweep query; zero falls back to 30.
	SweepWindowDays int
	// Now overrides the clock in tests.
	Now func() time.Time
}

func NewService(deps ServiceDeps) Service {
	windowDays := deps.SweepWindowDays
	if windowDays <= 0 {
		windowDays = 30
	}
	nowFn := deps.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &service{
		medicines: deps.MedicineRepo,
		alerts:    deps.NotificationRepo,
		delivery:  deps.Delivery,
		window:    time.Duration(windowDays) * 24 * time.Hour,
		now:       nowFn,
	}
}

func (s *service) HandleChange(ctx context.Context, change domain.MedicineChange) ChangeOutcome {
	if change.Kind == domain.ChangeDeleted {
		return OutcomeDeleted
	}
	d := DecideOnChange(change, s.now())
	if d == nil {
		return OutcomeNoDecision
	}
	// No log dedup here: a change decision is by definition new information,
	// and an expiration correction must notify even within an unchanged tier.
	outcome := s.dispatch(ctx, d, false)
	zap.S().Infow("medicine change processed",
		"kind", change.Kind.String(), "medicine_id", d.MedicineID,
		"urgency", d.Urgency.String(), "outcome", outcome)
	return outcome
}

func (s *service) RunSweep(ctx context.Context) (SweepReport, error) {
	now := s.now()
	medicines, err := s.medicines.ExpiringBetween(ctx, now, now.Add(s.window))
	if err != nil {
		zap.S().Errorw("sweep query failed", "err", err)
		return SweepReport{}, err
	}

	var (
		wg       sync.WaitGroup
		notified atomic.Int64
		skipped  atomic.Int64
		deduped  atomic.Int64
		failed   atomic.Int64
	)
	for _, m := range medicines {
		d := DecideOnSweep(m, now)
		if d == nil {
			skipped.Add(1)
			continue
		}
		wg.Add(1)
		go func(d *Decision) {
			defer wg.Done()
			switch s.dispatch(ctx, d, true) {
			case OutcomeNotified:
				notified.Add(1)
			case OutcomeAlreadyNotified:
				deduped.Add(1)
			case OutcomeDeliveryFailed:
				failed.Add(1)
			default:
				skipped.Add(1)
			}
		}(d)
	}
	wg.Wait()

	report := SweepReport{
		Scanned:         len(medicines),
		Notified:        notified.Load(),
		Skipped:         skipped.Load(),
		AlreadyNotified: deduped.Load(),
		Failed:          failed.Load(),
	}
	zap.S().Infow("sweep completed",
		"scanned", report.Scanned, "notified", report.Notified,
		"skipped", report.Skipped, "already_notified", report.AlreadyNotified,
		"failed", report.Failed)
	return report, nil
}

// dispatch runs the shared back half of both trigger paths: optional dedup
// against the notification log, compose, deliver.
func (s *service) dispatch(ctx context.Context, d *Decision, dedup bool) ChangeOutcome {
	if dedup && s.alreadyNotified(ctx, d) {
		return OutcomeAlreadyNotified
	}
	msg := composer.Expiration(d.Urgency, d.Days, d.MedicineID, d.Name)
	res := s.delivery.Send(ctx, delivery.Request{
		UserID:     d.UserID,
		MedicineID: d.MedicineID,
		Message:    msg,
		Category:   domain.CategoryExpirationAlert,
		Urgency:    d.Urgency,
		Days:       d.Days,
	})
	switch res.Outcome {
	case delivery.Delivered:
		return OutcomeNotified
	case delivery.NoRecipient, delivery.NoToken:
		return OutcomeNoRecipient
	default:
		return OutcomeDeliveryFailed
	}
}

// alreadyNotified enforces at most one delivered alert per (medicine, tier).
// A tier escalation or an expiration edit re-arms the alert; a log lookup
// failure fails open, since a duplicate beats a missed alert.
func (s *service) alreadyNotified(ctx context.Context, d *Decision) bool {
	last, err := s.alerts.LatestAlert(ctx, d.MedicineID)
	if err != nil {
		zap.S().Warnw("alert dedup lookup failed, sending anyway",
			"medicine_id", d.MedicineID, "err", err)
		return false
	}
	return last != nil && last.Urgency == d.Urgency.String()
}
