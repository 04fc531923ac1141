package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/JuanDluna/biosafe/internal/application/notification"
	"github.com/JuanDluna/biosafe/internal/application/reminder"
	"github.com/JuanDluna/biosafe/internal/config"
	"github.com/JuanDluna/biosafe/internal/transport/http/handler"
	appmiddleware "github.com/JuanDluna/biosafe/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trigger-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = appmiddleware.RejectAll
	}

	// 5 requests/second, burst of 10. A stuck client tapping the reminder
	// button must not flood the push gateway.
	reminderRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	reminderSvc := reminder.NewService(deps.Delivery)
	notifSvc := notification.NewService(deps.NotificationRepo)

	healthH := handler.NewHealthHandler()
	triggerH := handler.NewTriggerHandler(deps.Engine)
	reminderH := handler.NewReminderHandler(reminderSvc)
	notifH := handler.NewNotificationHandler(notifSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		// ── Trigger routes (shared-secret guarded) ───────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.TriggerToken(cfg.TriggerToken))
			r.Post("/triggers/medicine-change", triggerH.MedicineChange)
			r.Post("/triggers/sweep", triggerH.Sweep)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.With(reminderRL.Limit).Post("/reminders/dosage", reminderH.SendDosage)
			r.Get("/notifications", notifH.History)
		})
	})

	return r
}
