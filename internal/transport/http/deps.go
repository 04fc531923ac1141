package http

import (
	"github.com/JuanDluna/biosafe/internal/application/delivery"
	"github.com/JuanDluna/biosafe/internal/application/expiration"
	"github.com/JuanDluna/biosafe/internal/infrastructure/dynamo"
	jwtinfra "github.com/JuanDluna/biosafe/internal/infrastructure/jwt"
)

// Deps holds the wired dependencies for the router. Delivery and the engine
// are built in main so the cron scheduler and the HTTP triggers share them.
type Deps struct {
	NotificationRepo *dynamo.NotificationRepo
	JWTProvider      *jwtinfra.Provider
	Delivery         delivery.Service
	Engine           expiration.Service
}
