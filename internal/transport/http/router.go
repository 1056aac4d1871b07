package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-room-notify/internal/application/device"
	"github.com/go-room-notify/internal/application/notification"
	"github.com/go-room-notify/internal/config"
	"github.com/go-room-notify/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-room-notify/internal/infrastructure/jwt"
	"github.com/go-room-notify/internal/transport/http/handler"
	appmiddleware "github.com/go-room-notify/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds the infrastructure dependencies for the client API router.
type Deps struct {
	DeviceRepo       *dynamo.DeviceRepo
	NotificationRepo *dynamo.NotificationRepo
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds the client-facing API: health check, notification
// inbox, and push token registration. Everything except health requires a
// verified bearer token.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10. Token registration is cheap to spam.
	registerRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	deviceSvc := device.NewService(deps.DeviceRepo)
	notifSvc := notification.NewService(deps.NotificationRepo)

	healthH := handler.NewHealthHandler()
	deviceH := handler.NewDeviceHandler(deviceSvc)
	notifH := handler.NewNotificationHandler(notifSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/notifications", notifH.ListUnread)
			r.Put("/notifications/{id}", notifH.MarkAsRead)
			r.Get("/devices", deviceH.List)
			r.With(registerRL.Limit).Post("/devices", deviceH.Register)
			r.Delete("/devices/{id}", deviceH.Delete)
		})
	})

	return r
}
