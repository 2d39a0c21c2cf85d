package router

import (
	"stay/internal/handlers/availability"
	"stay/internal/handlers/booking"
	"stay/internal/handlers/job"
	"stay/internal/handlers/payment"
	"stay/internal/handlers/room"
	"stay/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

type DomainHandlers struct {
	Room         room.Handler
	Availability availability.Handler
	Booking      booking.Handler
	Payment      payment.Handler
	Job          job.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Auth           middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.App.CORS())
	router.Use(r.App.Tracing)
	router.Use(r.App.RateLimit())

	router.Group(func(secured chi.Router) {
		secured.Use(r.Auth.APIKey)
		secured.Use(r.Auth.Auth)
		secured.Use(r.Auth.RBAC)

		secured.Route("/v1", func(routerGroup chi.Router) {
			r.DomainHandlers.Room.Router(routerGroup)
			r.DomainHandlers.Availability.Router(routerGroup)
			r.DomainHandlers.Booking.Router(routerGroup)
			r.DomainHandlers.Payment.Router(routerGroup)
			r.DomainHandlers.Job.Router(routerGroup)
		})
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, auth middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		Auth:           auth,
	}
}
