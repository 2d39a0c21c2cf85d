//go:build wireinject
// +build wireinject

package di

import (
	"stay/config"
	"stay/infras/jwt"
	"stay/infras/kafka"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/infras/redis"
	"stay/infras/s3"
	"stay/permissions"
	"stay/shared/cache"
	"stay/transport/http"
	"stay/transport/http/middleware"
	"stay/transport/http/router"

	availRepository "stay/internal/domains/availability/repository"
	availService "stay/internal/domains/availability/service"
	bookingRepository "stay/internal/domains/booking/repository"
	bookingService "stay/internal/domains/booking/service"
	notificationService "stay/internal/domains/notification/service"
	paymentService "stay/internal/domains/payment/service"
	pricingRepository "stay/internal/domains/pricing/repository"
	pricingService "stay/internal/domains/pricing/service"
	reservationRepository "stay/internal/domains/reservation/repository"
	reservationService "stay/internal/domains/reservation/service"
	roomRepository "stay/internal/domains/room/repository"
	roomService "stay/internal/domains/room/service"
	schedulerRepository "stay/internal/domains/scheduler/repository"
	schedulerService "stay/internal/domains/scheduler/service"

	availHandler "stay/internal/handlers/availability"
	bookingHandler "stay/internal/handlers/booking"
	jobHandler "stay/internal/handlers/job"
	paymentHandler "stay/internal/handlers/payment"
	roomHandler "stay/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var inventoryDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
	pricingRepository.New,
	pricingService.New,
	availRepository.New,
	availService.New,
	reservationRepository.New,
	reservationService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewLine,
	bookingService.New,
	paymentService.New,
	notificationService.New,
)

var schedulerDomain = wire.NewSet(
	schedulerRepository.New,
	schedulerService.New,
	jobHandler.NewWorker,
)

var domains = wire.NewSet(
	inventoryDomain,
	bookingDomain,
	schedulerDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	availHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	jobHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
