//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"huddle/config"
	"huddle/infras/jwt"
	"huddle/infras/otel"
	"huddle/infras/postgres"
	"huddle/infras/redis"
	"huddle/shared/cache"
	"huddle/transport/http"
	"huddle/transport/http/middleware"
	"huddle/transport/http/router"

	authService "huddle/internal/domains/auth/service"
	bookingRepository "huddle/internal/domains/booking/repository"
	bookingService "huddle/internal/domains/booking/service"
	roomRepository "huddle/internal/domains/room/repository"
	roomService "huddle/internal/domains/room/service"
	userRepository "huddle/internal/domains/user/repository"
	authHandler "huddle/internal/handlers/auth"
	bookingHandler "huddle/internal/handlers/booking"
	healthHandler "huddle/internal/handlers/health"
	roomHandler "huddle/internal/handlers/room"
	"huddle/internal/workers/retention"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeRetentionWorker() *retention.Worker {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		redis.New,
		sharedHelpers,
		roomRepository.New,
		bookingDomain,
		retention.New,
	)

	return &retention.Worker{}
}
