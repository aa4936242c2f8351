package main // Entry point package

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Santos-dev-tech/beauty-express/internal/booking"
	"github.com/Santos-dev-tech/beauty-express/internal/config"
	"github.com/Santos-dev-tech/beauty-express/internal/database"
	"github.com/Santos-dev-tech/beauty-express/internal/handler"
	"github.com/Santos-dev-tech/beauty-express/internal/middleware"
	"github.com/Santos-dev-tech/beauty-express/internal/notifier"
	"github.com/Santos-dev-tech/beauty-express/internal/queue"
	"github.com/Santos-dev-tech/beauty-express/internal/repository"
	"github.com/Santos-dev-tech/beauty-express/internal/router"
)

func main() {
	// .env is a local-development convenience; in production the
	// variables come from the real environment.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and the
	// response cache without affecting the rest of the service.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	services := repository.NewServiceRepo(db)
	bookings := repository.NewBookingRepo(db)
	notifications := repository.NewNotificationRepo(db)
	messages := repository.NewMessageRepo(db)

	sink := notifier.New(notifications, log)
	manager := booking.NewManager(bookings, users, services, sink, log)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	bookingH := handler.NewBookingHandler(manager)
	serviceH := handler.NewServiceHandler(services)
	notificationH := handler.NewNotificationHandler(notifications)
	messageH := handler.NewMessageHandler(messages, users, sink, log)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, serviceH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterClient(e, bookingH, cfg.JWTSecret)
	router.RegisterStaff(e, bookingH, cfg.JWTSecret)
	router.RegisterAdmin(e, bookingH, serviceH, cfg.JWTSecret)
	router.RegisterShared(e, bookingH, notificationH, messageH, cfg.JWTSecret)

	// The consumer drains the notification queue into logs/ and
	// reconnects on broker failure. It never takes the API down.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Warn().Err(err).Msg("notification consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
