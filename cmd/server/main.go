package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/ceylonscape/tour-backoffice/internal/config"
	"github.com/ceylonscape/tour-backoffice/internal/database"
	"github.com/ceylonscape/tour-backoffice/internal/handler"
	"github.com/ceylonscape/tour-backoffice/internal/queue"
	"github.com/ceylonscape/tour-backoffice/internal/repository"
	"github.com/ceylonscape/tour-backoffice/internal/router"
	"github.com/ceylonscape/tour-backoffice/internal/service"
)

func main() {
	_ = godotenv.Load() // Missing .env is fine in production

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// One adapter per public form collection. Registration order is the
	// tie-break order inside the merged timeline.
	registry := service.NewAdapterRegistry(
		repository.NewDayTourRepo(db),
		repository.NewRoundTourRepo(db),
		repository.NewGenericTourRepo(db),
		repository.NewEventTourRepo(db),
		repository.NewTaxiRepo(db),
	)

	// Audit eventing is optional. Without a broker URL the services skip
	// publishing and the consumer never starts.
	var statusEvents *service.Publisher
	transitions := service.NewTransitionService(registry, nil)
	notifications := service.NewNotificationService(repository.NewNotificationRepo(db), nil)
	if cfg.AMQPURL != "" {
		statusEvents = service.NewPublisher(cfg.AMQPURL)
		transitions = service.NewTransitionService(registry, statusEvents)
		notifications = service.NewNotificationService(repository.NewNotificationRepo(db), statusEvents)
		go queue.StartAuditConsumer(cfg.AMQPURL)
	}

	guard := service.NewSessionGuard(nil) // Nobody is logged in at boot
	reconciler := service.NewReconciler(registry)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens, guard)
	bookingH := handler.NewBookingHandler(reconciler, transitions, registry)
	notificationH := handler.NewNotificationHandler(notifications)

	rdb := config.NewRedisClient() // nil when Redis is unreachable; middlewares degrade

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, bookingH)
	router.RegisterAuth(e, authH, cfg.JWTSecret, guard)
	router.RegisterBackOffice(e, router.BackOfficeDeps{
		Bookings:      bookingH,
		Notifications: notificationH,
		JWTSecret:     cfg.JWTSecret,
		Guard:         guard,
		Redis:         rdb,
		Cache:         config.LoadCacheConfig(),
		RateLimit:     config.LoadRateLimitConfig(),
	})

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
