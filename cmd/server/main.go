package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"inventra-system/config"
	"inventra-system/internal/database"
	"inventra-system/internal/gateway/handlers"
	"inventra-system/internal/messaging"
	"inventra-system/internal/services/alerts"
	"inventra-system/internal/services/catalog"
	"inventra-system/internal/services/identifier"
	"inventra-system/internal/services/inventory"
	"inventra-system/internal/services/requisition"
	"inventra-system/internal/services/user"
	"inventra-system/internal/utils"
	"inventra-system/pkg/logger"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	cfg := config.LoadConfig()
	utils.SetSecret(cfg.Auth.JWTSecret)

	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		log.Fatal("invalid timezone", zap.String("tz", cfg.Server.Timezone), zap.Error(err))
	}

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient := config.NewRedisClient(cfg.Redis)

	producer := messaging.Producer(messaging.NopProducer{})
	if len(cfg.Kafka.Brokers) > 0 {
		producer = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer producer.Close()

	ids := identifier.NewAllocator(db, loc)

	catalogSvc := catalog.NewService(db, redisClient, logger.Named(log, "catalog"))
	userSvc := user.NewService(db, cfg.Auth.TokenTTL, logger.Named(log, "user"))
	requisitionSvc := requisition.NewService(db, redisClient, ids, logger.Named(log, "requisition"))
	inventorySvc := inventory.NewService(db, redisClient, ids, producer, logger.Named(log, "inventory"))

	scheduler := alerts.NewScheduler(cfg.Alerts, inventorySvc,
		alerts.NewNotifier(cfg.Alerts.WebhookURL), logger.Named(log, "alerts"))
	scheduler.Start()
	defer scheduler.Stop()

	router := setupRouter(
		cfg.Server.RateLimit,
		handlers.NewUserHTTPHandler(userSvc),
		handlers.NewCatalogHTTPHandler(catalogSvc),
		handlers.NewInventoryHTTPHandler(inventorySvc),
		handlers.NewRequisitionHTTPHandler(requisitionSvc),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
