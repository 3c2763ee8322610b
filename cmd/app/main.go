package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wutsk/labreserve/api"
	"github.com/wutsk/labreserve/config"
	"github.com/wutsk/labreserve/internal/bootstrap"
	"github.com/wutsk/labreserve/internal/cache"
	"github.com/wutsk/labreserve/internal/kafka"
	"github.com/wutsk/labreserve/internal/logging"
	"github.com/wutsk/labreserve/internal/power"
	"github.com/wutsk/labreserve/internal/repository"
	"github.com/wutsk/labreserve/internal/scheduler"
	"github.com/wutsk/labreserve/internal/service/catalog"
	"github.com/wutsk/labreserve/internal/service/reservation"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewLogger()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Cache.ScheduleTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.CatalogTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	jobClient := scheduler.NewClient(cfg.Scheduler.BaseURL, time.Duration(cfg.Scheduler.TimeoutSeconds)*time.Second)
	powerClient := power.NewAMTClient(cfg.Power)

	scheduleRepo := repository.NewScheduleRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	reservationService := reservation.NewService(
		scheduleRepo,
		jobClient,
		redisCache,
		producer,
		cfg.Kafka.ReservationTopic,
		logger,
	)
	catalogService := catalog.NewService(catalogRepo, redisCache)

	handlers := bootstrap.Handlers{
		Reservations: api.NewReservationHandler(reservationService),
		Stations:     api.NewStationHandler(reservationService, powerClient, producer, cfg.Kafka.AuditTopic, logger),
		Catalog:      api.NewCatalogHandler(catalogService),
		Actions:      api.NewActionHandler(auditRepo),
	}

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
