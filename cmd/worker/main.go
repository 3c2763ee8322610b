package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/wutsk/labreserve/config"
	"github.com/wutsk/labreserve/internal/domain"
	"github.com/wutsk/labreserve/internal/kafka"
	"github.com/wutsk/labreserve/internal/logging"
	"github.com/wutsk/labreserve/internal/repository"
	"go.uber.org/zap"
)

// auditPayload covers the shared fields of ReservationEvent and ActionEvent.
type auditPayload struct {
	Type        string `json:"type"`
	RequesterID string `json:"requester_id"`
	Action      string `json:"action"`
	StationID   string `json:"station_id"`
}

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

	auditRepo := repository.NewAuditRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)

	for _, topic := range []string{cfg.Kafka.ReservationTopic, cfg.Kafka.AuditTopic} {
		consumer := kafka.NewConsumer(cfg.Kafka, topic)
		defer consumer.Close()

		go func(consumer *kafka.Consumer, topic string) {
			err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
				var event auditPayload
				if err := json.Unmarshal(msg.Value, &event); err != nil {
					logger.Warn("skipping undecodable event", zap.String("topic", topic), zap.Error(err))
					return nil
				}

				action := event.Action
				if action == "" {
					action = event.Type
				}
				entry := &domain.ActionLogEntry{
					RequesterID: event.RequesterID,
					Action:      action,
					StationID:   event.StationID,
				}
				if err := auditRepo.Insert(ctx, entry); err != nil {
					logger.Error("failed to persist audit entry", zap.String("topic", topic), zap.Error(err))
					return err
				}
				return nil
			})
			if err != nil && ctx.Err() == nil {
				logger.Error("consumer stopped", zap.String("topic", topic), zap.Error(err))
			}
		}(consumer, topic)
	}

	sweep := time.Duration(cfg.Worker.RetentionSweepMinutes) * time.Minute
	if sweep <= 0 {
		sweep = time.Hour
	}
	retention := time.Duration(cfg.Worker.RetentionDays) * 24 * time.Hour

	ticker := time.NewTicker(sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().UTC().Add(-retention)
			purged, err := scheduleRepo.PurgeEndedBefore(ctx, cutoff)
			if err != nil {
				logger.Error("retention sweep failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				logger.Info("purged ended bookings", zap.Int64("count", purged))
			}
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		}
	}
}
