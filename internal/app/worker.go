package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go-hrdocs/internal/attendance"
	"go-hrdocs/internal/audit"
	"go-hrdocs/internal/mailer"
	"go-hrdocs/internal/messaging/kafka"
	"go-hrdocs/internal/messaging/kafka/producer"
	"go-hrdocs/internal/shared/connection"

	"go.uber.org/zap"
)

func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	attendanceRepo := attendance.NewRepository(gormDB)
	auditService := audit.NewService(audit.NewRepository(gormDB))
	mail := mailer.New(mailer.ConfigFromEnv())
	attendanceService := attendance.NewService(attendanceRepo, auditService, mail)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runReminderSweep(ctx, attendanceService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runReminderSweep fires once per calendar day at REMINDER_HOUR local
// time (default 16:00). Rows already stamped are skipped inside the
// service, so a worker restart the same day sends nothing twice.
func runReminderSweep(ctx context.Context, svc attendance.Service, logger *zap.Logger) {
	log := logger.Named("reminder_sweep")

	hour := 16
	if raw := os.Getenv("REMINDER_HOUR"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 && parsed <= 23 {
			hour = parsed
		} else {
			log.Warn("invalid REMINDER_HOUR, using default", zap.String("value", raw))
		}
	}

	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info("reminder sweep stopped")
			return
		case fired := <-timer.C:
			day := time.Date(fired.Year(), fired.Month(), fired.Day(), 0, 0, 0, 0, time.UTC)
			if _, err := svc.SendReminders(ctx, day); err != nil {
				log.Error("reminder sweep failed", zap.Error(err))
			}
		}
	}
}
