package app

import (
	"log"
	"os"

	"go-hrdocs/internal/attendance"
	"go-hrdocs/internal/audit"
	"go-hrdocs/internal/document"
	"go-hrdocs/internal/employee"
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/notification"
	"go-hrdocs/internal/profileupdate"
	"go-hrdocs/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	// 1. Setup Infrastructure
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
	log.Println("✅ Database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	log.Println("✅ Redis connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	router.Use(middleware.RequestID())

	// Register Modules & Routes
	return registerModules(router, sqlDB, gormDB, redisClient)
}

// migrate brings the schema up. AutoMigrate covers the gorm entities;
// the counters and outbox_events tables are managed by raw SQL
// repositories and get their DDL here.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&document.Document{},
		&profileupdate.UpdateRequest{},
		&attendance.Record{},
		&notification.Notification{},
		&audit.AuditEntry{},
	); err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS counters (
			counter_type text PRIMARY KEY,
			last_value   bigint NOT NULL DEFAULT 0,
			updated_at   timestamptz NOT NULL DEFAULT now()
		)
	`).Error; err != nil {
		return err
	}

	return db.Exec(`
		CREATE TABLE IF NOT EXISTS outbox_events (
			id             uuid PRIMARY KEY,
			request_id     text,
			aggregate_type text NOT NULL,
			aggregate_id   uuid NOT NULL,
			event_type     text NOT NULL,
			topic          text NOT NULL,
			payload        jsonb NOT NULL,
			status         text NOT NULL DEFAULT 'pending',
			retry_count    int  NOT NULL DEFAULT 0,
			next_retry_at  timestamptz,
			error_message  text,
			processed_at   timestamptz,
			created_at     timestamptz NOT NULL DEFAULT now(),
			updated_at     timestamptz NOT NULL DEFAULT now()
		)
	`).Error
}
