package app

import (
	"database/sql"
	"os"

	"go-hrdocs/internal/attendance"
	"go-hrdocs/internal/audit"
	"go-hrdocs/internal/auth"
	"go-hrdocs/internal/document"
	"go-hrdocs/internal/employee"
	"go-hrdocs/internal/mailer"
	"go-hrdocs/internal/messaging/kafka"
	"go-hrdocs/internal/notification"
	"go-hrdocs/internal/otp"
	"go-hrdocs/internal/profileupdate"
	"go-hrdocs/internal/rbac"
	"go-hrdocs/internal/shared/counter"
	"go-hrdocs/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	profileUpdateRepo := profileupdate.NewRepository(gormDB)

	// --- Infrastructure ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}
	mail := mailer.New(mailer.ConfigFromEnv())
	store, err := storage.NewDiskStore(os.Getenv("UPLOAD_DIR"))
	if err != nil {
		return err
	}

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	notificationService := notification.NewService(notificationRepo)
	employeeService := employee.NewService(employeeRepo, counterRepo, auditService, rdb)
	authService := auth.NewService(employeeRepo, mail)
	otpService := otp.NewService(employeeRepo, mail, auditService)
	attendanceService := attendance.NewService(attendanceRepo, auditService, mail)
	documentService := document.NewService(
		gormDB, documentRepo, employeeRepo, store,
		otpService, outboxRepo, auditService, notificationService,
	)
	profileUpdateService := profileupdate.NewService(
		gormDB, profileUpdateRepo, employeeRepo,
		outboxRepo, auditService, notificationService,
	)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	auditHandler := audit.NewHandler(auditService)
	authHandler := auth.NewHandler(authService)
	documentHandler := document.NewHandler(documentService)
	employeeHandler := employee.NewHandler(employeeService)
	notificationHandler := notification.NewHandler(notificationService)
	otpHandler := otp.NewHandler(otpService)
	profileUpdateHandler := profileupdate.NewHandler(profileUpdateService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		audit.RegisterRoutes(api, auditHandler, rbacService)
		auth.RegisterRoutes(api, authHandler)
		document.RegisterRoutes(api, documentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		otp.RegisterRoutes(api, otpHandler, rbacService)
		profileupdate.RegisterRoutes(api, profileUpdateHandler, rbacService)
	}

	return nil
}
