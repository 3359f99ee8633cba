package app

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"go-silpa/internal/attachment"
	"go-silpa/internal/auth"
	"go-silpa/internal/messaging/kafka"
	"go-silpa/internal/notification"
	"go-silpa/internal/permit"
	"go-silpa/internal/rbac"
	"go-silpa/internal/rbac/infra"
	"go-silpa/internal/shared/counter"
	"go-silpa/internal/statistics"
	"go-silpa/internal/student"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	studentRepo := student.NewRepository(gormDB)
	permitRepo := permit.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	statisticsRepo := statistics.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Object storage ---
	store, err := attachment.NewS3Store(ctx, os.Getenv("S3_BUCKET"), os.Getenv("AWS_REGION"))
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, studentRepo)
	studentService := student.NewService(db, studentRepo)
	statisticsService := statistics.NewService(statisticsRepo, rdb)
	permitService := permit.NewService(db, permitRepo, outboxRepo, counterRepo, store, statisticsService)
	notificationService := notification.NewService(notificationRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	studentHandler := student.NewHandler(studentService)
	permitHandler := permit.NewHandlerWithRedis(permitService, rdb)
	notificationHandler := notification.NewHandler(notificationService)
	statisticsHandler := statistics.NewHandler(statisticsService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		student.RegisterRoutes(api, studentHandler, rbacService)
		permit.RegisterRoutes(api, permitHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler)
		statistics.RegisterRoutes(api, statisticsHandler, rbacService)
	}

	return nil
}
