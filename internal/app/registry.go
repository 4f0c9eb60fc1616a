package app

import (
	"database/sql"

	"go-satpam/internal/auth"
	"go-satpam/internal/dashboard"
	"go-satpam/internal/messaging/kafka"
	"go-satpam/internal/report"
	"go-satpam/internal/shift"
	"go-satpam/internal/storage"
	"go-satpam/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	blobs storage.BlobStore,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(userRepo, logger)
	shiftService := shift.NewService(shiftRepo, logger)
	reportService := report.NewServiceWithOutbox(db, reportRepo, blobs, outboxRepo, logger)
	// Sebelum user dihapus, laporan miliknya (baris + blob bukti) di-purge
	// oleh report service
	userService := user.NewService(userRepo, reportService, logger)
	dashboardService := dashboard.NewService(dashboardRepo, rdb, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService, logger)
	shiftHandler := shift.NewHandler(shiftService, logger)
	reportHandler := report.NewHandlerWithRedis(reportService, rdb, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, logger)
		shift.RegisterRoutes(api, shiftHandler, logger)
		report.RegisterRoutes(api, reportHandler, rdb, logger)
		dashboard.RegisterRoutes(api, dashboardHandler)
	}

	return nil
}
