package report

import (
	"go-satpam/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	reports := r.Group("/area-reports")
	reports.Use(middleware.AuthMiddleware())
	reports.Use(middleware.ContextLogger(logger))
	{
		reports.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		reports.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetById,
		)

		// Submit: hanya guard; idempotency key melindungi dari double submit
		reports.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireGuard(),
			middleware.Idempotency(rdb),
			handler.Submit,
		)

		reports.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireAdminPrivileges(),
			handler.UpdateStatus,
		)

		reports.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.Delete,
		)
	}
}
