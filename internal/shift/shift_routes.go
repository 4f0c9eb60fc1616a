package shift

import (
	"go-satpam/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	shifts := r.Group("/shifts")
	shifts.Use(middleware.AuthMiddleware())
	shifts.Use(middleware.ContextLogger(logger))
	{
		// Baca: semua actor terautentikasi
		shifts.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		shifts.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetById,
		)

		// Tulis: admin dan superadmin
		shifts.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireAdminPrivileges(),
			handler.Create,
		)

		shifts.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireAdminPrivileges(),
			handler.Update,
		)

		shifts.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireAdminPrivileges(),
			handler.Delete,
		)
	}
}
