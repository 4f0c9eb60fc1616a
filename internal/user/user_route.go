package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.ContextLogger(logger))
	users.Use(middleware.RequireSuperadmin())
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetById,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			handler.Create,
		)

		users.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)

		users.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			handler.ToggleStatus,
		)

		users.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.Delete,
		)
	}
}
