package dashboard

import (
	"go-satpam/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	dash := r.Group("/dashboard")
	dash.Use(middleware.AuthMiddleware())
	{
		dash.GET("/stats", middleware.RateLimitByUser(2, 5), handler.Stats)
	}
}
