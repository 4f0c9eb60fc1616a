package dashboard

import (
	"net/http"

	"go-satpam/internal/middleware"
	"go-satpam/internal/shared/apperror"
	"go-satpam/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("dashboard.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) Stats(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apperror.ErrUnauthorized)
		return
	}

	res, err := h.svc.Stats(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apperror.New(
			apperror.CodeInternalError,
			"Internal server error",
			http.StatusInternalServerError,
		))
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}
