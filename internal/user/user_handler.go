package user

import (
	"net/http"
	"strconv"
	"strings"

	"go-satpam/internal/middleware"
	"go-satpam/internal/shared/apperror"
	"go-satpam/internal/shared/contextutil"
	"go-satpam/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, logger: l}
}

func writeError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperror.AppError); ok {
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	c.JSON(http.StatusInternalServerError, apperror.New(
		apperror.CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	))
}

func parseListFilters(c *gin.Context) ListFilters {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	return ListFilters{
		Search: strings.TrimSpace(c.Query("search")),
		Role:   strings.TrimSpace(strings.ToLower(c.Query("role"))),
		Status: strings.TrimSpace(strings.ToLower(c.Query("status"))),
		Page:   page,
	}
}

func (h *Handler) GetAll(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)
	filters := parseListFilters(c)

	resp, total, err := h.svc.List(ctx, actor, filters)
	if err != nil {
		writeError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, filters.Page, response.DefaultPageSize)
	response.Paginated(c, http.StatusOK, resp, meta, filters)
}

func (h *Handler) GetById(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	res, err := h.svc.GetByID(ctx, actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	res, err := h.svc.Create(ctx, actor, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	res, err := h.svc.Update(ctx, actor, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) ToggleStatus(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	var body struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	if err := h.svc.ToggleStatus(ctx, actor, c.Param("id"), *body.IsActive); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	if err := h.svc.Delete(ctx, actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
