package report

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-satpam/internal/middleware"
	"go-satpam/internal/shared/apperror"
	"go-satpam/internal/shared/contextutil"
	"go-satpam/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	svc    Service
	rdb    *redis.Client
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{svc: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
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
		OwnerID:   strings.TrimSpace(c.Query("user_id")),
		StartDate: strings.TrimSpace(c.Query("start_date")),
		EndDate:   strings.TrimSpace(c.Query("end_date")),
		Status:    strings.TrimSpace(strings.ToLower(c.Query("status"))),
		Search:    strings.TrimSpace(c.Query("search")),
		Page:      page,
	}
}

func (h *Handler) Submit(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	// Lock dilepas begitu request selesai supaya retry berikutnya langsung
	// kena cache, bukan menunggu lock expire.
	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	var req SubmitReportRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	var uploads []EvidenceUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["attachments"] {
			f, err := fh.Open()
			if err != nil {
				writeError(c, apperror.NewValidation("attachments", "Unable to read uploaded file "+fh.Filename))
				return
			}
			defer f.Close()
			uploads = append(uploads, EvidenceUpload{
				Filename:    fh.Filename,
				Size:        fh.Size,
				ContentType: fh.Header.Get("Content-Type"),
				Reader:      f,
			})
		}
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	res, err := h.svc.Submit(ctx, actor, req, uploads)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(res); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, idempotencyCacheTTL).Err()
			}
		}
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetAll(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)
	filters := parseListFilters(c)

	resp, total, applied, err := h.svc.List(ctx, actor, filters)
	if err != nil {
		writeError(c, err)
		return
	}

	// Filter yang di-echo adalah filter EFEKTIF setelah scoping, bukan yang
	// diminta client.
	meta := response.NewPaginationMeta(total, applied.Page, response.DefaultPageSize)
	response.Paginated(c, http.StatusOK, resp, meta, applied)
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

func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	res, err := h.svc.UpdateStatus(ctx, actor, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	res, err := h.svc.Delete(ctx, actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
