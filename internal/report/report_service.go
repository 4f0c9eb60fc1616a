package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-satpam/internal/domain"
	"go-satpam/internal/events"
	"go-satpam/internal/messaging/kafka"
	reporterrors "go-satpam/internal/report/errors"
	"go-satpam/internal/shared/apperror"
	"go-satpam/internal/shared/contextutil"
	"go-satpam/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxAttachments  = 2
	maxEvidenceSize = 10 << 20 // 10 MiB per file
	maxAreaNameLen  = 255
)

// allowedEvidenceTypes adalah whitelist MIME untuk file bukti.
var allowedEvidenceTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"video/mp4":       {},
	"video/quicktime": {},
	"video/x-msvideo": {},
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor domain.Actor, req SubmitReportRequest, uploads []EvidenceUpload) (ReportResponse, error)
	List(ctx context.Context, actor domain.Actor, requested ListFilters) ([]ReportResponse, int64, ListFilters, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (ReportResponse, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id string, req UpdateStatusRequest) (ReportResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) (DeleteResult, error)
	PurgeByOwner(ctx context.Context, ownerID string) []string
}

type service struct {
	db     *sql.DB
	repo   Repository
	blobs  storage.BlobStore
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, blobs storage.BlobStore, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, blobs, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	blobs storage.BlobStore,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{db: db, repo: repo, blobs: blobs, outbox: outboxRepo, logger: l}
}

func (s *service) Submit(ctx context.Context, actor domain.Actor, req SubmitReportRequest, uploads []EvidenceUpload) (ReportResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit report requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.ID.String()),
		zap.String("area_name", req.AreaName),
		zap.Int("attachments", len(uploads)),
	)

	if !actor.IsGuard() {
		return ReportResponse{}, reporterrors.ErrSubmitForbidden
	}
	if err := validateSubmitRequest(req, uploads); err != nil {
		s.logger.Warn("submit report validation failed", zap.String("request_id", rid), zap.Error(err))
		return ReportResponse{}, err
	}

	// Blob dulu, baru row: kalau upload gagal, tidak ada record setengah jadi.
	attachments, err := s.storeEvidence(ctx, uploads)
	if err != nil {
		s.logger.Error("submit report evidence upload failed", zap.String("request_id", rid), zap.Error(err))
		return ReportResponse{}, err
	}

	now := time.Now().UTC()
	r := &AreaReport{
		ID:              uuid.New(),
		UserID:          actor.ID,
		AreaName:        strings.TrimSpace(req.AreaName),
		Description:     strings.TrimSpace(req.Description),
		Details:         strings.TrimSpace(req.Details),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		LocationAddress: req.LocationAddress,
		Attachments:     attachments,
		Status:          StatusPending,
		ReportedAt:      now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit report begin tx failed", zap.String("request_id", rid), zap.Error(err))
		s.releaseBlobs(ctx, attachments)
		return ReportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, r); err != nil {
		s.logger.Error("submit report persist failed", zap.String("request_id", rid), zap.Error(err))
		s.releaseBlobs(ctx, attachments)
		return ReportResponse{}, err
	}

	if s.outbox != nil {
		event := events.ReportSubmittedEvent{
			EventType:  events.EventReportSubmitted,
			RequestID:  rid,
			ReportID:   r.ID.String(),
			UserID:     r.UserID.String(),
			AreaName:   r.AreaName,
			ReportedAt: r.ReportedAt,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			s.releaseBlobs(ctx, attachments)
			return ReportResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "area_report",
			AggregateID:   r.ID.String(),
			EventType:     event.EventType,
			Topic:         events.ReportLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("submit report outbox persist failed",
				zap.String("report_id", r.ID.String()),
				zap.Error(err),
			)
			s.releaseBlobs(ctx, attachments)
			return ReportResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit report commit failed", zap.String("request_id", rid), zap.Error(err))
		s.releaseBlobs(ctx, attachments)
		return ReportResponse{}, err
	}

	s.logger.Info("submit report success",
		zap.String("request_id", rid),
		zap.String("report_id", r.ID.String()),
		zap.String("user_id", r.UserID.String()),
	)
	return mapToResponse(*r), nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, requested ListFilters) ([]ReportResponse, int64, ListFilters, error) {
	scoped, err := BuildScope(actor, requested)
	if err != nil {
		return nil, 0, ListFilters{}, err
	}

	reports, total, err := s.repo.FindPage(ctx, scoped)
	if err != nil {
		s.logger.Error("list reports query failed", zap.Error(err))
		return nil, 0, ListFilters{}, err
	}
	return mapToListResponse(reports), total, scoped.Normalized(), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (ReportResponse, error) {
	r, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return ReportResponse{}, err
	}
	return mapToResponse(*r), nil
}

func (s *service) UpdateStatus(ctx context.Context, actor domain.Actor, id string, req UpdateStatusRequest) (ReportResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update report status requested",
		zap.String("request_id", rid),
		zap.String("report_id", id),
		zap.String("target_status", req.Status),
	)

	if !actor.HasAdminPrivileges() {
		return ReportResponse{}, reporterrors.ErrStatusForbidden
	}
	status, err := ParseStatus(req.Status)
	if err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update report status begin tx failed", zap.Error(err))
		return ReportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	r, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, reporterrors.ErrReportNotFound
		}
		return ReportResponse{}, err
	}

	oldStatus := r.Status
	// Transisi bebas antar tiga status; kolom lain tidak ikut tertulis.
	if err := qtx.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, reporterrors.ErrReportNotFound
		}
		s.logger.Error("update report status persist failed",
			zap.String("report_id", id),
			zap.Error(err),
		)
		return ReportResponse{}, err
	}
	r.Status = status

	if s.outbox != nil && oldStatus != status {
		event := events.ReportStatusChangedEvent{
			EventType:  events.EventReportStatusChanged,
			RequestID:  rid,
			ReportID:   id,
			OwnerID:    r.UserID.String(),
			OldStatus:  oldStatus,
			NewStatus:  status,
			ChangedBy:  actor.ID.String(),
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return ReportResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "area_report",
			AggregateID:   id,
			EventType:     event.EventType,
			Topic:         events.ReportLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("update report status outbox persist failed",
				zap.String("report_id", id),
				zap.Error(err),
			)
			return ReportResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update report status commit failed", zap.String("report_id", id), zap.Error(err))
		return ReportResponse{}, err
	}

	s.logger.Info("update report status success",
		zap.String("report_id", id),
		zap.String("from_status", oldStatus),
		zap.String("to_status", status),
	)
	return mapToResponse(*r), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) (DeleteResult, error) {
	r, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return DeleteResult{}, err
	}

	// Blob dilepas best-effort: kegagalan dicatat tapi tidak menahan
	// penghapusan record.
	var cleanupErrors []string
	for _, att := range r.Attachments {
		if err := s.blobs.Delete(ctx, att.Path); err != nil {
			s.logger.Warn("delete report blob cleanup failed",
				zap.String("report_id", id),
				zap.String("path", att.Path),
				zap.Error(err),
			)
			cleanupErrors = append(cleanupErrors, fmt.Sprintf("%s: %v", att.Path, err))
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeleteResult{CleanupErrors: cleanupErrors}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeleteResult{CleanupErrors: cleanupErrors}, reporterrors.ErrReportNotFound
		}
		s.logger.Error("delete report persist failed", zap.String("report_id", id), zap.Error(err))
		return DeleteResult{CleanupErrors: cleanupErrors}, err
	}
	if err := tx.Commit(); err != nil {
		return DeleteResult{CleanupErrors: cleanupErrors}, err
	}

	s.logger.Info("delete report success",
		zap.String("report_id", id),
		zap.Int("cleanup_errors", len(cleanupErrors)),
	)
	return DeleteResult{RecordDeleted: true, CleanupErrors: cleanupErrors}, nil
}

// PurgeByOwner menghapus semua laporan milik satu user berikut blob buktinya;
// dipanggil sebelum record user dihapus. Penghapusan baris dan pelepasan blob
// selalu berpasangan: laporan tidak boleh tersisa dengan path bukti yang sudah
// tidak ada. Kegagalan per blob dikembalikan sebagai pesan, bukan error,
// supaya penghapusan user tetap jalan.
func (s *service) PurgeByOwner(ctx context.Context, ownerID string) []string {
	reports, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("purge reports lookup failed", zap.String("owner_id", ownerID), zap.Error(err))
		return []string{fmt.Sprintf("lookup reports: %v", err)}
	}

	var failures []string
	for _, r := range reports {
		for _, att := range r.Attachments {
			if err := s.blobs.Delete(ctx, att.Path); err != nil {
				s.logger.Warn("purge report blob failed",
					zap.String("owner_id", ownerID),
					zap.String("path", att.Path),
					zap.Error(err),
				)
				failures = append(failures, fmt.Sprintf("%s: %v", att.Path, err))
			}
		}
	}

	purged, err := s.repo.DeleteByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("purge report rows failed", zap.String("owner_id", ownerID), zap.Error(err))
		failures = append(failures, fmt.Sprintf("delete reports: %v", err))
		return failures
	}

	s.logger.Info("purged reports for owner",
		zap.String("owner_id", ownerID),
		zap.Int64("purged", purged),
		zap.Int("blob_failures", len(failures)),
	)
	return failures
}

func (s *service) findAccessible(ctx context.Context, actor domain.Actor, id string) (*AreaReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, reporterrors.ErrReportNotFound
	}
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reporterrors.ErrReportNotFound
		}
		return nil, err
	}
	// Record yang ada tapi bukan miliknya: forbidden eksplisit, bukan not found.
	if !CanAccess(actor, r) {
		return nil, reporterrors.ErrReportAccessDenied
	}
	return r, nil
}

func (s *service) storeEvidence(ctx context.Context, uploads []EvidenceUpload) (Attachments, error) {
	attachments := make(Attachments, 0, len(uploads))
	for _, up := range uploads {
		path, err := s.blobs.Store(ctx, up.Reader, up.Size, up.Filename, up.ContentType)
		if err != nil {
			s.releaseBlobs(ctx, attachments)
			return nil, reporterrors.ErrEvidenceUploadFailed
		}
		attachments = append(attachments, Attachment{
			Filename: up.Filename,
			Path:     path,
			MimeType: up.ContentType,
			Size:     up.Size,
		})
	}
	return attachments, nil
}

func (s *service) releaseBlobs(ctx context.Context, attachments Attachments) {
	for _, att := range attachments {
		if err := s.blobs.Delete(ctx, att.Path); err != nil {
			s.logger.Warn("rollback blob failed", zap.String("path", att.Path), zap.Error(err))
		}
	}
}

func validateSubmitRequest(req SubmitReportRequest, uploads []EvidenceUpload) error {
	if strings.TrimSpace(req.AreaName) == "" {
		return apperror.RequiredField("area_name")
	}
	if len(strings.TrimSpace(req.AreaName)) > maxAreaNameLen {
		return apperror.NewValidation("area_name", "Area name must be at most 255 characters")
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperror.RequiredField("description")
	}
	if strings.TrimSpace(req.Details) == "" {
		return apperror.RequiredField("details")
	}
	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90) {
		return apperror.NewValidation("latitude", "Latitude must be between -90 and 90")
	}
	if req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180) {
		return apperror.NewValidation("longitude", "Longitude must be between -180 and 180")
	}

	if len(uploads) > maxAttachments {
		return reporterrors.ErrTooManyAttachments
	}
	for _, up := range uploads {
		if _, ok := allowedEvidenceTypes[up.ContentType]; !ok {
			return apperror.NewValidation("attachments", "File type "+up.ContentType+" is not allowed")
		}
		if up.Size > maxEvidenceSize {
			return apperror.NewValidation("attachments", "Each file must be at most 10 MB")
		}
	}
	return nil
}

func mapToResponse(r AreaReport) ReportResponse {
	resp := ReportResponse{
		ID:              r.ID.String(),
		UserID:          r.UserID.String(),
		AreaName:        r.AreaName,
		Description:     r.Description,
		Details:         r.Details,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		LocationAddress: r.LocationAddress,
		Attachments:     make([]AttachmentResponse, 0, len(r.Attachments)),
		Status:          r.Status,
		ReportedAt:      r.ReportedAt.Format(time.RFC3339),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	for _, att := range r.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			Filename: att.Filename,
			Path:     att.Path,
			MimeType: att.MimeType,
			Size:     att.Size,
		})
	}
	if r.Reporter != nil {
		resp.ReporterName = r.Reporter.Name
	}
	return resp
}

func mapToListResponse(reports []AreaReport) []ReportResponse {
	resp := make([]ReportResponse, len(reports))
	for i, r := range reports {
		resp[i] = mapToResponse(r)
	}
	return resp
}
