package report_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"go-satpam/internal/domain"
	"go-satpam/internal/messaging/kafka"
	"go-satpam/internal/report"
	"go-satpam/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeReportRepository struct {
	withTxFn       func(tx *sql.Tx) report.Repository
	createFn       func(ctx context.Context, r *report.AreaReport) error
	findByIDFn     func(ctx context.Context, id string) (*report.AreaReport, error)
	findPageFn     func(ctx context.Context, f report.ScopedFilters) ([]report.AreaReport, int64, error)
	updateStatusFn func(ctx context.Context, id, status string) error
	deleteFn        func(ctx context.Context, id string) error
	findByOwnerFn   func(ctx context.Context, ownerID string) ([]report.AreaReport, error)
	deleteByOwnerFn func(ctx context.Context, ownerID string) (int64, error)
}

func (f *fakeReportRepository) WithTx(tx *sql.Tx) report.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeReportRepository) Create(ctx context.Context, r *report.AreaReport) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeReportRepository) FindByID(ctx context.Context, id string) (*report.AreaReport, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReportRepository) FindPage(ctx context.Context, filters report.ScopedFilters) ([]report.AreaReport, int64, error) {
	if f.findPageFn != nil {
		return f.findPageFn(ctx, filters)
	}
	return nil, 0, nil
}

func (f *fakeReportRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (f *fakeReportRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeReportRepository) FindByOwner(ctx context.Context, ownerID string) ([]report.AreaReport, error) {
	if f.findByOwnerFn != nil {
		return f.findByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (f *fakeReportRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	if f.deleteByOwnerFn != nil {
		return f.deleteByOwnerFn(ctx, ownerID)
	}
	return 0, nil
}

type fakeBlobStore struct {
	storeFn  func(ctx context.Context, r io.Reader, size int64, originalName, contentType string) (string, error)
	deleteFn func(ctx context.Context, path string) error

	stored  []string
	deleted []string
}

func (f *fakeBlobStore) Store(ctx context.Context, r io.Reader, size int64, originalName, contentType string) (string, error) {
	if f.storeFn != nil {
		return f.storeFn(ctx, r, size, originalName, contentType)
	}
	path := "blobs/" + originalName
	f.stored = append(f.stored, path)
	return path, nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, path string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, path)
	}
	f.deleted = append(f.deleted, path)
	return nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) PurgeSent(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type reportServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service report.Service
	repo    *fakeReportRepository
	blobs   *fakeBlobStore
	outbox  *fakeOutboxRepository
}

func setupReportServiceTest(t *testing.T) *reportServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeReportRepository{}
	blobs := &fakeBlobStore{}
	outbox := &fakeOutboxRepository{}
	svc := report.NewServiceWithOutbox(db, repo, blobs, outbox)

	return &reportServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		blobs:   blobs,
		outbox:  outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func guardActor() domain.Actor {
	return domain.Actor{ID: uuid.New(), Name: "Budi Santoso", Role: domain.RoleGuard}
}

func adminActor() domain.Actor {
	return domain.Actor{ID: uuid.New(), Name: "Admin Satpam", Role: domain.RoleAdmin}
}

func evidence(name, mime string, size int64) report.EvidenceUpload {
	return report.EvidenceUpload{
		Filename:    name,
		Size:        size,
		ContentType: mime,
		Reader:      strings.NewReader("payload"),
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestReportService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success with two attachments", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		actor := guardActor()
		expectTx(t, deps.sqlMock, true)

		req := report.SubmitReportRequest{
			AreaName:    "Gerbang Utama",
			Description: "Pagar rusak",
			Details:     "Engsel pagar sebelah timur lepas",
			Latitude:    floatPtr(-6.2),
			Longitude:   floatPtr(106.8),
		}
		uploads := []report.EvidenceUpload{
			evidence("foto1.jpg", "image/jpeg", 1024),
			evidence("video.mp4", "video/mp4", 2048),
		}

		deps.repo.createFn = func(ctx context.Context, r *report.AreaReport) error {
			assert.Equal(t, actor.ID, r.UserID)
			assert.Equal(t, report.StatusPending, r.Status)
			assert.Len(t, r.Attachments, 2)
			assert.False(t, r.ReportedAt.IsZero())
			return nil
		}

		resp, err := deps.service.Submit(ctx, actor, req, uploads)

		assert.NoError(t, err)
		assert.Equal(t, actor.ID.String(), resp.UserID)
		assert.Equal(t, report.StatusPending, resp.Status)
		assert.Len(t, resp.Attachments, 2)
		assert.Len(t, deps.blobs.stored, 2)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "report.submitted", deps.outbox.created[0].EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative admin cannot submit", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		req := report.SubmitReportRequest{
			AreaName:    "Pos 2",
			Description: "x",
			Details:     "y",
		}

		_, err := deps.service.Submit(ctx, adminActor(), req, nil)

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
		assert.Empty(t, deps.blobs.stored)
	})

	t.Run("negative three attachments rejected", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		req := report.SubmitReportRequest{
			AreaName:    "Pos 2",
			Description: "x",
			Details:     "y",
		}
		uploads := []report.EvidenceUpload{
			evidence("a.jpg", "image/jpeg", 10),
			evidence("b.jpg", "image/jpeg", 10),
			evidence("c.jpg", "image/jpeg", 10),
		}

		_, err := deps.service.Submit(ctx, guardActor(), req, uploads)

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, "attachments", appErr.Field)
		assert.Empty(t, deps.blobs.stored)
	})

	t.Run("negative latitude out of range", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		req := report.SubmitReportRequest{
			AreaName:    "Pos 2",
			Description: "x",
			Details:     "y",
			Latitude:    floatPtr(91),
		}

		_, err := deps.service.Submit(ctx, guardActor(), req, nil)

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, "latitude", appErr.Field)
	})

	t.Run("negative disallowed mime type", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		req := report.SubmitReportRequest{
			AreaName:    "Pos 2",
			Description: "x",
			Details:     "y",
		}
		uploads := []report.EvidenceUpload{
			evidence("doc.pdf", "application/pdf", 10),
		}

		_, err := deps.service.Submit(ctx, guardActor(), req, uploads)

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, "attachments", appErr.Field)
	})

	t.Run("negative oversize attachment", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		req := report.SubmitReportRequest{
			AreaName:    "Pos 2",
			Description: "x",
			Details:     "y",
		}
		uploads := []report.EvidenceUpload{
			evidence("big.mp4", "video/mp4", (10<<20)+1),
		}

		_, err := deps.service.Submit(ctx, guardActor(), req, uploads)

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, "attachments", appErr.Field)
	})

	t.Run("negative blob store failure leaves no record", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		deps.blobs.storeFn = func(ctx context.Context, r io.Reader, size int64, originalName, contentType string) (string, error) {
			return "", errors.New("minio down")
		}
		created := false
		deps.repo.createFn = func(ctx context.Context, r *report.AreaReport) error {
			created = true
			return nil
		}

		req := report.SubmitReportRequest{
			AreaName:    "Pos 2",
			Description: "x",
			Details:     "y",
		}
		uploads := []report.EvidenceUpload{
			evidence("foto.jpg", "image/jpeg", 10),
		}

		_, err := deps.service.Submit(ctx, guardActor(), req, uploads)

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, apperror.CodeStorageError, appErr.Code)
		assert.False(t, created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative persist failure releases uploaded blobs", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, r *report.AreaReport) error {
			return errors.New("insert failed")
		}

		req := report.SubmitReportRequest{
			AreaName:    "Pos 2",
			Description: "x",
			Details:     "y",
		}
		uploads := []report.EvidenceUpload{
			evidence("foto.jpg", "image/jpeg", 10),
		}

		_, err := deps.service.Submit(ctx, guardActor(), req, uploads)

		assert.Error(t, err)
		assert.Equal(t, deps.blobs.stored, deps.blobs.deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestReportService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("guard always scoped to own reports", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		actor := guardActor()
		other := uuid.New().String()

		deps.repo.findPageFn = func(ctx context.Context, f report.ScopedFilters) ([]report.AreaReport, int64, error) {
			assert.Equal(t, actor.ID.String(), f.OwnerID())
			return nil, 0, nil
		}

		// Filter owner milik guard lain harus tertimpa
		_, _, applied, err := deps.service.List(ctx, actor, report.ListFilters{OwnerID: other})

		assert.NoError(t, err)
		assert.Equal(t, actor.ID.String(), applied.OwnerID)
	})

	t.Run("admin owner filter honored", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		owner := uuid.New().String()
		deps.repo.findPageFn = func(ctx context.Context, f report.ScopedFilters) ([]report.AreaReport, int64, error) {
			assert.Equal(t, owner, f.OwnerID())
			assert.Equal(t, report.StatusPending, f.Status())
			return []report.AreaReport{{ID: uuid.New(), UserID: uuid.MustParse(owner), Status: report.StatusPending}}, 1, nil
		}

		resp, total, applied, err := deps.service.List(ctx, adminActor(), report.ListFilters{
			OwnerID: owner,
			Status:  report.StatusPending,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, resp, 1)
		assert.Equal(t, owner, applied.OwnerID)
	})

	t.Run("negative invalid status filter", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		_, _, _, err := deps.service.List(ctx, adminActor(), report.ListFilters{Status: "archived"})

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, "status", appErr.Field)
	})
}

func TestReportService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can read own report", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		actor := guardActor()
		id := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*report.AreaReport, error) {
			return &report.AreaReport{ID: id, UserID: actor.ID, Status: report.StatusPending, ReportedAt: time.Now()}, nil
		}

		resp, err := deps.service.GetByID(ctx, actor, id.String())

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
	})

	t.Run("negative other guard's report is forbidden not hidden", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*report.AreaReport, error) {
			return &report.AreaReport{ID: id, UserID: uuid.New()}, nil
		}

		_, err := deps.service.GetByID(ctx, guardActor(), id.String())

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	})

	t.Run("negative missing report", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*report.AreaReport, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByID(ctx, adminActor(), uuid.New().String())

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	})
}

func TestReportService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("admin can move status freely", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		id := uuid.New()
		owner := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*report.AreaReport, error) {
			return &report.AreaReport{ID: id, UserID: owner, Status: report.StatusCompleted, ReportedAt: time.Now()}, nil
		}
		deps.repo.updateStatusFn = func(ctx context.Context, targetID, status string) error {
			assert.Equal(t, id.String(), targetID)
			assert.Equal(t, report.StatusPending, status)
			return nil
		}

		// completed kembali ke pending itu sah
		resp, err := deps.service.UpdateStatus(ctx, adminActor(), id.String(), report.UpdateStatusRequest{
			Status: report.StatusPending,
		})

		assert.NoError(t, err)
		assert.Equal(t, report.StatusPending, resp.Status)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "report.status_changed", deps.outbox.created[0].EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative guard cannot change status", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateStatus(ctx, guardActor(), uuid.New().String(), report.UpdateStatusRequest{
			Status: report.StatusReviewed,
		})

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	})

	t.Run("negative unknown status", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateStatus(ctx, adminActor(), uuid.New().String(), report.UpdateStatusRequest{
			Status: "archived",
		})

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, "status", appErr.Field)
	})
}

func TestReportService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("record deleted even when blob cleanup fails", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		actor := guardActor()
		id := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*report.AreaReport, error) {
			return &report.AreaReport{
				ID:     id,
				UserID: actor.ID,
				Attachments: report.Attachments{
					{Filename: "a.jpg", Path: "blobs/a.jpg"},
					{Filename: "b.jpg", Path: "blobs/b.jpg"},
				},
			}, nil
		}
		deps.blobs.deleteFn = func(ctx context.Context, path string) error {
			if path == "blobs/a.jpg" {
				return errors.New("object not found")
			}
			return nil
		}
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, targetID string) error {
			deleted = true
			return nil
		}

		res, err := deps.service.Delete(ctx, actor, id.String())

		assert.NoError(t, err)
		assert.True(t, res.RecordDeleted)
		assert.Len(t, res.CleanupErrors, 1)
		assert.Contains(t, res.CleanupErrors[0], "blobs/a.jpg")
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative guard cannot delete other's report", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*report.AreaReport, error) {
			return &report.AreaReport{ID: id, UserID: uuid.New()}, nil
		}

		res, err := deps.service.Delete(ctx, guardActor(), id.String())

		assert.Error(t, err)
		assert.False(t, res.RecordDeleted)
	})
}

func TestReportService_PurgeByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("report rows are removed alongside their blobs", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		ownerID := uuid.New().String()
		deps.repo.findByOwnerFn = func(ctx context.Context, owner string) ([]report.AreaReport, error) {
			assert.Equal(t, ownerID, owner)
			return []report.AreaReport{
				{ID: uuid.New(), Attachments: report.Attachments{{Path: "blobs/x.jpg"}}},
				{ID: uuid.New(), Attachments: report.Attachments{{Path: "blobs/y.jpg"}}},
			}, nil
		}
		rowsDeleted := false
		deps.repo.deleteByOwnerFn = func(ctx context.Context, owner string) (int64, error) {
			assert.Equal(t, ownerID, owner)
			rowsDeleted = true
			return 2, nil
		}

		failures := deps.service.PurgeByOwner(ctx, ownerID)

		assert.Empty(t, failures)
		assert.True(t, rowsDeleted, "report rows must be deleted, not just their blobs")
		assert.ElementsMatch(t, []string{"blobs/x.jpg", "blobs/y.jpg"}, deps.blobs.deleted)
	})

	t.Run("collects blob failures without skipping row delete", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		ownerID := uuid.New().String()
		deps.repo.findByOwnerFn = func(ctx context.Context, owner string) ([]report.AreaReport, error) {
			return []report.AreaReport{
				{Attachments: report.Attachments{{Path: "blobs/x.jpg"}, {Path: "blobs/y.jpg"}}},
			}, nil
		}
		deps.blobs.deleteFn = func(ctx context.Context, path string) error {
			if path == "blobs/y.jpg" {
				return errors.New("gone")
			}
			return nil
		}
		rowsDeleted := false
		deps.repo.deleteByOwnerFn = func(ctx context.Context, owner string) (int64, error) {
			rowsDeleted = true
			return 1, nil
		}

		failures := deps.service.PurgeByOwner(ctx, ownerID)

		assert.Len(t, failures, 1)
		assert.Contains(t, failures[0], "blobs/y.jpg")
		assert.True(t, rowsDeleted)
	})

	t.Run("row delete failure is surfaced", func(t *testing.T) {
		deps := setupReportServiceTest(t)
		defer deps.db.Close()

		ownerID := uuid.New().String()
		deps.repo.findByOwnerFn = func(ctx context.Context, owner string) ([]report.AreaReport, error) {
			return []report.AreaReport{{ID: uuid.New()}}, nil
		}
		deps.repo.deleteByOwnerFn = func(ctx context.Context, owner string) (int64, error) {
			return 0, errors.New("db down")
		}

		failures := deps.service.PurgeByOwner(ctx, ownerID)

		assert.Len(t, failures, 1)
		assert.Contains(t, failures[0], "delete reports")
	})
}
