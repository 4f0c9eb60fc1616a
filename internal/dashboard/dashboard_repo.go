package dashboard

import (
	"context"
	"time"

	"go-satpam/internal/report"
	"go-satpam/internal/user"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role string) (int64, error)
	CountShifts(ctx context.Context) (int64, error)
	CountReports(ctx context.Context) (int64, error)
	CountReportsByStatus(ctx context.Context, status string) (int64, error)
	CountReportsSince(ctx context.Context, since time.Time) (int64, error)
	CountReportsByOwner(ctx context.Context, ownerID string) (int64, error)
	CountReportsByOwnerAndStatus(ctx context.Context, ownerID, status string) (int64, error)
	RecentReports(ctx context.Context, ownerID string, limit int) ([]report.AreaReport, error)
	RecentUsers(ctx context.Context, limit int) ([]user.User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&user.User{}).Count(&n).Error
	return n, err
}

func (r *repository) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&user.User{}).
		Where("role = ?", role).
		Count(&n).Error
	return n, err
}

func (r *repository) CountShifts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("shifts").
		Where("deleted_at IS NULL").
		Count(&n).Error
	return n, err
}

func (r *repository) CountReports(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&report.AreaReport{}).Count(&n).Error
	return n, err
}

func (r *repository) CountReportsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&report.AreaReport{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *repository) CountReportsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&report.AreaReport{}).
		Where("reported_at >= ?", since).
		Count(&n).Error
	return n, err
}

func (r *repository) CountReportsByOwner(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&report.AreaReport{}).
		Where("user_id = ?", ownerID).
		Count(&n).Error
	return n, err
}

func (r *repository) CountReportsByOwnerAndStatus(ctx context.Context, ownerID, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&report.AreaReport{}).
		Where("user_id = ? AND status = ?", ownerID, status).
		Count(&n).Error
	return n, err
}

// RecentReports mengambil laporan terbaru; ownerID kosong berarti lintas
// pelapor (untuk admin/superadmin).
func (r *repository) RecentReports(ctx context.Context, ownerID string, limit int) ([]report.AreaReport, error) {
	q := r.db.WithContext(ctx).
		Preload("Reporter").
		Order("reported_at DESC").
		Limit(limit)
	if ownerID != "" {
		q = q.Where("user_id = ?", ownerID)
	}

	var reports []report.AreaReport
	if err := q.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *repository) RecentUsers(ctx context.Context, limit int) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
