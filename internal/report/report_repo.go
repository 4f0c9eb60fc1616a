package report

import (
	"context"
	"database/sql"
	"time"

	"go-satpam/internal/shared/response"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *AreaReport) error
	FindByID(ctx context.Context, id string) (*AreaReport, error)
	FindPage(ctx context.Context, f ScopedFilters) ([]AreaReport, int64, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
	FindByOwner(ctx context.Context, ownerID string) ([]AreaReport, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, report *AreaReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*AreaReport, error) {
	var report AreaReport
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("id = ?", id).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repository) FindPage(ctx context.Context, f ScopedFilters) ([]AreaReport, int64, error) {
	query := r.db.WithContext(ctx).Model(&AreaReport{})

	if owner := f.OwnerID(); owner != "" {
		query = query.Where("user_id = ?", owner)
	}
	if status := f.Status(); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := f.Search(); search != "" {
		query = query.Where("area_name ILIKE ?", "%"+search+"%")
	}
	if f.start != nil {
		query = query.Where("reported_at >= ?", *f.start)
	}
	if f.end != nil {
		// batas akhir inklusif sampai akhir hari
		query = query.Where("reported_at < ?", f.end.Add(24*time.Hour))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []AreaReport
	offset := (f.Page() - 1) * response.DefaultPageSize
	err := query.
		Preload("Reporter").
		Order("reported_at DESC").
		Offset(offset).
		Limit(response.DefaultPageSize).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status string) error {
	result := r.db.WithContext(ctx).
		Model(&AreaReport{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AreaReport{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByOwner menghapus semua laporan milik satu user; dipakai saat user
// dihapus agar tidak ada laporan yatim yang masih muncul di listing admin.
func (r *repository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Delete(&AreaReport{})
	return result.RowsAffected, result.Error
}

func (r *repository) FindByOwner(ctx context.Context, ownerID string) ([]AreaReport, error) {
	var reports []AreaReport
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
