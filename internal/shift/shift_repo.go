package shift

import (
	"context"

	"go-satpam/internal/shared/response"

	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, s *Shift) error
	FindByID(ctx context.Context, id string) (*Shift, error)
	FindPage(ctx context.Context, f ListFilters) ([]Shift, int64, error)
	Update(ctx context.Context, s *Shift) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Shift, error) {
	var s Shift
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindPage(ctx context.Context, f ListFilters) ([]Shift, int64, error) {
	q := r.db.WithContext(ctx).Model(&Shift{})

	if f.Search != "" {
		q = q.Where("name ILIKE ?", "%"+f.Search+"%")
	}
	switch f.Status {
	case "active":
		q = q.Where("is_active = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}

	var shifts []Shift
	err := q.Order("created_at DESC").
		Offset((page - 1) * response.DefaultPageSize).
		Limit(response.DefaultPageSize).
		Find(&shifts).Error

	return shifts, total, err
}

func (r *repository) Update(ctx context.Context, s *Shift) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Shift{}, "id = ?", id).Error
}
