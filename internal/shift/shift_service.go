package shift

import (
	"context"
	"errors"
	"time"

	"go-satpam/internal/domain"
	"go-satpam/internal/shared/contextutil"
	shifterrors "go-satpam/internal/shift/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_service.go -destination=mock/shift_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, actor domain.Actor, f ListFilters) ([]ShiftResponse, int64, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (ShiftResponse, error)
	Create(ctx context.Context, actor domain.Actor, req UpsertShiftRequest) (ShiftResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req UpsertShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	return &service{repo: repo, logger: l}
}

// validateWindow menolak shift yang melewati tengah malam: end harus lebih
// besar dari start pada jam 24 jam yang sama.
func validateWindow(startTime, endTime string) error {
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return shifterrors.ErrInvalidStartTime
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return shifterrors.ErrInvalidEndTime
	}
	if !end.After(start) {
		return shifterrors.ErrEndNotAfterStart
	}
	return nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, f ListFilters) ([]ShiftResponse, int64, error) {
	// Semua actor terautentikasi boleh melihat daftar shift
	shifts, total, err := s.repo.FindPage(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]ShiftResponse, len(shifts))
	for i, sh := range shifts {
		resp[i] = mapToResponse(sh)
	}

	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (ShiftResponse, error) {
	sh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}

	return mapToResponse(*sh), nil
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req UpsertShiftRequest) (ShiftResponse, error) {
	if !actor.HasAdminPrivileges() {
		return ShiftResponse{}, shifterrors.ErrManageShiftsForbidden
	}

	l := contextutil.GetLogger(ctx, s.logger)

	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		l.Warn("shift window validation failed",
			zap.String("start_time", req.StartTime),
			zap.String("end_time", req.EndTime),
			zap.Error(err),
		)
		return ShiftResponse{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	sh := &Shift{
		ID:          uuid.New(),
		Name:        req.Name,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
		IsActive:    active,
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		l.Error("failed to create shift", zap.Error(err))
		return ShiftResponse{}, err
	}

	l.Info("shift created", zap.String("shift_id", sh.ID.String()))
	return mapToResponse(*sh), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id string, req UpsertShiftRequest) (ShiftResponse, error) {
	if !actor.HasAdminPrivileges() {
		return ShiftResponse{}, shifterrors.ErrManageShiftsForbidden
	}

	l := contextutil.GetLogger(ctx, s.logger)

	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return ShiftResponse{}, err
	}

	sh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}

	sh.Name = req.Name
	sh.StartTime = req.StartTime
	sh.EndTime = req.EndTime
	sh.Description = req.Description
	if req.IsActive != nil {
		sh.IsActive = *req.IsActive
	} else {
		sh.IsActive = true
	}

	if err := s.repo.Update(ctx, sh); err != nil {
		l.Error("failed to update shift", zap.String("shift_id", id), zap.Error(err))
		return ShiftResponse{}, err
	}

	return mapToResponse(*sh), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.HasAdminPrivileges() {
		return shifterrors.ErrManageShiftsForbidden
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shifterrors.ErrShiftNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func mapToResponse(sh Shift) ShiftResponse {
	return ShiftResponse{
		ID:          sh.ID.String(),
		Name:        sh.Name,
		StartTime:   sh.StartTime,
		EndTime:     sh.EndTime,
		Description: sh.Description,
		IsActive:    sh.IsActive,
		CreatedAt:   sh.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
