package user

import (
	"context"

	"go-satpam/internal/domain"
	"go-satpam/internal/shared/contextutil"
	usererrors "go-satpam/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock

// Service adalah operasi manajemen personel. Semua operasi eksklusif
// superadmin; role lain ditolak dengan FORBIDDEN, bukan hasil kosong.
type Service interface {
	List(ctx context.Context, actor domain.Actor, f ListFilters) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (UserResponse, error)
	Create(ctx context.Context, actor domain.Actor, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req UpdateUserRequest) (UserResponse, error)
	ToggleStatus(ctx context.Context, actor domain.Actor, id string, isActive bool) error
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// ReportPurger menghapus laporan-laporan seorang user berikut blob buktinya
// sebelum record user dihapus. Cascade ini dijalankan di level service karena
// penghapusan user adalah soft delete; tidak ada FK yang bisa ikut menghapus.
type ReportPurger interface {
	PurgeByOwner(ctx context.Context, ownerID string) []string
}

type service struct {
	repo    Repository
	reports ReportPurger
	logger  *zap.Logger
}

func NewService(repo Repository, reports ReportPurger, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, reports: reports, logger: l}
}

func (s *service) List(ctx context.Context, actor domain.Actor, f ListFilters) ([]UserResponse, int64, error) {
	if !actor.IsSuperadmin() {
		return nil, 0, usererrors.ErrListUsersForbidden
	}

	users, total, err := s.repo.FindPage(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}

	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (UserResponse, error) {
	if !actor.IsSuperadmin() {
		return UserResponse{}, usererrors.ErrListUsersForbidden
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, MapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateUserRequest) (UserResponse, error) {
	if !actor.IsSuperadmin() {
		return UserResponse{}, usererrors.ErrManageUsersForbidden
	}

	l := contextutil.GetLogger(ctx, s.logger)
	l.Info("creating user",
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	if _, err := domain.ParseRole(req.Role); err != nil {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	u := &User{
		ID:       uuid.New(),
		Name:     req.Name,
		NIK:      req.NIK,
		NIP:      req.NIP,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		IsActive: active,
		Password: string(hashed),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.Error(err))
		return UserResponse{}, MapRepositoryError(err)
	}

	l.Info("user created", zap.String("user_id", u.ID.String()))
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id string, req UpdateUserRequest) (UserResponse, error) {
	if !actor.IsSuperadmin() {
		return UserResponse{}, usererrors.ErrManageUsersForbidden
	}

	l := contextutil.GetLogger(ctx, s.logger)

	if _, err := domain.ParseRole(req.Role); err != nil {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, MapRepositoryError(err)
	}

	u.Name = req.Name
	u.NIK = req.NIK
	u.NIP = req.NIP
	u.Email = req.Email
	u.Phone = req.Phone
	u.Role = req.Role
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserResponse{}, err
		}
		u.Password = string(hashed)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, MapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, actor domain.Actor, id string, isActive bool) error {
	if !actor.IsSuperadmin() {
		return usererrors.ErrManageUsersForbidden
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return MapRepositoryError(err)
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		return MapRepositoryError(err)
	}

	return nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsSuperadmin() {
		return usererrors.ErrManageUsersForbidden
	}

	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return MapRepositoryError(err)
	}

	// Laporan user dihapus dulu (baris + blob bukti) sebelum user-nya; tanpa
	// ini laporan yatim tetap muncul di listing admin dengan path bukti mati.
	if s.reports != nil {
		if failures := s.reports.PurgeByOwner(ctx, u.ID.String()); len(failures) > 0 {
			l.Warn("some report cleanup steps failed",
				zap.String("user_id", id),
				zap.Strings("failures", failures),
			)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		l.Error("failed to delete user", zap.String("user_id", id), zap.Error(err))
		return MapRepositoryError(err)
	}

	l.Info("user deleted", zap.String("user_id", id))
	return nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		NIK:       u.NIK,
		NIP:       u.NIP,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
