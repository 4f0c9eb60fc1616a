package user_test

import (
	"context"
	"testing"

	"go-satpam/internal/domain"
	"go-satpam/internal/shared/apperror"
	"go-satpam/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn      func(ctx context.Context, u *user.User) error
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
	findPageFn    func(ctx context.Context, f user.ListFilters) ([]user.User, int64, error)
	updateFn      func(ctx context.Context, u *user.User) error
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindPage(ctx context.Context, filters user.ListFilters) ([]user.User, int64, error) {
	if f.findPageFn != nil {
		return f.findPageFn(ctx, filters)
	}
	return nil, 0, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeReportPurger struct {
	purgeFn func(ctx context.Context, ownerID string) []string
}

func (f *fakeReportPurger) PurgeByOwner(ctx context.Context, ownerID string) []string {
	if f.purgeFn != nil {
		return f.purgeFn(ctx, ownerID)
	}
	return nil
}

func superadminActor() domain.Actor {
	return domain.Actor{ID: uuid.New(), Name: "Super Admin", Role: domain.RoleSuperadmin}
}

func adminActor() domain.Actor {
	return domain.Actor{ID: uuid.New(), Name: "Admin Satpam", Role: domain.RoleAdmin}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success password hashed and active by default", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := user.NewService(repo, nil)

		repo.createFn = func(ctx context.Context, u *user.User) error {
			assert.Equal(t, "user", u.Role)
			assert.True(t, u.IsActive)
			assert.NotEqual(t, "rahasia-kuat", u.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("rahasia-kuat")))
			return nil
		}

		resp, err := svc.Create(ctx, superadminActor(), user.CreateUserRequest{
			Name:     "Budi Santoso",
			NIK:      "1234567890123456",
			NIP:      "GRD-001",
			Email:    "budi@example.com",
			Role:     "user",
			Password: "rahasia-kuat",
		})

		assert.NoError(t, err)
		assert.Equal(t, "budi@example.com", resp.Email)
		assert.True(t, resp.IsActive)
	})

	t.Run("negative admin cannot manage users", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := user.NewService(repo, nil)

		_, err := svc.Create(ctx, adminActor(), user.CreateUserRequest{
			Name:     "X",
			NIK:      "1234567890123456",
			NIP:      "GRD-009",
			Email:    "x@example.com",
			Role:     "user",
			Password: "password123",
		})

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	})

	t.Run("negative duplicate nik maps to field conflict", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := user.NewService(repo, nil)

		repo.createFn = func(ctx context.Context, u *user.User) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_nik"}
		}

		_, err := svc.Create(ctx, superadminActor(), user.CreateUserRequest{
			Name:     "Budi Santoso",
			NIK:      "1234567890123456",
			NIP:      "GRD-001",
			Email:    "budi@example.com",
			Role:     "user",
			Password: "rahasia-kuat",
		})

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, apperror.CodeConflict, appErr.Code)
		assert.Equal(t, "nik", appErr.Field)
	})

	t.Run("negative unknown role", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := user.NewService(repo, nil)

		_, err := svc.Create(ctx, superadminActor(), user.CreateUserRequest{
			Name:     "X",
			NIK:      "1234567890123456",
			NIP:      "GRD-010",
			Email:    "x@example.com",
			Role:     "manager",
			Password: "password123",
		})

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, "role", appErr.Field)
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("success superadmin", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := user.NewService(repo, nil)

		repo.findPageFn = func(ctx context.Context, f user.ListFilters) ([]user.User, int64, error) {
			assert.Equal(t, "budi", f.Search)
			return []user.User{{ID: uuid.New(), Name: "Budi Santoso", Role: "user", IsActive: true}}, 1, nil
		}

		resp, total, err := svc.List(ctx, superadminActor(), user.ListFilters{Search: "budi", Page: 1})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, resp, 1)
	})

	t.Run("negative admin forbidden", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := user.NewService(repo, nil)

		_, _, err := svc.List(ctx, adminActor(), user.ListFilters{Page: 1})

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	})
}

func TestUserService_ToggleStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("deactivate persists flag", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := user.NewService(repo, nil)

		repo.findByIDFn = func(ctx context.Context, targetID string) (*user.User, error) {
			return &user.User{ID: id, IsActive: true}, nil
		}
		repo.updateFn = func(ctx context.Context, u *user.User) error {
			assert.False(t, u.IsActive)
			return nil
		}

		err := svc.ToggleStatus(ctx, superadminActor(), id.String(), false)

		assert.NoError(t, err)
	})

	t.Run("negative missing user", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := user.NewService(repo, nil)

		err := svc.ToggleStatus(ctx, superadminActor(), id.String(), true)

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("reports purged before user row delete", func(t *testing.T) {
		repo := &fakeUserRepository{}
		purged := false
		deleted := false

		purger := &fakeReportPurger{
			purgeFn: func(ctx context.Context, ownerID string) []string {
				assert.Equal(t, id.String(), ownerID)
				assert.False(t, deleted, "reports must be purged before the user row goes away")
				purged = true
				return nil
			},
		}
		svc := user.NewService(repo, purger)

		repo.findByIDFn = func(ctx context.Context, targetID string) (*user.User, error) {
			return &user.User{ID: id}, nil
		}
		repo.deleteFn = func(ctx context.Context, targetID string) error {
			deleted = true
			return nil
		}

		err := svc.Delete(ctx, superadminActor(), id.String())

		assert.NoError(t, err)
		assert.True(t, purged)
		assert.True(t, deleted)
	})

	t.Run("purge failures do not block delete", func(t *testing.T) {
		repo := &fakeUserRepository{}
		purger := &fakeReportPurger{
			purgeFn: func(ctx context.Context, ownerID string) []string {
				return []string{"blobs/a.jpg: gone"}
			},
		}
		svc := user.NewService(repo, purger)

		repo.findByIDFn = func(ctx context.Context, targetID string) (*user.User, error) {
			return &user.User{ID: id}, nil
		}
		deleted := false
		repo.deleteFn = func(ctx context.Context, targetID string) error {
			deleted = true
			return nil
		}

		err := svc.Delete(ctx, superadminActor(), id.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("negative admin forbidden", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := user.NewService(repo, nil)

		err := svc.Delete(ctx, adminActor(), id.String())

		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	})
}
