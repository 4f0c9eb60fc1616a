package auth_test

import (
	"context"
	"testing"

	"go-satpam/internal/auth"
	autherrors "go-satpam/internal/auth/errors"
	"go-satpam/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn      func(ctx context.Context, u *user.User) error
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
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
	return nil, 0, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error { return nil }

func activeGuard(t *testing.T, email, password string) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &user.User{
		ID:       uuid.New(),
		Name:     "Budi Santoso",
		NIK:      "1234567890123456",
		NIP:      "GRD-001",
		Email:    email,
		Role:     "user",
		IsActive: true,
		Password: string(hashed),
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "unit-test-secret")

	t.Run("success returns tokens with identity claims", func(t *testing.T) {
		u := activeGuard(t, "budi@example.com", "rahasia-kuat")
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				assert.Equal(t, "budi@example.com", email)
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		access, refresh, resp, err := svc.Login(ctx, "budi@example.com", "rahasia-kuat")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, u.ID.String(), resp.ID)
		assert.Equal(t, "user", resp.Role)

		token, err := jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
			return []byte("unit-test-secret"), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, u.ID.String(), claims["user_id"])
		assert.Equal(t, "user", claims["role"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		u := activeGuard(t, "budi@example.com", "rahasia-kuat")
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "budi@example.com", "salah")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email uses same error as wrong password", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "ghost@example.com", "apapun")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive account with correct password", func(t *testing.T) {
		u := activeGuard(t, "budi@example.com", "rahasia-kuat")
		u.IsActive = false
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "budi@example.com", "rahasia-kuat")

		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "unit-test-secret")

	t.Run("success rotates both tokens", func(t *testing.T) {
		u := activeGuard(t, "budi@example.com", "rahasia-kuat")
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) { return u, nil },
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				assert.Equal(t, u.ID.String(), id)
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		_, refresh, _, err := svc.Login(ctx, "budi@example.com", "rahasia-kuat")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, u.Email, resp.Email)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := auth.NewService(repo)

		_, _, _, err := svc.RefreshToken(ctx, "bukan.token.jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative account deactivated after token issued", func(t *testing.T) {
		u := activeGuard(t, "budi@example.com", "rahasia-kuat")
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) { return u, nil },
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				deactivated := *u
				deactivated.IsActive = false
				return &deactivated, nil
			},
		}
		svc := auth.NewService(repo)

		_, refresh, _, err := svc.Login(ctx, "budi@example.com", "rahasia-kuat")
		assert.NoError(t, err)

		_, _, _, err = svc.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("always creates an active guard account", func(t *testing.T) {
		repo := &fakeUserRepository{}
		repo.createFn = func(ctx context.Context, u *user.User) error {
			assert.Equal(t, "user", u.Role)
			assert.True(t, u.IsActive)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("rahasia-kuat")))
			return nil
		}
		svc := auth.NewService(repo)

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Name:     "Agus Wijaya",
			NIK:      "1234567890123457",
			NIP:      "GRD-002",
			Email:    "agus@example.com",
			Password: "rahasia-kuat",
		})

		assert.NoError(t, err)
		assert.Equal(t, "user", resp.Role)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("negative malformed user id", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := auth.NewService(repo)

		_, err := svc.GetMe(ctx, "bukan-uuid")

		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("success", func(t *testing.T) {
		u := activeGuard(t, "budi@example.com", "rahasia-kuat")
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) { return u, nil },
		}
		svc := auth.NewService(repo)

		resp, err := svc.GetMe(ctx, u.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, u.Email, resp.Email)
	})
}
