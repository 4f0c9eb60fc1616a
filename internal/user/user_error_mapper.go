package user

import (
	"errors"
	"strings"

	usererrors "go-satpam/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapRepositoryError menerjemahkan error storage menjadi AppError per-field.
// Unique violation dipetakan lewat nama constraint supaya caller tahu field
// mana yang duplikat.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_users_nik":
				return usererrors.ErrNIKAlreadyExists
			case "uq_users_nip":
				return usererrors.ErrNIPAlreadyExists
			case "uq_users_email":
				return usererrors.ErrEmailAlreadyExists
			}
		}
	}

	// Fallback untuk driver yang hanya melaporkan pesan teks
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		switch {
		case strings.Contains(errMsg, "uq_users_nik"):
			return usererrors.ErrNIKAlreadyExists
		case strings.Contains(errMsg, "uq_users_nip"):
			return usererrors.ErrNIPAlreadyExists
		case strings.Contains(errMsg, "uq_users_email"):
			return usererrors.ErrEmailAlreadyExists
		}
	}

	return err
}
