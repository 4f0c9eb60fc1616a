package usererrors

import (
	"net/http"

	"go-satpam/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrListUsersForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only a superadmin may list users",
		http.StatusForbidden,
	)

	ErrManageUsersForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only a superadmin may manage users",
		http.StatusForbidden,
	)

	ErrNIKAlreadyExists = apperror.NewConflict(
		"nik",
		"NIK is already registered",
	)

	ErrNIPAlreadyExists = apperror.NewConflict(
		"nip",
		"NIP is already registered",
	)

	ErrEmailAlreadyExists = apperror.NewConflict(
		"email",
		"Email is already registered",
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.NewValidation(
		"role",
		"Role must be superadmin, admin, or user",
	)
)
