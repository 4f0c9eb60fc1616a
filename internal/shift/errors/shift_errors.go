package shifterrors

import (
	"net/http"

	"go-satpam/internal/shared/apperror"
)

var (
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"Shift not found",
		http.StatusNotFound,
	)

	ErrManageShiftsForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only an admin or superadmin may manage shifts",
		http.StatusForbidden,
	)

	ErrInvalidStartTime = apperror.NewValidation(
		"start_time",
		"Start time must be in HH:MM format",
	)

	ErrInvalidEndTime = apperror.NewValidation(
		"end_time",
		"End time must be in HH:MM format",
	)

	ErrEndNotAfterStart = apperror.NewValidation(
		"end_time",
		"End time must be after start time",
	)
)
