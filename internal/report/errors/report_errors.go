package reporterrors

import (
	"net/http"

	"go-satpam/internal/shared/apperror"
)

var (
	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"Area report not found",
		http.StatusNotFound,
	)

	ErrReportAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this report",
		http.StatusForbidden,
	)

	ErrSubmitForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only a guard may submit area reports",
		http.StatusForbidden,
	)

	ErrStatusForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only an admin or superadmin may change report status",
		http.StatusForbidden,
	)

	ErrInvalidStatus = apperror.NewValidation(
		"status",
		"Status must be pending, reviewed, or completed",
	)

	ErrInvalidStartDate = apperror.NewValidation(
		"start_date",
		"Start date must be in YYYY-MM-DD format",
	)

	ErrInvalidEndDate = apperror.NewValidation(
		"end_date",
		"End date must be in YYYY-MM-DD format",
	)

	ErrInvalidOwnerFilter = apperror.NewValidation(
		"user_id",
		"Owner filter must be a valid user ID",
	)

	ErrTooManyAttachments = apperror.NewValidation(
		"attachments",
		"A report may have at most 2 attachments",
	)

	ErrEvidenceUploadFailed = apperror.New(
		apperror.CodeStorageError,
		"Failed to store evidence file",
		http.StatusBadGateway,
	)
)
