package apperror

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// area_name -> Area Name
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError menerjemahkan validator.ValidationErrors menjadi
// AppError per-field supaya caller bisa re-prompt field yang salah.
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		// Ambil error pertama
		e := errs[0]

		// e.Field() sudah otomatis nama json (lihat Init)
		fieldName := e.Field()
		humanReadableField := formatFieldName(fieldName)

		switch e.Tag() {
		case "required":
			return &AppError{
				Code:       CodeInvalidInput,
				Message:    humanReadableField + " is required",
				Field:      fieldName,
				HTTPStatus: http.StatusBadRequest,
			}
		default:
			return &AppError{
				Code:       CodeInvalidInput,
				Message:    humanReadableField + " is invalid",
				Field:      fieldName,
				HTTPStatus: http.StatusBadRequest,
			}
		}
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
