package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"tickethub/internal/status"
)

// errorJSON maps domain errors to HTTP status codes. The domain reports
// everything as result values; nothing here should ever be a panic path.
func errorJSON(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, status.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, status.ErrInvalidCredentials), errors.Is(err, status.ErrLoginRequired):
		code = http.StatusUnauthorized
	case errors.Is(err, status.ErrForbidden), errors.Is(err, status.ErrOwnListing):
		code = http.StatusForbidden
	case errors.Is(err, status.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, status.ErrEmailTaken), errors.Is(err, status.ErrInsufficientQuantity):
		code = http.StatusConflict
	case errors.Is(err, status.ErrFileTooLarge):
		code = http.StatusRequestEntityTooLarge
	case errors.Is(err, status.ErrUnsupportedType):
		code = http.StatusUnsupportedMediaType
	}
	return c.JSON(code, map[string]string{"error": err.Error()})
}
