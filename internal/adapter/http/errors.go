package http

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"library-circulation/internal/domain/errs"
)

// statusFor maps an error kind onto an HTTP status.
func statusFor(err error) int {
	switch errs.Kind(err) {
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrValidation:
		return http.StatusBadRequest
	case errs.ErrInvalidState, errs.ErrUnavailable:
		return http.StatusConflict
	case errs.ErrForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func writeError(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
