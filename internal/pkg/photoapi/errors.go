package photoapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
)

// Error describes a failed call to the photo API.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "photo api error"
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsAuthFailure reports whether the API rejected the session token, or the
// call was refused locally because there was no token to send.
func IsAuthFailure(err error) bool {
	if errors.Is(err, models.ErrUnauthenticated) {
		return true
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
