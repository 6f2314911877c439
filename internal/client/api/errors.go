package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is returned for any non-2xx API response. Detail carries the
// backend's "detail" message when the body had one, otherwise the raw body.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request failed (%d): %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("request failed (%d)", e.Code)
}

// Is lets 401/403 responses match ErrUnauthorized via errors.Is.
func (e *StatusError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.Code == 401 || e.Code == 403
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a
// StatusError (e.g. a transport failure).
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
