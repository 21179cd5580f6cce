package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound            = errors.New("requested resource not found")
	ErrBadRequest          = errors.New("bad request")
	ErrInternalServer      = errors.New("internal server error")
	ErrRosterMismatch      = errors.New("roster list lengths do not match")
	ErrSnapshotUnavailable = errors.New("snapshot unavailable") // missing, unreadable or corrupt data file
	ErrRefreshInProgress   = errors.New("refresh already in progress")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrRefreshInProgress) {
		return http.StatusConflict
	}

	// ErrSnapshotUnavailable and anything unknown surface as a server error.
	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
