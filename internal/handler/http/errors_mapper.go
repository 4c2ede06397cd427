package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sync15/internal/service"
	"github.com/MKhiriev/go-sync15/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidQueryParam:  http.StatusBadRequest,
	ErrInvalidTimestamp:   http.StatusBadRequest,
	ErrInvalidRequestBody: http.StatusBadRequest,
	ErrNoUserInContext:    http.StatusUnauthorized,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidRecord:           http.StatusBadRequest,
	service.ErrBatchNotFound:           http.StatusBadRequest,
	service.ErrNotFound:                http.StatusNotFound,
	service.ErrPreconditionFailed:      http.StatusPreconditionFailed,
	service.ErrRequestTooLarge:         http.StatusRequestEntityTooLarge,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the status mapped from err. Server faults get a
// generic body so that SQL details do not leak to clients.
func writeError(w http.ResponseWriter, err error) int {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return status
	}
	http.Error(w, err.Error(), status)
	return status
}
