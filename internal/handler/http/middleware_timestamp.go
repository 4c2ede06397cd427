package http

import (
	"net/http"

	"github.com/MKhiriev/go-sync15/models"
)

// withTimestamp stamps every response with the server time in
// X-Weave-Timestamp.
func (h *Handler) withTimestamp(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(models.HeaderWeaveTimestamp, models.ServerTimestampFromTime(h.now()).String())
		next.ServeHTTP(w, r)
	})
}
