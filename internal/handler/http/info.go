package http

import (
	"net/http"

	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/utils"
	"github.com/MKhiriev/go-sync15/models"
)

func (h *Handler) infoConfiguration(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.StorageService.InfoConfiguration(r.Context()), http.StatusOK)
}

func (h *Handler) infoCollections(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	info, err := h.services.StorageService.InfoCollections(r.Context(), userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.infoCollections").Msg("error listing collections")
		writeError(w, err)
		return
	}

	var latest models.ServerTimestamp
	for _, ts := range info {
		latest = latest.Max(ts)
	}
	setLastModified(w, latest)

	utils.WriteJSON(w, info, http.StatusOK)
}
