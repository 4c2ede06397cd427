// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/utils"
	"github.com/MKhiriev/go-sync15/models"
	"github.com/go-chi/chi/v5"
)

// getCollection serves GET /storage/{collection}. Without full=1 only the
// record ids are returned.
func (h *Handler) getCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	limits := h.services.StorageService.InfoConfiguration(ctx)
	req, err := parseCollectionRequest(chi.URLParam(r, "collection"), r.URL.Query(), limits.MaxPostRecords)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getCollection").Msg("bad collection query")
		writeError(w, err)
		return
	}

	records, modified, err := h.services.StorageService.GetCollection(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getCollection").Msg("error reading collection")
		writeError(w, err)
		return
	}

	setLastModified(w, modified)
	w.Header().Set(models.HeaderWeaveRecords, strconv.Itoa(len(records)))

	if !req.Full {
		ids := make([]models.Guid, 0, len(records))
		for _, record := range records {
			ids = append(ids, record.ID)
		}
		utils.WriteJSON(w, ids, http.StatusOK)
		return
	}

	if records == nil {
		records = []models.EncryptedBso{}
	}
	utils.WriteJSON(w, records, http.StatusOK)
}

// postRecords serves POST /storage/{collection}. The body is a JSON array
// of records; rejected records are reported in the response, not as an
// error status.
func (h *Handler) postRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, "collection")

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	params, err := parsePostParams(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.postRecords").Msg("bad post parameters")
		writeError(w, err)
		return
	}

	limits := h.services.StorageService.InfoConfiguration(ctx)
	var records []models.EncryptedBso
	if err = decodeBody(w, r, limits.MaxRequestBytes, &records); err != nil {
		log.Err(err).Str("func", "*Handler.postRecords").Msg("invalid JSON was passed")
		writeError(w, err)
		return
	}

	result, err := h.services.StorageService.PostRecords(ctx, userID, collection, records, params)
	if err != nil {
		log.Err(err).Str("func", "*Handler.postRecords").Msg("error posting records")
		writeError(w, err)
		return
	}

	h.metrics.observeUpload(collection, len(result.Success), len(result.Failed))

	setLastModified(w, result.Modified)
	utils.WriteJSON(w, result, http.StatusOK)
}

// deleteCollection serves DELETE /storage/{collection}.
func (h *Handler) deleteCollection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	modified, err := h.services.StorageService.DeleteCollection(r.Context(), userID, chi.URLParam(r, "collection"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteCollection").Msg("error deleting collection")
		writeError(w, err)
		return
	}

	setLastModified(w, modified)
	utils.WriteJSON(w, map[string]models.ServerTimestamp{"modified": modified}, http.StatusOK)
}

// getRecord serves GET /storage/{collection}/{id}.
func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	collection := chi.URLParam(r, "collection")
	id := models.Guid(chi.URLParam(r, "id"))

	record, err := h.services.StorageService.GetRecord(r.Context(), userID, collection, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRecord").Str("collection", collection).Msg("error reading record")
		writeError(w, err)
		return
	}

	setLastModified(w, record.Modified)
	utils.WriteJSON(w, record, http.StatusOK)
}

// putRecord serves PUT /storage/{collection}/{id}. The id in the path wins
// over the one in the body; the new timestamp is returned in
// X-Last-Modified.
func (h *Handler) putRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ius, err := parseIfUnmodifiedSince(r)
	if err != nil {
		writeError(w, err)
		return
	}

	limits := h.services.StorageService.InfoConfiguration(ctx)
	var record models.EncryptedBso
	if err = decodeBody(w, r, limits.MaxRequestBytes, &record); err != nil {
		log.Err(err).Str("func", "*Handler.putRecord").Msg("invalid JSON was passed")
		writeError(w, err)
		return
	}
	record.ID = models.Guid(chi.URLParam(r, "id"))

	collection := chi.URLParam(r, "collection")
	modified, err := h.services.StorageService.PutRecord(ctx, userID, collection, record, ius)
	if err != nil {
		log.Err(err).Str("func", "*Handler.putRecord").Str("collection", collection).Msg("error storing record")
		writeError(w, err)
		return
	}

	h.metrics.observeUpload(collection, 1, 0)

	setLastModified(w, modified)
	utils.WriteJSON(w, map[string]models.ServerTimestamp{"modified": modified}, http.StatusOK)
}
