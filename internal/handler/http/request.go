package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-sync15/internal/utils"
	"github.com/MKhiriev/go-sync15/models"
)

// parseCollectionRequest reads the query of GET /storage/{collection}.
// At most maxIDs ids are accepted.
func parseCollectionRequest(collection string, query url.Values, maxIDs int) (models.CollectionRequest, error) {
	req := models.CollectionRequest{Collection: collection}

	if query.Has("full") {
		full := query.Get("full")
		req.Full = full != "0" && !strings.EqualFold(full, "false")
	}

	var err error
	if req.Newer, err = queryTimestamp(query, "newer"); err != nil {
		return models.CollectionRequest{}, err
	}
	if req.Older, err = queryTimestamp(query, "older"); err != nil {
		return models.CollectionRequest{}, err
	}

	if raw := query.Get("ids"); raw != "" {
		parts := strings.Split(raw, ",")
		if len(parts) > maxIDs {
			return models.CollectionRequest{}, fmt.Errorf("%w: more than %d ids", ErrInvalidQueryParam, maxIDs)
		}
		for _, part := range parts {
			id := models.Guid(strings.TrimSpace(part))
			if !id.IsValid() {
				return models.CollectionRequest{}, fmt.Errorf("%w: ids: %q", ErrInvalidQueryParam, part)
			}
			req.IDs = append(req.IDs, id)
		}
	}

	if raw := query.Get("limit"); raw != "" {
		req.Limit, err = strconv.Atoi(raw)
		if err != nil || req.Limit <= 0 {
			return models.CollectionRequest{}, fmt.Errorf("%w: limit: %q", ErrInvalidQueryParam, raw)
		}
	}

	switch order := models.RequestOrder(query.Get("sort")); order {
	case models.OrderNone, models.OrderOldest, models.OrderNewest, models.OrderIndex:
		req.Order = order
	default:
		return models.CollectionRequest{}, fmt.Errorf("%w: sort: %q", ErrInvalidQueryParam, order)
	}

	return req, nil
}

func queryTimestamp(query url.Values, name string) (models.ServerTimestamp, error) {
	raw := query.Get(name)
	if raw == "" {
		return 0, nil
	}
	ts, err := models.ParseServerTimestamp(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidQueryParam, name, err)
	}
	return ts, nil
}

// parseIfUnmodifiedSince reads X-If-Unmodified-Since. A missing header is
// the zero timestamp, which disables the check.
func parseIfUnmodifiedSince(r *http.Request) (models.ServerTimestamp, error) {
	raw := r.Header.Get(models.HeaderIfUnmodifiedSince)
	if raw == "" {
		return 0, nil
	}
	ts, err := models.ParseServerTimestamp(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
	}
	return ts, nil
}

// parsePostParams reads the batch query parameters of a POST.
func parsePostParams(r *http.Request) (models.PostParams, error) {
	ius, err := parseIfUnmodifiedSince(r)
	if err != nil {
		return models.PostParams{}, err
	}

	query := r.URL.Query()
	params := models.PostParams{
		Batch:             query.Get("batch"),
		IfUnmodifiedSince: ius,
	}
	if raw := query.Get("commit"); raw != "" {
		params.Commit, err = strconv.ParseBool(raw)
		if err != nil {
			return models.PostParams{}, fmt.Errorf("%w: commit: %q", ErrInvalidQueryParam, raw)
		}
	}
	if params.Commit && params.Batch == "" {
		return models.PostParams{}, fmt.Errorf("%w: commit without batch", ErrInvalidQueryParam)
	}

	return params, nil
}

// decodeBody decodes a JSON body of at most limit bytes into out.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int, out any) error {
	body := http.MaxBytesReader(w, r.Body, int64(limit))
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return nil
}

func userIDFromRequest(r *http.Request) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, ErrNoUserInContext
	}
	return userID, nil
}

// setLastModified sets X-Last-Modified and keeps X-Weave-Timestamp from
// running behind it.
func setLastModified(w http.ResponseWriter, modified models.ServerTimestamp) {
	w.Header().Set(models.HeaderLastModified, modified.String())

	if now, err := models.ParseServerTimestamp(w.Header().Get(models.HeaderWeaveTimestamp)); err == nil && now < modified {
		w.Header().Set(models.HeaderWeaveTimestamp, modified.String())
	}
}
