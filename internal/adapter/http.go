package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-sync15/internal/config"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/utils"
	"github.com/MKhiriev/go-sync15/models"
)

type httpStorageClient struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPStorageClient constructs the resty implementation of
// [StorageClient]. adapterCfg.HTTPAddress is the storage endpoint; paths
// such as "/info/collections" are resolved against it.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPStorageClient(adapterCfg config.ClientAdapter, logger *logger.Logger) (StorageClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpStorageClient{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		token:  strings.TrimSpace(adapterCfg.AuthToken),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FetchCollection implements [StorageClient]. GET /storage/{collection}
// with the request rendered as query parameters.
func (h *httpStorageClient) FetchCollection(ctx context.Context, req models.CollectionRequest) ([]models.EncryptedBso, models.ServerTimestamp, error) {
	path := "/storage/" + url.PathEscape(req.Collection)
	route := http.MethodGet + " " + path

	resp, err := h.authedRequest(ctx).
		SetQueryParamsFromValues(collectionQuery(req)).
		Get(path)
	if err != nil {
		return nil, 0, transportError(route, err)
	}
	if err = mapHTTPError(route, resp); err != nil {
		return nil, 0, err
	}

	ts, err := responseTimestamp(resp)
	if err != nil {
		return nil, 0, decodeError(route, resp.StatusCode(), err)
	}

	var records []models.EncryptedBso
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, 0, decodeError(route, resp.StatusCode(), err)
	}

	h.logger.Debug().
		Str("collection", req.Collection).
		Int("records", len(records)).
		Stringer("last_modified", ts).
		Msg("fetched collection")

	return records, ts, nil
}

func collectionQuery(req models.CollectionRequest) url.Values {
	q := url.Values{}
	if req.Full {
		q.Set("full", "1")
	}
	if !req.Newer.IsZero() {
		q.Set("newer", req.Newer.String())
	}
	if !req.Older.IsZero() {
		q.Set("older", req.Older.String())
	}
	if len(req.IDs) > 0 {
		q.Set("ids", strings.Join(models.GuidsToStrings(req.IDs), ","))
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Order != models.OrderNone {
		q.Set("sort", string(req.Order))
	}
	return q
}

// UploadBatch implements [StorageClient]. POST /storage/{collection}.
func (h *httpStorageClient) UploadBatch(ctx context.Context, collection string, records []models.EncryptedBso, params models.PostParams) (models.PostResponse, error) {
	path := "/storage/" + url.PathEscape(collection)
	route := http.MethodPost + " " + path

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(records)
	if params.Batch != "" {
		req.SetQueryParam("batch", params.Batch)
	}
	if params.Commit {
		req.SetQueryParam("commit", "true")
	}
	if !params.IfUnmodifiedSince.IsZero() {
		req.SetHeader(models.HeaderIfUnmodifiedSince, params.IfUnmodifiedSince.String())
	}

	resp, err := req.Post(path)
	if err != nil {
		return models.PostResponse{}, transportError(route, err)
	}
	if err = mapHTTPError(route, resp); err != nil {
		return models.PostResponse{}, err
	}

	var result models.PostResponse
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.PostResponse{}, decodeError(route, resp.StatusCode(), err)
	}
	if result.Modified.IsZero() {
		// Uncommitted batch POSTs only carry the request timestamp.
		if ts, tsErr := responseTimestamp(resp); tsErr == nil {
			result.Modified = ts
		}
	}

	h.logger.Debug().
		Str("collection", collection).
		Str("batch", result.Batch).
		Int("success", len(result.Success)).
		Int("failed", len(result.Failed)).
		Msg("posted records")

	return result, nil
}

// FetchInfoConfiguration implements [StorageClient].
func (h *httpStorageClient) FetchInfoConfiguration(ctx context.Context) (models.InfoConfiguration, error) {
	var cfg models.InfoConfiguration
	if err := h.getJSON(ctx, "/info/configuration", &cfg); err != nil {
		return models.InfoConfiguration{}, err
	}
	return cfg, nil
}

// FetchInfoCollections implements [StorageClient].
func (h *httpStorageClient) FetchInfoCollections(ctx context.Context) (models.InfoCollections, error) {
	info := models.InfoCollections{}
	if err := h.getJSON(ctx, "/info/collections", &info); err != nil {
		return nil, err
	}
	return info, nil
}

// FetchMetaGlobal implements [StorageClient]. meta/global is stored in
// cleartext inside the record payload.
func (h *httpStorageClient) FetchMetaGlobal(ctx context.Context) (models.MetaGlobalRecord, error) {
	path := "/storage/" + models.MetaCollection + "/" + models.MetaGlobalID
	route := http.MethodGet + " " + path

	var bso models.EncryptedBso
	if err := h.getJSON(ctx, path, &bso); err != nil {
		return models.MetaGlobalRecord{}, err
	}

	var meta models.MetaGlobal
	if err := json.Unmarshal([]byte(bso.Payload), &meta); err != nil {
		return models.MetaGlobalRecord{}, decodeError(route, http.StatusOK, err)
	}

	return models.MetaGlobalRecord{MetaGlobal: meta, Modified: bso.Modified}, nil
}

// PutMetaGlobal implements [StorageClient].
func (h *httpStorageClient) PutMetaGlobal(ctx context.Context, meta models.MetaGlobal, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error) {
	payload, err := json.Marshal(meta)
	if err != nil {
		return 0, fmt.Errorf("marshal meta/global: %w", err)
	}

	bso := models.EncryptedBso{ID: models.MetaGlobalID, Payload: string(payload)}
	return h.putRecord(ctx, models.MetaCollection, bso, ifUnmodifiedSince)
}

// FetchCryptoKeys implements [StorageClient].
func (h *httpStorageClient) FetchCryptoKeys(ctx context.Context) (models.EncryptedBso, error) {
	var bso models.EncryptedBso
	if err := h.getJSON(ctx, "/storage/"+models.CryptoCollection+"/"+models.CryptoKeysID, &bso); err != nil {
		return models.EncryptedBso{}, err
	}
	return bso, nil
}

// PutCryptoKeys implements [StorageClient].
func (h *httpStorageClient) PutCryptoKeys(ctx context.Context, keys models.EncryptedBso, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error) {
	keys.ID = models.CryptoKeysID
	return h.putRecord(ctx, models.CryptoCollection, keys, ifUnmodifiedSince)
}

// DeleteCollection implements [StorageClient].
func (h *httpStorageClient) DeleteCollection(ctx context.Context, collection string) error {
	path := "/storage/" + url.PathEscape(collection)
	route := http.MethodDelete + " " + path

	resp, err := h.authedRequest(ctx).Delete(path)
	if err != nil {
		return transportError(route, err)
	}
	return mapHTTPError(route, resp)
}

func (h *httpStorageClient) putRecord(ctx context.Context, collection string, bso models.EncryptedBso, ifUnmodifiedSince models.ServerTimestamp) (models.ServerTimestamp, error) {
	path := "/storage/" + collection + "/" + bso.ID.String()
	route := http.MethodPut + " " + path

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(bso)
	if !ifUnmodifiedSince.IsZero() {
		req.SetHeader(models.HeaderIfUnmodifiedSince, ifUnmodifiedSince.String())
	}

	resp, err := req.Put(path)
	if err != nil {
		return 0, transportError(route, err)
	}
	if err = mapHTTPError(route, resp); err != nil {
		return 0, err
	}

	ts, err := responseTimestamp(resp)
	if err != nil {
		return 0, decodeError(route, resp.StatusCode(), err)
	}
	return ts, nil
}

func (h *httpStorageClient) getJSON(ctx context.Context, path string, out any) error {
	route := http.MethodGet + " " + path

	resp, err := h.authedRequest(ctx).Get(path)
	if err != nil {
		return transportError(route, err)
	}
	if err = mapHTTPError(route, resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return decodeError(route, resp.StatusCode(), err)
	}
	return nil
}

func (h *httpStorageClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}

// responseTimestamp reads X-Last-Modified, falling back to
// X-Weave-Timestamp.
func responseTimestamp(resp *resty.Response) (models.ServerTimestamp, error) {
	raw := resp.Header().Get(models.HeaderLastModified)
	if raw == "" {
		raw = resp.Header().Get(models.HeaderWeaveTimestamp)
	}
	if raw == "" {
		return 0, fmt.Errorf("response has no %s header", models.HeaderLastModified)
	}
	return models.ParseServerTimestamp(raw)
}
