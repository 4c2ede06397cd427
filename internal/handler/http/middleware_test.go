package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── gzip ─────────────────────────────────────────────────────────────────────

func gzipBytes(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestGZip_CompressesResponse(t *testing.T) {
	payload := strings.Repeat(`{"id":"aaa","payload":"x"},`, 50)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Accept-Encoding"))
		io.WriteString(w, payload)
	})

	req := httptest.NewRequest(http.MethodGet, "/storage/passwords", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
}

func TestGZip_DecompressesRequest(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, r.Body.Close())
		got = string(body)
		assert.Empty(t, r.Header.Get("Content-Encoding"))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/storage/passwords", bytes.NewReader(gzipBytes(t, `[{"id":"a"}]`)))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `[{"id":"a"}]`, got)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
}

func TestGZip_InvalidRequestBody(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	req := httptest.NewRequest(http.MethodPost, "/storage/passwords", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGZip_NoContentIsNotCompressed(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/storage/passwords", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Zero(t, rr.Body.Len())
}

// ── trace id ─────────────────────────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantEcho  bool
	}{
		{name: "echoes client id", header: "abc-123", wantEcho: true},
		{name: "generates when missing"},
		{name: "replaces oversized id", header: strings.Repeat("x", maxTraceIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}
			req := httptest.NewRequest(http.MethodGet, "/info/collections", nil)
			if tt.header != "" {
				req.Header.Set(traceIDHeader, tt.header)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rr, req)

			got := rr.Header().Get(traceIDHeader)
			if tt.wantEcho {
				assert.Equal(t, tt.header, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestWithTraceID_LoggerCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("hello")
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "trace-xyz")
	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"trace_id":"trace-xyz"`)
}

// ── logging ──────────────────────────────────────────────────────────────────

func TestWithLogging_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantLevel string
	}{
		{http.StatusOK, `"level":"info"`},
		{http.StatusPreconditionFailed, `"level":"warn"`},
		{http.StatusInternalServerError, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			zl := zerolog.New(&buf)
			req := httptest.NewRequest(http.MethodPost, "/storage/passwords?batch=true", nil)
			req = req.WithContext(zl.WithContext(req.Context()))

			h := &Handler{logger: logger.Nop()}
			h.withLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, "body")
			})).ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, `"uri":"/storage/passwords?batch=true"`)
			assert.Contains(t, out, `"method":"POST"`)
			assert.Contains(t, out, `"size":4`)
		})
	}
}

// ── status recorder ──────────────────────────────────────────────────────────

func TestStatusRecorder(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := newStatusRecorder(rr)

	assert.Equal(t, http.StatusOK, rec.status)

	rec.WriteHeader(http.StatusCreated)
	rec.WriteHeader(http.StatusTeapot)
	n, err := rec.Write([]byte("hello"))
	require.NoError(t, err)
	_, err = rec.Write([]byte("!"))
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusCreated, rec.status)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 6, rec.size)
	assert.Same(t, rr, rec.Unwrap())
}

// ── timestamp ────────────────────────────────────────────────────────────────

func TestSetLastModified_BumpsWeaveTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		weave     string
		modified  models.ServerTimestamp
		wantWeave string
	}{
		{name: "modified in the past", weave: "1700000000.00", modified: 1699999999990, wantWeave: "1700000000.00"},
		{name: "modified ahead of clock", weave: "1700000000.00", modified: 1700000000020, wantWeave: "1700000000.02"},
		{name: "no weave header", modified: 1700000000020, wantWeave: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			if tt.weave != "" {
				rr.Header().Set(models.HeaderWeaveTimestamp, tt.weave)
			}
			setLastModified(rr, tt.modified)

			assert.Equal(t, tt.modified.String(), rr.Header().Get(models.HeaderLastModified))
			assert.Equal(t, tt.wantWeave, rr.Header().Get(models.HeaderWeaveTimestamp))
		})
	}
}
