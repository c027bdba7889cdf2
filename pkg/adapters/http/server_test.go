package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/glint/internal/testutils"
	"github.com/aretw0/glint/pkg/adapters/memory"
	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/persistence/middleware"
	"github.com/aretw0/glint/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *session.Bridge) {
	t.Helper()
	bridge, _ := testutils.NewBridge(t, session.Config{Prefix: "sess:"})
	return NewHandler(bridge, opts...), bridge
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	w := do(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSessionLifecycle(t *testing.T) {
	h, bridge := newTestHandler(t)

	w := do(h, http.MethodGet, "/sessions/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, http.MethodPut, "/sessions/abc", `{"user":"jdoe","cookie":{"maxAge":120000}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"user":"jdoe","cookie":{"maxAge":120000},"_ttl":120}`, w.Body.String())

	w = do(h, http.MethodGet, "/sessions/abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rec domain.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "jdoe", rec["user"])

	w = do(h, http.MethodGet, "/sessions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["abc"]`, w.Body.String())

	w = do(h, http.MethodDelete, "/sessions/abc", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	rec, err := bridge.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Nil(t, rec)

	// Destroy does not check existence.
	w = do(h, http.MethodDelete, "/sessions/abc", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPutSession_InvalidBody(t *testing.T) {
	h, _ := newTestHandler(t)
	w := do(h, http.MethodPut, "/sessions/abc", `[1,2`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegenerateSession(t *testing.T) {
	h, bridge := newTestHandler(t)
	ctx := context.Background()
	require.NoError(t, bridge.Set(ctx, "old", domain.Record{"n": 1}))

	w := do(h, http.MethodPost, "/sessions/old/regenerate", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	assert.NotEqual(t, "old", resp["id"])

	rec, err := bridge.Get(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestPutSession_BodyTooLarge(t *testing.T) {
	h, _ := newTestHandler(t, WithMaxBodySize(16))
	w := do(h, http.MethodPut, "/sessions/abc", `{"user":"a-rather-long-user-name"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

type failingStore struct{ Store }

var errBackend = errors.New("backend unavailable")

func (failingStore) Get(context.Context, string) (domain.Record, error) { return nil, errBackend }
func (failingStore) List(context.Context) ([]string, error) {
	return nil, domain.ErrListUnsupported
}

func TestErrors(t *testing.T) {
	h := NewHandler(failingStore{})

	w := do(h, http.MethodGet, "/sessions/abc", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "backend unavailable")

	w = do(h, http.MethodGet, "/sessions", "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := middleware.NewMetrics(reg)
	require.NoError(t, err)

	bridge, err := session.New(session.Config{Adapter: metrics.Middleware()(memory.NewStore())})
	require.NoError(t, err)
	h := NewHandler(bridge, WithGatherer(reg))

	do(h, http.MethodPut, "/sessions/abc", `{}`)

	w := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `glint_adapter_operations_total{op="save",result="ok"} 1`)

	h, _ = newTestHandler(t)
	w = do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
