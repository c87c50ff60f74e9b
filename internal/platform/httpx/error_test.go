package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"phuongcosmetics.vn/storefront-web/internal/platform/requestctx"
)

func TestWriteErrorIncludesRequestAndTrace(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	ctx = requestctx.WithTrace(ctx, requestctx.TraceInfo{TraceID: "abc123"})

	rec := httptest.NewRecorder()
	WriteError(ctx, rec, NotFound("Không tìm thấy sản phẩm.").WithDetails(map[string]any{"id": "p99"}))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "not_found", body["error"])
	require.Equal(t, "Không tìm thấy sản phẩm.", body["message"])
	require.Equal(t, "req-1", body["request_id"])
	require.Equal(t, "abc123", body["trace_id"])
	require.Equal(t, "p99", body["id"])
}

func TestRespondPlainForFullPageRequests(t *testing.T) {
	rec := httptest.NewRecorder()
	Respond(rec, httptest.NewRequest(http.MethodGet, "/", nil), NewError("bad", "line\nbreak", 0))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "line break", strings.TrimSpace(rec.Body.String()))
}

func TestRespondJSONForHTMX(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/products/p1/cart", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	Respond(rec, req, NewError("csrf_invalid", "invalid CSRF token", http.StatusForbidden))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), `"error":"csrf_invalid"`)
}
