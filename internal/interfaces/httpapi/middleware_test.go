package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/gamewatchr/internal/domain/user"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
	"github.com/riskibarqy/gamewatchr/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantOrigin string
		wantCode   int
	}{
		{name: "configured origin", allowed: []string{"https://gamewatchr.example.com"}, method: http.MethodGet, origin: "https://gamewatchr.example.com", wantOrigin: "https://gamewatchr.example.com", wantCode: http.StatusOK},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://gamewatchr.example.com", wantOrigin: "*", wantCode: http.StatusNoContent},
		{name: "unconfigured origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodGet, origin: "https://other.example.com", wantOrigin: "", wantCode: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, origin: "", wantOrigin: "", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/teams", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed, okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantOrigin != "" {
				assert.Equal(t, requestIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /HEALTHZ "} {
		assert.False(t, shouldTraceRequest(path), path)
	}
	for _, path := range []string{"/v1/teams", "/v1/me/preferences", "/"} {
		assert.True(t, shouldTraceRequest(path), path)
	}
}

type sequenceIDs struct{ next string }

func (s sequenceIDs) NewID() (string, error) { return s.next, nil }

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(sequenceIDs{next: "generated-1"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues", nil))
	assert.Equal(t, "generated-1", rec.Header().Get(requestIDHeader))
	assert.Equal(t, "generated-1", seen)

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
	req.Header.Set(requestIDHeader, " upstream-7 ")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-7", rec.Header().Get(requestIDHeader))
	assert.Equal(t, "upstream-7", seen)
}

func TestRequestLogging_LevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(logging.LevelInfo)
	logger := logging.FromZap(zap.New(core))

	failing := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	})
	ctx := logging.ContextWithRequestID(context.Background(), "req-9")

	RequestLogging(logger, okHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/sports", nil).WithContext(ctx))
	RequestLogging(logger, failing).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/teams", nil).WithContext(ctx))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, logging.LevelInfo, entries[0].Level)
	assert.Equal(t, logging.LevelWarn, entries[1].Level)

	fields := entries[1].ContextMap()
	assert.EqualValues(t, http.StatusServiceUnavailable, fields["status"])
	assert.EqualValues(t, 4, fields["bytes"])
	assert.Equal(t, "req-9", fields["request_id"])
}

type staticVerifier struct {
	principal user.Principal
	err       error
}

func (v staticVerifier) VerifyAccessToken(context.Context, string) (user.Principal, error) {
	return v.principal, v.err
}

func TestRequireAuth(t *testing.T) {
	var got user.Principal
	protected := RequireAuth(staticVerifier{principal: user.Principal{UserID: "user-1"}}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = principalFromContext(r.Context())
	}))

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantCode: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer   ", wantCode: http.StatusUnauthorized},
		{name: "bearer token", header: "bearer good-token", wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/me/preferences", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
	assert.Equal(t, "user-1", got.UserID)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/me/preferences", nil)
	req.Header.Set("Authorization", "Bearer revoked")
	RequireAuth(staticVerifier{err: usecase.ErrUnauthorized}, okHandler).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
