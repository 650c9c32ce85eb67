package espn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
	"github.com/riskibarqy/gamewatchr/internal/platform/resilience"
	"github.com/riskibarqy/gamewatchr/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newTestClient(baseURL string, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClient_FetchTeams_Success(t *testing.T) {
	var gotPath, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(nflPayload))
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{})
	teams, err := client.FetchTeams(context.Background(), "nfl", league.FeedLocator{Sport: "football", League: "nfl"})
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "/football/nfl/teams", gotPath)
	assert.Equal(t, "GameWatchr/1.0", gotUA)
}

func TestClient_FetchTeams_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{})
	_, err := client.FetchTeams(context.Background(), "nfl", league.FeedLocator{Sport: "football", League: "nfl"})
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	assert.Contains(t, err.Error(), "feed responded with status 404")
	assert.False(t, isFeedCircuitFailure(err))
}

func TestClient_FetchTeams_MalformedBodyIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{})
	teams, err := client.FetchTeams(context.Background(), "nba", league.FeedLocator{Sport: "basketball", League: "nba"})
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestClient_FetchTeams_DeadlineExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(nflPayload))
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchTeams(ctx, "nfl", league.FeedLocator{Sport: "football", League: "nfl"})
	require.Error(t, err)
	assert.True(t, isFeedCircuitFailure(err))
}

func TestClient_FetchTeams_CircuitOpensAfterServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
	locator := league.FeedLocator{Sport: "football", League: "nfl"}

	for i := 0; i < 2; i++ {
		_, err := client.FetchTeams(context.Background(), "nfl", locator)
		require.Error(t, err)
	}
	_, err := client.FetchTeams(context.Background(), "nfl", locator)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.Contains(t, err.Error(), "temporarily unavailable")
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_FetchTeams_RejectsEmptyLocator(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", resilience.CircuitBreakerConfig{})
	_, err := client.FetchTeams(context.Background(), "nfl", league.FeedLocator{})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestClient_FetchTeams_SharedRequestOutlivesShortCaller(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(150 * time.Millisecond)
		_, _ = w.Write([]byte(nflPayload))
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{})
	locator := league.FeedLocator{Sport: "football", League: "nfl"}

	shortCtx, cancelShort := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancelShort()
	shortErr := make(chan error, 1)
	go func() {
		_, err := client.FetchTeams(shortCtx, "nfl", locator)
		shortErr <- err
	}()

	time.Sleep(10 * time.Millisecond)
	teams, err := client.FetchTeams(context.Background(), "nfl", locator)
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	err = <-shortErr
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.True(t, isFeedCircuitFailure(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_CancelledCallerIsNotAFeedFailure(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", resilience.CircuitBreakerConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchTeams(ctx, "nfl", league.FeedLocator{Sport: "football", League: "nfl"})
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.False(t, isFeedCircuitFailure(err))
}

func TestNewClient_LeavesSuppliedHTTPClientUntouched(t *testing.T) {
	supplied := &fasthttp.Client{MaxResponseBodySize: 1024}
	client := NewClient(ClientConfig{HTTPClient: supplied, MaxBodyBytes: 8 << 20})

	assert.Same(t, supplied, client.httpClient)
	assert.Equal(t, 1024, supplied.MaxResponseBodySize)

	built := NewClient(ClientConfig{MaxBodyBytes: 4096})
	assert.Equal(t, 4096, built.httpClient.MaxResponseBodySize)
}
