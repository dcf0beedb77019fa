package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hearthhq/hearth/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var single = httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestClientIPKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
	req.Header.Set("X-Real-IP", "198.51.100.7")

	require.Equal(t, "192.168.1.1", httpx.ClientIPKeyExtractor(false)(req), "headers are ignored by default")
	require.Equal(t, "203.0.113.1", httpx.ClientIPKeyExtractor(true)(req))

	req.Header.Del("X-Forwarded-For")
	require.Equal(t, "198.51.100.7", httpx.ClientIPKeyExtractor(true)(req))
}

func TestRateLimitByIP_IgnoresSpoofedForwardingHeaders(t *testing.T) {
	limited := httpx.RateLimitByIP(single, false)(http.HandlerFunc(okHandler))

	do := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do("203.0.113.1"))
	require.Equal(t, http.StatusTooManyRequests, do("203.0.113.2"), "rotating the header must not reset the bucket")
}

func TestRateLimitByUser(t *testing.T) {
	limited := httpx.RateLimitByUser(single, false)(http.HandlerFunc(okHandler))

	do := func(userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req = req.WithContext(httpx.WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, do("1").Code)

	rec := do("1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))

	// Same address, different subject.
	require.Equal(t, http.StatusOK, do("2").Code)
}

func TestDefaultRateLimitProfiles(t *testing.T) {
	p := httpx.DefaultRateLimitProfiles()

	require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}, p.Strict)
	require.Less(t, p.Strict.RequestsPerWindow, p.Moderate.RequestsPerWindow)
	require.Less(t, p.Moderate.RequestsPerWindow, p.Lenient.RequestsPerWindow)
}

func TestRateLimitProfilesFromEnv(t *testing.T) {
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "1000")
	t.Setenv("RATELIMIT_STRICT_BURST", "1000")
	t.Setenv("RATELIMIT_LENIENT_WINDOW_SEC", "30")
	t.Setenv("RATELIMIT_MODERATE_REQUESTS", "-3")

	p := httpx.RateLimitProfilesFromEnv()
	defaults := httpx.DefaultRateLimitProfiles()

	require.Equal(t, 1000, p.Strict.RequestsPerWindow)
	require.Equal(t, 1000, p.Strict.Burst)
	require.Equal(t, defaults.Strict.Window, p.Strict.Window)
	require.Equal(t, 30*time.Second, p.Lenient.Window)
	require.Equal(t, defaults.Moderate, p.Moderate, "non-positive values keep the default")
}
