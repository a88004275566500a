package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yusufnuru/unimarket-client/pkg/errors"
)

// testBackend is an echo server that rejects protected calls with the
// token-expiry marker until /auth/refresh is hit.
type testBackend struct {
	accessValid  int32
	refreshCalls int32
	refreshFails bool
	protected    int32
}

func newTestBackend() (*testBackend, *httptest.Server) {
	b := &testBackend{}
	e := echo.New()

	e.GET("/protected", func(c echo.Context) error {
		atomic.AddInt32(&b.protected, 1)
		if atomic.LoadInt32(&b.accessValid) == 0 {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Token expired"})
		}
		return c.JSON(http.StatusOK, map[string]string{"value": "ok"})
	})

	e.GET("/auth/refresh", func(c echo.Context) error {
		atomic.AddInt32(&b.refreshCalls, 1)
		if b.refreshFails {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Session expired"})
		}
		atomic.StoreInt32(&b.accessValid, 1)
		return c.JSON(http.StatusOK, map[string]string{"message": "refreshed"})
	})

	e.POST("/auth/login", func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Token expired"})
	})

	e.GET("/echo-query", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"search": c.QueryParam("search")})
	})

	return b, httptest.NewServer(e)
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(baseURL, 5*time.Second)
	require.NoError(t, err)
	return client
}

func TestRefreshAndReplayOnExpiredToken(t *testing.T) {
	backend, srv := newTestBackend()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.SetRefreshFunc(func(ctx context.Context) error {
		return client.Get(ctx, "/auth/refresh", nil, nil)
	})

	var out map[string]string
	err := client.Get(context.Background(), "/protected", nil, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out["value"])
	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.refreshCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&backend.protected), "original request plus one replay")
}

func TestNonExpiry401PassesThrough(t *testing.T) {
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
	})
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	var refreshCalls int32
	client := newTestClient(t, srv.URL)
	client.SetRefreshFunc(func(ctx context.Context) error {
		atomic.AddInt32(&refreshCalls, 1)
		return nil
	})

	err := client.Get(context.Background(), "/protected", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "UNAUTHORIZED"))
	assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls), "only the expiry marker triggers a refresh")
}

func TestAuthEndpointsNeverRefresh(t *testing.T) {
	backend, srv := newTestBackend()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.SetRefreshFunc(func(ctx context.Context) error {
		return client.Get(ctx, "/auth/refresh", nil, nil)
	})

	err := client.Post(context.Background(), "/auth/login", map[string]string{}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "UNAUTHORIZED"))
	assert.Equal(t, int32(0), atomic.LoadInt32(&backend.refreshCalls))
}

func TestWithoutRefreshBypassesInterceptor(t *testing.T) {
	backend, srv := newTestBackend()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.SetRefreshFunc(func(ctx context.Context) error {
		return client.Get(ctx, "/auth/refresh", nil, nil)
	})

	err := client.Get(WithoutRefresh(context.Background()), "/protected", nil, nil)
	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&backend.refreshCalls))
}

func TestRefreshFailureRunsSessionExpiredHook(t *testing.T) {
	backend, srv := newTestBackend()
	backend.refreshFails = true
	defer srv.Close()

	var hookCalls int32
	client := newTestClient(t, srv.URL)
	client.SetRefreshFunc(func(ctx context.Context) error {
		return client.Get(ctx, "/auth/refresh", nil, nil)
	})
	client.SetSessionExpiredHook(func(ctx context.Context) {
		atomic.AddInt32(&hookCalls, 1)
	})

	err := client.Get(context.Background(), "/protected", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "TOKEN_EXPIRED"), "caller gets the original expiry, not the refresh failure")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hookCalls))
}

func TestSecond401AfterReplayIsFinal(t *testing.T) {
	var refreshCalls int32
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Token expired"})
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.SetRefreshFunc(func(ctx context.Context) error {
		atomic.AddInt32(&refreshCalls, 1)
		return nil
	})

	err := client.Get(context.Background(), "/protected", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "UNAUTHORIZED"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls), "the replay never re-enters the refresh flow")
}

func TestConcurrentExpiriesShareOneRefresh(t *testing.T) {
	backend, srv := newTestBackend()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.SetRefreshFunc(func(ctx context.Context) error {
		// Hold the flight open long enough for the burst to pile up.
		time.Sleep(50 * time.Millisecond)
		return client.Get(ctx, "/auth/refresh", nil, nil)
	})

	const burst = 8
	var wg sync.WaitGroup
	errs := make([]error, burst)
	for i := 0; i < burst; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = client.Get(context.Background(), "/protected", nil, nil)
		}(i)
	}
	wg.Wait()

	for i := 0; i < burst; i++ {
		assert.NoError(t, errs[i])
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.refreshCalls))
}

func TestQueryParamsAreEncoded(t *testing.T) {
	_, srv := newTestBackend()
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	var out map[string]string
	query := url.Values{"search": {"wireless mouse"}}
	require.NoError(t, client.Get(context.Background(), "/echo-query", query, &out))
	assert.Equal(t, "wireless mouse", out["search"])
}

func TestErrorMessageSurfacesFromBody(t *testing.T) {
	e := echo.New()
	e.GET("/missing", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Store not found"})
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	err := client.Get(context.Background(), "/missing", nil, nil)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Store not found", appErr.Message)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}
