package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusufnuru/unimarket-client/internal/infrastructure/httpclient"
	"github.com/yusufnuru/unimarket-client/internal/schema"
	"github.com/yusufnuru/unimarket-client/internal/usecase"
)

// mockBackend is a minimal marketplace API: cookie-based login, an expiring
// access token, and a product listing behind it.
type mockBackend struct {
	refreshCalls int32
	tokenValid   int32
}

func (b *mockBackend) server() *httptest.Server {
	e := echo.New()

	requireToken := func(c echo.Context) bool {
		cookie, err := c.Cookie("accessToken")
		return err == nil && cookie.Value == "valid" && atomic.LoadInt32(&b.tokenValid) == 1
	}

	e.POST("/auth/login", func(c echo.Context) error {
		atomic.StoreInt32(&b.tokenValid, 1)
		c.SetCookie(&http.Cookie{Name: "accessToken", Value: "valid", Path: "/"})
		return c.JSON(http.StatusOK, map[string]string{"message": "Login successful"})
	})

	e.GET("/auth/me", func(c echo.Context) error {
		if !requireToken(c) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Token expired"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"user": map[string]string{"id": "u-1", "email": "buyer@example.com", "role": "buyer", "profileId": "bp-1"},
		})
	})

	e.GET("/auth/refresh", func(c echo.Context) error {
		atomic.AddInt32(&b.refreshCalls, 1)
		atomic.StoreInt32(&b.tokenValid, 1)
		c.SetCookie(&http.Cookie{Name: "accessToken", Value: "valid", Path: "/"})
		return c.JSON(http.StatusOK, map[string]string{"message": "refreshed"})
	})

	e.GET("/auth/logout", func(c echo.Context) error {
		atomic.StoreInt32(&b.tokenValid, 0)
		return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
	})

	e.GET("/public-product", func(c echo.Context) error {
		if !requireToken(c) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Token expired"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"products": []map[string]interface{}{
				{"id": "p-1", "productName": "Wireless Mouse", "price": 19.99, "quantity": 3},
			},
			"pagination": map[string]int{"page": 1, "limit": 12, "total": 1, "pages": 1},
		})
	})

	return httptest.NewServer(e)
}

// TestLoginBrowseExpiryRecovery walks the whole client path: login resolves
// the identity, browsing works, and when the access token dies mid-session the
// next request transparently refreshes and replays.
func TestLoginBrowseExpiryRecovery(t *testing.T) {
	backend := &mockBackend{}
	srv := backend.server()
	defer srv.Close()

	client, err := httpclient.New(srv.URL, 5*time.Second)
	require.NoError(t, err)

	session := usecase.NewSession()
	auth := usecase.NewAuthUseCase(client, session)
	client.SetRefreshFunc(auth.Refresh)

	ctx := context.Background()

	_, err = auth.Login(ctx, schema.LoginInput{Email: "buyer@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.True(t, session.IsAuthenticated())

	listing := usecase.NewProductListing(ctx, client, "/public-product", 12, 10*time.Millisecond)
	require.NoError(t, listing.Refetch())
	require.Len(t, listing.Items(), 1)
	assert.Equal(t, "Wireless Mouse", listing.Items()[0].ProductName)

	// Kill the access token server-side; the next fetch must recover on its own.
	atomic.StoreInt32(&backend.tokenValid, 0)

	require.NoError(t, listing.Refetch())
	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.refreshCalls))
	assert.True(t, session.IsAuthenticated(), "identity survives the refresh")

	require.NoError(t, auth.Logout(ctx))
	assert.False(t, session.IsAuthenticated())
}
