package usecase

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

	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
	"github.com/yusufnuru/unimarket-client/internal/infrastructure/httpclient"
	"github.com/yusufnuru/unimarket-client/internal/schema"
)

type fakeChatLifecycle struct {
	initCalls  int32
	cleanCalls int32
}

func (f *fakeChatLifecycle) InitializeSocket(ctx context.Context) error {
	atomic.AddInt32(&f.initCalls, 1)
	return nil
}

func (f *fakeChatLifecycle) CleanUp() {
	atomic.AddInt32(&f.cleanCalls, 1)
}

type fakeResetter struct {
	resets int32
}

func (f *fakeResetter) Reset() {
	atomic.AddInt32(&f.resets, 1)
}

// authBackend simulates the auth surface: login issues a session cookie, /auth/me
// answers only with the cookie present.
type authBackend struct {
	meFails    int32
	loginCalls int32
}

func (b *authBackend) server() *httptest.Server {
	e := echo.New()

	e.POST("/auth/login", func(c echo.Context) error {
		atomic.AddInt32(&b.loginCalls, 1)
		c.SetCookie(&http.Cookie{Name: "accessToken", Value: "tok-1", Path: "/"})
		return c.JSON(http.StatusOK, map[string]string{"message": "Login successful"})
	})

	e.GET("/auth/me", func(c echo.Context) error {
		if atomic.LoadInt32(&b.meFails) == 1 {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
		}
		if _, err := c.Cookie("accessToken"); err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"user": map[string]string{
				"id":        "u-1",
				"email":     "buyer@example.com",
				"role":      "buyer",
				"profileId": "bp-1",
			},
		})
	})

	e.GET("/auth/logout", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
	})

	e.POST("/auth/password/reset", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Password reset"})
	})

	return httptest.NewServer(e)
}

func newAuthFixture(t *testing.T, backend *authBackend) (*AuthUseCase, *Session, *fakeChatLifecycle, *fakeResetter) {
	t.Helper()
	srv := backend.server()
	t.Cleanup(srv.Close)

	client, err := httpclient.New(srv.URL, 5*time.Second)
	require.NoError(t, err)

	session := NewSession()
	auth := NewAuthUseCase(client, session)

	chat := &fakeChatLifecycle{}
	auth.AttachChat(chat)

	resetter := &fakeResetter{}
	auth.RegisterResetter(resetter)

	return auth, session, chat, resetter
}

func TestLoginResolvesIdentityAndStartsChat(t *testing.T) {
	backend := &authBackend{}
	auth, session, chat, _ := newAuthFixture(t, backend)

	out, err := auth.Login(context.Background(), schema.LoginInput{
		Email:    "buyer@example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Login successful", out.Message)
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, entity.RoleBuyer, session.Role())
	assert.Equal(t, "bp-1", session.ProfileID())
	assert.Equal(t, int32(1), atomic.LoadInt32(&chat.initCalls))
}

func TestLoginValidationNeverHitsTheServer(t *testing.T) {
	backend := &authBackend{}
	auth, session, _, _ := newAuthFixture(t, backend)

	_, err := auth.Login(context.Background(), schema.LoginInput{
		Email:    "not-an-email",
		Password: "123",
	})

	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&backend.loginCalls))
	assert.False(t, session.IsAuthenticated())
}

func TestLoginIdentityFailureLeavesSessionClean(t *testing.T) {
	backend := &authBackend{meFails: 1}
	auth, session, chat, resetter := newAuthFixture(t, backend)

	_, err := auth.Login(context.Background(), schema.LoginInput{
		Email:    "buyer@example.com",
		Password: "secret1",
	})

	require.Error(t, err)
	assert.False(t, session.IsAuthenticated())
	assert.Equal(t, int32(0), atomic.LoadInt32(&chat.initCalls), "no socket without identity")
	assert.GreaterOrEqual(t, atomic.LoadInt32(&resetter.resets), int32(1), "logout side effects ran")
}

func TestLogoutAlwaysCleansUpLocally(t *testing.T) {
	e := echo.New()
	e.GET("/auth/logout", func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "boom"})
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	client, err := httpclient.New(srv.URL, 5*time.Second)
	require.NoError(t, err)

	session := NewSession()
	session.set(entity.User{ID: "u-1", Role: entity.RoleBuyer})

	auth := NewAuthUseCase(client, session)
	chat := &fakeChatLifecycle{}
	auth.AttachChat(chat)
	resetter := &fakeResetter{}
	auth.RegisterResetter(resetter)

	var hookRan bool
	auth.SetLogoutHook(func() { hookRan = true })

	// Server-side failure does not block local teardown.
	require.NoError(t, auth.Logout(context.Background()))
	assert.False(t, session.IsAuthenticated())
	assert.Equal(t, int32(1), atomic.LoadInt32(&resetter.resets))
	assert.Equal(t, int32(1), atomic.LoadInt32(&chat.cleanCalls))
	assert.True(t, hookRan)
}

func TestResetPasswordForcesReLogin(t *testing.T) {
	backend := &authBackend{}
	auth, session, _, _ := newAuthFixture(t, backend)

	_, err := auth.Login(context.Background(), schema.LoginInput{
		Email:    "buyer@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.True(t, session.IsAuthenticated())

	_, err = auth.ResetPassword(context.Background(), schema.ResetPasswordInput{
		Password:         "newsecret1",
		VerificationCode: "7f6f2f53-2bfc-4d51-a4a3-7a9aa8db43db",
	})

	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated())
}

func TestRequireRole(t *testing.T) {
	session := NewSession()
	assert.Error(t, session.RequireAuthenticated())
	assert.Error(t, session.RequireRole(entity.RoleAdmin))

	session.set(entity.User{ID: "u-1", Role: entity.RoleSeller})
	assert.NoError(t, session.RequireAuthenticated())
	assert.NoError(t, session.RequireRole(entity.RoleSeller))
	assert.NoError(t, session.RequireRole(entity.RoleBuyer, entity.RoleSeller))
	assert.Error(t, session.RequireRole(entity.RoleAdmin))

	session.clear()
	assert.Equal(t, "", session.UserID())
	assert.Equal(t, "", session.ProfileID())
}
