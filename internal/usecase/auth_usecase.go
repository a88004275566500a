package usecase

import (
	"context"
	"fmt"

	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
	"github.com/yusufnuru/unimarket-client/internal/infrastructure/httpclient"
	"github.com/yusufnuru/unimarket-client/internal/schema"
	"github.com/yusufnuru/unimarket-client/pkg/logger"
)

// ChatLifecycle is what auth needs from the chat usecase: a socket brought up
// after login and torn down on logout.
type ChatLifecycle interface {
	InitializeSocket(ctx context.Context) error
	CleanUp()
}

// Resetter is implemented by every stateful usecase; logout resets them all.
type Resetter interface {
	Reset()
}

type AuthUseCase struct {
	client   *httpclient.Client
	session  *Session
	chat     ChatLifecycle
	resetter []Resetter
	onLogout func()
}

func NewAuthUseCase(client *httpclient.Client, session *Session) *AuthUseCase {
	return &AuthUseCase{
		client:  client,
		session: session,
	}
}

// AttachChat wires the chat usecase in after construction; chat in turn
// depends on this usecase for refresh and logout.
func (uc *AuthUseCase) AttachChat(chat ChatLifecycle) {
	uc.chat = chat
}

// RegisterResetter adds a store to the set cleared on logout.
func (uc *AuthUseCase) RegisterResetter(r Resetter) {
	uc.resetter = append(uc.resetter, r)
}

// SetLogoutHook installs the navigate-home behavior run after local cleanup.
func (uc *AuthUseCase) SetLogoutHook(fn func()) {
	uc.onLogout = fn
}

type AuthResponse struct {
	Message string `json:"message"`
}

type RegisteredUser struct {
	Message string      `json:"message"`
	User    entity.User `json:"user"`
}

// Login establishes the session cookie, then resolves the identity via
// FetchUserInfo. Role is never taken from the login response itself. A
// successful login also brings the chat socket up.
func (uc *AuthUseCase) Login(ctx context.Context, input schema.LoginInput) (*AuthResponse, error) {
	if err := schema.Validate(input); err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := uc.client.Post(ctx, "/auth/login", input, &out); err != nil {
		return nil, err
	}

	if err := uc.FetchUserInfo(ctx); err != nil {
		return nil, err
	}

	if uc.chat != nil {
		if err := uc.chat.InitializeSocket(ctx); err != nil {
			logger.Warn("Chat socket initialization failed after login: %v", err)
		}
	}

	return &out, nil
}

func (uc *AuthUseCase) Register(ctx context.Context, input schema.RegisterInput) (*RegisteredUser, error) {
	if err := schema.Validate(input); err != nil {
		return nil, err
	}

	var out RegisteredUser
	if err := uc.client.Post(ctx, "/auth/register", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh re-establishes the session cookie and re-resolves identity. It runs
// under the no-refresh mark so an expired /auth/me inside the flow cannot
// re-enter the interceptor.
func (uc *AuthUseCase) Refresh(ctx context.Context) error {
	ctx = httpclient.WithoutRefresh(ctx)

	if err := uc.client.Get(ctx, "/auth/refresh", nil, nil); err != nil {
		logger.Warn("Refresh failed: %v", err)
		return err
	}
	return uc.FetchUserInfo(ctx)
}

// Logout terminates the server session best-effort and always runs local
// cleanup: clear the session, reset every registered store, tear the chat
// socket down and run the navigation hook.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	if err := uc.client.Get(httpclient.WithoutRefresh(ctx), "/auth/logout", nil, nil); err != nil {
		logger.Warn("Server-side logout failed: %v", err)
	}

	uc.session.clear()
	for _, r := range uc.resetter {
		r.Reset()
	}
	if uc.chat != nil {
		uc.chat.CleanUp()
	}
	if uc.onLogout != nil {
		uc.onLogout()
	}
	return nil
}

type userInfoResponse struct {
	User entity.User `json:"user"`
}

// FetchUserInfo resolves the current identity from /auth/me. Failure means
// "not authenticated": the session is cleared and logout side effects run
// before the original error is re-raised.
func (uc *AuthUseCase) FetchUserInfo(ctx context.Context) error {
	var out userInfoResponse
	if err := uc.client.Get(ctx, "/auth/me", nil, &out); err != nil {
		uc.session.clear()
		if logoutErr := uc.Logout(ctx); logoutErr != nil {
			logger.Warn("Logout after identity failure also failed: %v", logoutErr)
		}
		return err
	}

	uc.session.set(out.User)
	return nil
}

func (uc *AuthUseCase) VerifyEmail(ctx context.Context, code string) (*AuthResponse, error) {
	if err := schema.Validate(schema.VerificationCode{Code: code}); err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := uc.client.Get(ctx, fmt.Sprintf("/auth/email/verify/%s", code), nil, &out); err != nil {
		return nil, err
	}

	if err := uc.FetchUserInfo(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *AuthUseCase) ForgotPassword(ctx context.Context, input schema.ForgotPasswordInput) (*AuthResponse, error) {
	if err := schema.Validate(input); err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := uc.client.Post(ctx, "/auth/password/forgot", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword changes the password and then logs out, forcing a fresh login
// with the new credentials.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, input schema.ResetPasswordInput) (*AuthResponse, error) {
	if err := schema.Validate(input); err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := uc.client.Post(ctx, "/auth/password/reset", input, &out); err != nil {
		return nil, err
	}

	if err := uc.Logout(ctx); err != nil {
		logger.Warn("Logout after password reset failed: %v", err)
	}
	return &out, nil
}
