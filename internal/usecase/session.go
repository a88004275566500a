package usecase

import (
	"fmt"
	"sync"

	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
	apperrors "github.com/yusufnuru/unimarket-client/pkg/errors"
)

// Session is the process-wide record of the current identity. There is
// exactly one per client; everything that needs identity takes it as a
// constructor parameter. Invariant: an unauthenticated session carries no
// role and no ids.
type Session struct {
	mu            sync.RWMutex
	authenticated bool
	user          entity.User
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) set(user entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
	s.user = user
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.user = entity.User{}
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Session) Role() entity.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Role
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.ID
}

func (s *Session) ProfileID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.ProfileID
}

func (s *Session) Snapshot() entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// RequireAuthenticated gates operations that only make sense with a live
// session, the client-side counterpart of the auth route guard.
func (s *Session) RequireAuthenticated() error {
	if !s.IsAuthenticated() {
		return apperrors.Unauthorized("Not authenticated", nil)
	}
	return nil
}

func (s *Session) RequireRole(roles ...entity.Role) error {
	if err := s.RequireAuthenticated(); err != nil {
		return err
	}
	current := s.Role()
	for _, role := range roles {
		if current == role {
			return nil
		}
	}
	return apperrors.Forbidden(fmt.Sprintf("Requires one of roles %v", roles), nil)
}
