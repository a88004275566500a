package usecase

import (
	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
	"github.com/yusufnuru/unimarket-client/internal/infrastructure/httpclient"
	apperrors "github.com/yusufnuru/unimarket-client/pkg/errors"
)

// AdminUseCase exposes the admin profile id; the approval queue itself is a
// StoreRequestListing pointed at the admin endpoint.
type AdminUseCase struct {
	client  *httpclient.Client
	session *Session
}

func NewAdminUseCase(client *httpclient.Client, session *Session) *AdminUseCase {
	return &AdminUseCase{
		client:  client,
		session: session,
	}
}

func (uc *AdminUseCase) AdminID() (string, error) {
	if err := uc.session.RequireRole(entity.RoleAdmin); err != nil {
		return "", err
	}
	id := uc.session.ProfileID()
	if id == "" {
		return "", apperrors.Precondition("No admin profile resolved for the current session")
	}
	return id, nil
}

func (uc *AdminUseCase) Reset() {}
