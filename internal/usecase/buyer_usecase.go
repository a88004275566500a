package usecase

import (
	"context"
	"fmt"

	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
	"github.com/yusufnuru/unimarket-client/internal/infrastructure/httpclient"
	apperrors "github.com/yusufnuru/unimarket-client/pkg/errors"
)

// BuyerUseCase covers wishlists and the buyer's product reports. All calls
// are scoped to the buyer profile id carried by the session.
type BuyerUseCase struct {
	client  *httpclient.Client
	session *Session
}

func NewBuyerUseCase(client *httpclient.Client, session *Session) *BuyerUseCase {
	return &BuyerUseCase{
		client:  client,
		session: session,
	}
}

// BuyerID is the buyer profile id from the session, valid only for the
// buyer role.
func (uc *BuyerUseCase) BuyerID() (string, error) {
	if err := uc.session.RequireRole(entity.RoleBuyer); err != nil {
		return "", err
	}
	id := uc.session.ProfileID()
	if id == "" {
		return "", apperrors.Precondition("No buyer profile resolved for the current session")
	}
	return id, nil
}

type wishlistsResponse struct {
	Message   string                       `json:"message"`
	Wishlists []entity.WishlistWithProduct `json:"wishlists"`
}

func (uc *BuyerUseCase) FetchWishlists(ctx context.Context) ([]entity.WishlistWithProduct, error) {
	buyerID, err := uc.BuyerID()
	if err != nil {
		return nil, err
	}

	var out wishlistsResponse
	if err := uc.client.Get(ctx, fmt.Sprintf("/buyer/%s/wishlists", buyerID), nil, &out); err != nil {
		return nil, err
	}
	return out.Wishlists, nil
}

type wishlistItemResponse struct {
	Message  string          `json:"message"`
	Wishlist entity.Wishlist `json:"wishlist"`
}

func (uc *BuyerUseCase) AddToWishlist(ctx context.Context, productID string) (*entity.Wishlist, error) {
	buyerID, err := uc.BuyerID()
	if err != nil {
		return nil, err
	}

	body := map[string]string{"productId": productID}
	var out wishlistItemResponse
	if err := uc.client.Post(ctx, fmt.Sprintf("/buyer/%s/wishlists", buyerID), body, &out); err != nil {
		return nil, err
	}
	return &out.Wishlist, nil
}

// GetWishlistItem reports whether the product is wishlisted; a 404 means it
// is not, which is a normal answer rather than an error.
func (uc *BuyerUseCase) GetWishlistItem(ctx context.Context, productID string) (*entity.Wishlist, error) {
	buyerID, err := uc.BuyerID()
	if err != nil {
		return nil, err
	}

	var out wishlistItemResponse
	err = uc.client.Get(ctx, fmt.Sprintf("/buyer/%s/wishlists/%s", buyerID, productID), nil, &out)
	if err != nil {
		if apperrors.Is(err, "NOT_FOUND") {
			return nil, nil
		}
		return nil, err
	}
	return &out.Wishlist, nil
}

func (uc *BuyerUseCase) RemoveWishlistItem(ctx context.Context, productID string) error {
	buyerID, err := uc.BuyerID()
	if err != nil {
		return err
	}
	return uc.client.Delete(ctx, fmt.Sprintf("/buyer/%s/wishlists/%s", buyerID, productID), nil)
}

type buyerReportsResponse struct {
	Message string               `json:"message"`
	Reports []entity.StoreReport `json:"reports"`
}

// FetchReports lists the product reports this buyer has filed.
func (uc *BuyerUseCase) FetchReports(ctx context.Context) ([]entity.StoreReport, error) {
	buyerID, err := uc.BuyerID()
	if err != nil {
		return nil, err
	}

	var out buyerReportsResponse
	if err := uc.client.Get(ctx, fmt.Sprintf("/buyer/%s/reports", buyerID), nil, &out); err != nil {
		return nil, err
	}
	return out.Reports, nil
}

func (uc *BuyerUseCase) Reset() {}
