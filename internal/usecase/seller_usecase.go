package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
	"github.com/yusufnuru/unimarket-client/internal/infrastructure/httpclient"
	"github.com/yusufnuru/unimarket-client/internal/schema"
	apperrors "github.com/yusufnuru/unimarket-client/pkg/errors"
)

// SellerUseCase holds the seller's own store and the operations scoped to it.
// Every store-scoped call requires a resolved store id; callers get a
// precondition error instead of a malformed request when none is loaded.
type SellerUseCase struct {
	client  *httpclient.Client
	session *Session

	mu    sync.Mutex
	store *entity.Store
}

func NewSellerUseCase(client *httpclient.Client, session *Session) *SellerUseCase {
	return &SellerUseCase{
		client:  client,
		session: session,
	}
}

func (uc *SellerUseCase) Store() *entity.Store {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.store == nil {
		return nil
	}
	store := *uc.store
	return &store
}

func (uc *SellerUseCase) StoreID() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.store == nil {
		return ""
	}
	return uc.store.ID
}

func (uc *SellerUseCase) requireStoreID() (string, error) {
	id := uc.StoreID()
	if id == "" {
		return "", apperrors.Precondition("No store loaded for the current seller")
	}
	return id, nil
}

type storeResponse struct {
	Message string       `json:"message"`
	Store   entity.Store `json:"store"`
}

// FetchStore resolves the seller's store. A 404 is not an error here: it
// means the seller has not created a store yet, so the local state is
// cleared and nil is returned.
func (uc *SellerUseCase) FetchStore(ctx context.Context) error {
	if err := uc.session.RequireRole(entity.RoleSeller); err != nil {
		return err
	}

	var out storeResponse
	if err := uc.client.Get(ctx, "/store/owner", nil, &out); err != nil {
		if apperrors.Is(err, "NOT_FOUND") {
			uc.mu.Lock()
			uc.store = nil
			uc.mu.Unlock()
			return nil
		}
		return err
	}

	uc.mu.Lock()
	uc.store = &out.Store
	uc.mu.Unlock()
	return nil
}

// CreateStore submits the store form together with its first approval
// request, then reloads the store state.
func (uc *SellerUseCase) CreateStore(ctx context.Context, input schema.CreateStoreInput) (*entity.Store, error) {
	if err := uc.session.RequireRole(entity.RoleSeller); err != nil {
		return nil, err
	}
	if err := schema.Validate(input); err != nil {
		return nil, err
	}

	var out storeResponse
	if err := uc.client.Post(ctx, "/store/create", input, &out); err != nil {
		return nil, err
	}

	if err := uc.FetchStore(ctx); err != nil {
		return nil, err
	}
	return uc.Store(), nil
}

func (uc *SellerUseCase) UpdateStore(ctx context.Context, input schema.UpdateStoreInput) (*entity.Store, error) {
	storeID, err := uc.requireStoreID()
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var out storeResponse
	if err := uc.client.Patch(ctx, fmt.Sprintf("/store/%s/update", storeID), input, &out); err != nil {
		return nil, err
	}

	if err := uc.FetchStore(ctx); err != nil {
		return nil, err
	}
	return uc.Store(), nil
}

func (uc *SellerUseCase) DeleteStore(ctx context.Context) error {
	storeID, err := uc.requireStoreID()
	if err != nil {
		return err
	}

	if err := uc.client.Delete(ctx, fmt.Sprintf("/store/%s/delete", storeID), nil); err != nil {
		return err
	}

	uc.mu.Lock()
	uc.store = nil
	uc.mu.Unlock()
	return nil
}

type sellerRequestsResponse struct {
	Message       string                `json:"message"`
	StoreRequests []entity.StoreRequest `json:"storeRequests"`
}

// FetchStoreRequests lists the approval requests filed for this store.
func (uc *SellerUseCase) FetchStoreRequests(ctx context.Context) ([]entity.StoreRequest, error) {
	storeID, err := uc.requireStoreID()
	if err != nil {
		return nil, err
	}

	var out sellerRequestsResponse
	if err := uc.client.Get(ctx, fmt.Sprintf("/store/%s/requests", storeID), nil, &out); err != nil {
		return nil, err
	}
	return out.StoreRequests, nil
}

// CreateStoreRequest files a new approval request, used after a rejection or
// a suspension.
func (uc *SellerUseCase) CreateStoreRequest(ctx context.Context, input schema.CreateStoreRequestInput) error {
	storeID, err := uc.requireStoreID()
	if err != nil {
		return err
	}
	if err := schema.Validate(input); err != nil {
		return err
	}
	return uc.client.Post(ctx, fmt.Sprintf("/store/%s/request", storeID), input, nil)
}

type storeWarningsResponse struct {
	Message  string                `json:"message"`
	Warnings []entity.StoreWarning `json:"warnings"`
}

func (uc *SellerUseCase) FetchStoreWarnings(ctx context.Context) ([]entity.StoreWarning, error) {
	storeID, err := uc.requireStoreID()
	if err != nil {
		return nil, err
	}

	var out storeWarningsResponse
	if err := uc.client.Get(ctx, fmt.Sprintf("/store/%s/warnings", storeID), nil, &out); err != nil {
		return nil, err
	}
	return out.Warnings, nil
}

// CreateStoreProduct submits the product form as multipart so images travel
// alongside the fields.
func (uc *SellerUseCase) CreateStoreProduct(ctx context.Context, input schema.CreateProductInput, images []httpclient.FormFile) (*entity.Product, error) {
	storeID, err := uc.requireStoreID()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(input); err != nil {
		return nil, err
	}

	form := httpclient.Form{
		Fields: map[string]string{
			"name":        input.Name,
			"category":    input.CategoryID,
			"description": input.Description,
			"price":       input.Price,
			"quantity":    strconv.Itoa(input.Quantity),
		},
	}
	for _, image := range images {
		image.Field = "images"
		form.Files = append(form.Files, image)
	}

	var out struct {
		Message string         `json:"message"`
		Product entity.Product `json:"product"`
	}
	if err := uc.client.PostMultipart(ctx, fmt.Sprintf("/store/%s/product/create", storeID), form, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// UpdateStoreProduct patches only the fields present in the input; new
// images replace the existing set when provided.
func (uc *SellerUseCase) UpdateStoreProduct(ctx context.Context, productID string, input schema.UpdateProductInput, images []httpclient.FormFile) (*entity.Product, error) {
	storeID, err := uc.requireStoreID()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(input); err != nil {
		return nil, err
	}

	form := httpclient.Form{Fields: map[string]string{}}
	if input.Name != "" {
		form.Fields["name"] = input.Name
	}
	if input.CategoryID != "" {
		form.Fields["category"] = input.CategoryID
	}
	if input.Description != "" {
		form.Fields["description"] = input.Description
	}
	if input.Price != "" {
		form.Fields["price"] = input.Price
	}
	if input.Quantity > 0 {
		form.Fields["quantity"] = strconv.Itoa(input.Quantity)
	}
	for _, image := range images {
		image.Field = "images"
		form.Files = append(form.Files, image)
	}

	var out struct {
		Message string         `json:"message"`
		Product entity.Product `json:"product"`
	}
	if err := uc.client.PatchMultipart(ctx, fmt.Sprintf("/store/%s/product/%s/update", storeID, productID), form, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

func (uc *SellerUseCase) DeleteStoreProduct(ctx context.Context, productID string) error {
	storeID, err := uc.requireStoreID()
	if err != nil {
		return err
	}
	return uc.client.Delete(ctx, fmt.Sprintf("/store/%s/product/%s/delete", storeID, productID), nil)
}

// StoreProductsPath builds the listing path for this store's products, fed
// into a ProductListing.
func (uc *SellerUseCase) StoreProductsPath() (string, error) {
	storeID, err := uc.requireStoreID()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/store/%s/products", storeID), nil
}

func (uc *SellerUseCase) Reset() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.store = nil
}
