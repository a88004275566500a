package usecase

import (
	"context"
	"sync"

	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
	"github.com/yusufnuru/unimarket-client/internal/infrastructure/httpclient"
)

// CategoryUseCase caches the public category list; categories change rarely
// so one fetch per session is enough.
type CategoryUseCase struct {
	client *httpclient.Client

	mu         sync.Mutex
	categories []entity.Category
	loaded     bool
}

func NewCategoryUseCase(client *httpclient.Client) *CategoryUseCase {
	return &CategoryUseCase{client: client}
}

type categoriesResponse struct {
	Categories []entity.Category `json:"categories"`
}

// FetchCategories returns the cached list, loading it on first use.
func (uc *CategoryUseCase) FetchCategories(ctx context.Context) ([]entity.Category, error) {
	uc.mu.Lock()
	if uc.loaded {
		out := make([]entity.Category, len(uc.categories))
		copy(out, uc.categories)
		uc.mu.Unlock()
		return out, nil
	}
	uc.mu.Unlock()

	var out categoriesResponse
	if err := uc.client.Get(ctx, "/public-category", nil, &out); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.categories = out.Categories
	uc.loaded = true
	uc.mu.Unlock()
	return out.Categories, nil
}

func (uc *CategoryUseCase) Reset() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.categories = nil
	uc.loaded = false
}
