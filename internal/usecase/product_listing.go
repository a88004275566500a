package usecase

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
	"github.com/yusufnuru/unimarket-client/internal/infrastructure/httpclient"
	"github.com/yusufnuru/unimarket-client/pkg/logger"
	"github.com/yusufnuru/unimarket-client/pkg/utils"
)

type SortOption string

const (
	SortLatest    SortOption = "latest"
	SortOldest    SortOption = "oldest"
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
	SortNameAsc   SortOption = "name-asc"
	SortNameDesc  SortOption = "name-desc"
)

type sortConfig struct {
	sortBy    string
	sortOrder string
}

var sortConfigs = map[SortOption]sortConfig{
	SortLatest:    {sortBy: "createdAt", sortOrder: "desc"},
	SortOldest:    {sortBy: "createdAt", sortOrder: "asc"},
	SortPriceLow:  {sortBy: "price", sortOrder: "asc"},
	SortPriceHigh: {sortBy: "price", sortOrder: "desc"},
	SortNameAsc:   {sortBy: "productName", sortOrder: "asc"},
	SortNameDesc:  {sortBy: "productName", sortOrder: "desc"},
}

// ProductQuery is the full filter/sort/page state sent to a listing
// endpoint. Zero-valued fields are omitted from the request.
type ProductQuery struct {
	Page       int
	Limit      int
	Search     string
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string
	SortOrder  string
}

func (q ProductQuery) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.CategoryID != "" {
		values.Set("categoryId", q.CategoryID)
	}
	if q.MinPrice != nil {
		values.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		values.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if q.SortBy != "" {
		values.Set("sortBy", q.SortBy)
		values.Set("sortOrder", q.SortOrder)
	}
	return values
}

type productsResponse struct {
	Products   []entity.Product  `json:"products"`
	Pagination entity.Pagination `json:"pagination"`
}

// ProductListing drives one paginated product endpoint. Filter mutations are
// debounced and reset the page; sort changes apply immediately; every query
// mutation triggers exactly one refetch, and only the most recently issued
// request's result is committed (stale responses are discarded by
// generation).
type ProductListing struct {
	ctx          context.Context
	client       *httpclient.Client
	path         string
	delay        time.Duration
	initialLimit int
	deb          *utils.Debouncer
	gen          uint64

	mu         sync.Mutex
	query      ProductQuery
	items      []entity.Product
	pagination entity.Pagination
	loading    bool
	lastErr    error
}

func NewProductListing(ctx context.Context, client *httpclient.Client, path string, limit int, delay time.Duration) *ProductListing {
	if limit <= 0 {
		limit = 12
	}
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &ProductListing{
		ctx:          ctx,
		client:       client,
		path:         path,
		delay:        delay,
		initialLimit: limit,
		deb:          utils.NewDebouncer(),
		query:        defaultProductQuery(limit),
	}
}

func defaultProductQuery(limit int) ProductQuery {
	return ProductQuery{
		Page:      1,
		Limit:     limit,
		SortBy:    "createdAt",
		SortOrder: "desc",
	}
}

// SortParams resolves a sort option to its query parameters.
func SortParams(option SortOption) (sortBy, sortOrder string, ok bool) {
	config, ok := sortConfigs[option]
	return config.sortBy, config.sortOrder, ok
}

// Refetch loads the current query synchronously.
func (l *ProductListing) Refetch() error {
	return l.fetch()
}

// ApplyQuery replaces the whole query in one update and refetches once.
func (l *ProductListing) ApplyQuery(query ProductQuery) error {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = l.initialLimit
	}
	l.mu.Lock()
	l.query = query
	l.mu.Unlock()
	return l.fetch()
}

func (l *ProductListing) fetch() error {
	gen := atomic.AddUint64(&l.gen, 1)

	l.mu.Lock()
	query := l.query
	l.loading = true
	l.mu.Unlock()

	var out productsResponse
	err := l.client.Get(l.ctx, l.path, query.Values(), &out)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != atomic.LoadUint64(&l.gen) {
		// A newer query superseded this request; drop the stale result.
		return nil
	}
	l.loading = false
	if err != nil {
		l.lastErr = err
		return err
	}
	l.lastErr = nil
	l.items = out.Products
	l.pagination = out.Pagination
	return nil
}

// SetSearch mutates the search filter after the debounce settles, resetting
// the page to 1.
func (l *ProductListing) SetSearch(value string) {
	l.scheduleFilter("search", func(q *ProductQuery) {
		q.Search = value
	})
}

func (l *ProductListing) SetMinPrice(value *float64) {
	l.scheduleFilter("minPrice", func(q *ProductQuery) {
		q.MinPrice = value
	})
}

func (l *ProductListing) SetMaxPrice(value *float64) {
	l.scheduleFilter("maxPrice", func(q *ProductQuery) {
		q.MaxPrice = value
	})
}

func (l *ProductListing) scheduleFilter(key string, mutate func(q *ProductQuery)) {
	l.deb.Schedule(key, l.delay, func() {
		l.mu.Lock()
		mutate(&l.query)
		l.query.Page = 1
		l.mu.Unlock()
		if err := l.fetch(); err != nil {
			logger.Warn("Product refetch failed: %v", err)
		}
	})
}

// SetCategoryFilter applies immediately and resets the page.
func (l *ProductListing) SetCategoryFilter(categoryID string) error {
	l.mu.Lock()
	l.query.CategoryID = categoryID
	l.query.Page = 1
	l.mu.Unlock()
	return l.fetch()
}

// HandleSortChange maps a sort option through the fixed table and refetches
// immediately with the page reset to 1. Unknown options are ignored.
func (l *ProductListing) HandleSortChange(option SortOption) error {
	config, ok := sortConfigs[option]
	if !ok {
		return nil
	}
	l.mu.Lock()
	l.query.SortBy = config.sortBy
	l.query.SortOrder = config.sortOrder
	l.query.Page = 1
	l.mu.Unlock()
	return l.fetch()
}

// GoToPage navigates when the target is within [1, totalPages]; anything
// outside is a no-op.
func (l *ProductListing) GoToPage(page int) error {
	l.mu.Lock()
	if !utils.ClampPage(page, l.totalPagesLocked()) {
		l.mu.Unlock()
		return nil
	}
	l.query.Page = page
	l.mu.Unlock()
	return l.fetch()
}

func (l *ProductListing) GoToFirstPage() error { return l.GoToPage(1) }

func (l *ProductListing) GoToLastPage() error { return l.GoToPage(l.TotalPages()) }

func (l *ProductListing) GoToNextPage() error { return l.GoToPage(l.CurrentPage() + 1) }

func (l *ProductListing) GoToPreviousPage() error { return l.GoToPage(l.CurrentPage() - 1) }

// Reset restores filters, sort and page to defaults in one atomic update and
// refetches once. Pending debounced edits are dropped.
func (l *ProductListing) Reset() error {
	l.deb.Stop()
	l.mu.Lock()
	l.query = defaultProductQuery(l.initialLimit)
	l.mu.Unlock()
	return l.fetch()
}

// PageNumbers renders the pager strip for the current state.
func (l *ProductListing) PageNumbers() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return utils.PageWindow(l.totalPagesLocked(), l.query.Page)
}

func (l *ProductListing) Items() []entity.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]entity.Product, len(l.items))
	copy(out, l.items)
	return out
}

func (l *ProductListing) Query() ProductQuery {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

func (l *ProductListing) CurrentPage() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query.Page
}

func (l *ProductListing) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPagesLocked()
}

func (l *ProductListing) TotalItems() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pagination.Total
}

func (l *ProductListing) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *ProductListing) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

func (l *ProductListing) totalPagesLocked() int {
	if l.pagination.Pages < 1 {
		return 1
	}
	return l.pagination.Pages
}

// ProductWithCategory is the /products/:id payload.
type ProductWithCategory struct {
	entity.Product
	Category entity.Category `json:"category"`
}

type productByIDResponse struct {
	Product ProductWithCategory `json:"product"`
}

// GetProduct fetches a single product with its category expanded.
func GetProduct(ctx context.Context, client *httpclient.Client, path string) (*ProductWithCategory, error) {
	var out productByIDResponse
	if err := client.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}
