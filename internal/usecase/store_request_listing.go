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

// StoreRequestQuery is the page/filter state for the admin approval queue.
type StoreRequestQuery struct {
	Page   int
	Limit  int
	Status entity.RequestStatus
}

func (q StoreRequestQuery) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("limit", strconv.Itoa(q.Limit))
	if q.Status != "" {
		values.Set("status", string(q.Status))
	}
	return values
}

type storeRequestsResponse struct {
	Message       string                `json:"message"`
	StoreRequests []entity.StoreRequest `json:"storeRequests"`
	Pagination    entity.Pagination     `json:"pagination"`
}

// StoreRequestListing drives the paginated store-request endpoint with a
// debounced status filter. Same contract as ProductListing: one refetch per
// settled mutation, stale responses discarded.
type StoreRequestListing struct {
	ctx          context.Context
	client       *httpclient.Client
	path         string
	delay        time.Duration
	initialLimit int
	deb          *utils.Debouncer
	gen          uint64

	mu         sync.Mutex
	query      StoreRequestQuery
	items      []entity.StoreRequest
	pagination entity.Pagination
	loading    bool
	lastErr    error
}

func NewStoreRequestListing(ctx context.Context, client *httpclient.Client, path string, limit int, delay time.Duration) *StoreRequestListing {
	if limit <= 0 {
		limit = 10
	}
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &StoreRequestListing{
		ctx:          ctx,
		client:       client,
		path:         path,
		delay:        delay,
		initialLimit: limit,
		deb:          utils.NewDebouncer(),
		query:        StoreRequestQuery{Page: 1, Limit: limit},
	}
}

func (l *StoreRequestListing) Refetch() error {
	return l.fetch()
}

// ApplyQuery replaces the whole query in one update and refetches once.
func (l *StoreRequestListing) ApplyQuery(query StoreRequestQuery) error {
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

func (l *StoreRequestListing) fetch() error {
	gen := atomic.AddUint64(&l.gen, 1)

	l.mu.Lock()
	query := l.query
	l.loading = true
	l.mu.Unlock()

	var out storeRequestsResponse
	err := l.client.Get(l.ctx, l.path, query.Values(), &out)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != atomic.LoadUint64(&l.gen) {
		return nil
	}
	l.loading = false
	if err != nil {
		l.lastErr = err
		return err
	}
	l.lastErr = nil
	l.items = out.StoreRequests
	l.pagination = out.Pagination
	return nil
}

// SetStatusFilter mutates the status filter after the debounce settles. An
// empty status means all requests.
func (l *StoreRequestListing) SetStatusFilter(status entity.RequestStatus) {
	l.deb.Schedule("status", l.delay, func() {
		l.mu.Lock()
		l.query.Status = status
		l.query.Page = 1
		l.mu.Unlock()
		if err := l.fetch(); err != nil {
			logger.Warn("Store request refetch failed: %v", err)
		}
	})
}

// ResetFilter clears the status filter through the same debounce path.
func (l *StoreRequestListing) ResetFilter() {
	l.SetStatusFilter("")
}

func (l *StoreRequestListing) GoToPage(page int) error {
	l.mu.Lock()
	if !utils.ClampPage(page, l.totalPagesLocked()) {
		l.mu.Unlock()
		return nil
	}
	l.query.Page = page
	l.mu.Unlock()
	return l.fetch()
}

func (l *StoreRequestListing) GoToFirstPage() error { return l.GoToPage(1) }

func (l *StoreRequestListing) GoToLastPage() error { return l.GoToPage(l.TotalPages()) }

func (l *StoreRequestListing) GoToNextPage() error { return l.GoToPage(l.CurrentPage() + 1) }

func (l *StoreRequestListing) GoToPreviousPage() error { return l.GoToPage(l.CurrentPage() - 1) }

func (l *StoreRequestListing) Reset() error {
	l.deb.Stop()
	l.mu.Lock()
	l.query = StoreRequestQuery{Page: 1, Limit: l.initialLimit}
	l.mu.Unlock()
	return l.fetch()
}

func (l *StoreRequestListing) PageNumbers() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return utils.PageWindow(l.totalPagesLocked(), l.query.Page)
}

func (l *StoreRequestListing) Items() []entity.StoreRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]entity.StoreRequest, len(l.items))
	copy(out, l.items)
	return out
}

func (l *StoreRequestListing) Query() StoreRequestQuery {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

func (l *StoreRequestListing) CurrentPage() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query.Page
}

func (l *StoreRequestListing) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPagesLocked()
}

func (l *StoreRequestListing) TotalItems() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pagination.Total
}

func (l *StoreRequestListing) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *StoreRequestListing) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

func (l *StoreRequestListing) totalPagesLocked() int {
	if l.pagination.Pages < 1 {
		return 1
	}
	return l.pagination.Pages
}
