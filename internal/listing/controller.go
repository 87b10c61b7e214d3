package listing

import (
	"context"
	"net/url"
	"sync"

	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/domain"
)

// Controller owns the page state and the fetch lifecycle. Every transition
// first syncs the address bar (a side effect independent of the fetch), then
// refreshes. Responses that lose the race to a newer fetch are dropped.
type Controller struct {
	mu     sync.Mutex
	client Client

	state      State
	addressBar url.Values

	seq     uint64
	cancel  context.CancelFunc
	loading bool

	products   []domain.Product
	pagination Pagination
	lastErr    error
}

// NewController seeds state from the URL present at load, so shared links
// reproduce the view they were copied from.
func NewController(client Client, initialURL url.Values) *Controller {
	c := &Controller{client: client, state: DefaultState(), addressBar: url.Values{}}
	if initialURL != nil {
		c.state = DecodeQuery(initialURL)
		for k, vs := range initialURL {
			c.addressBar[k] = append([]string(nil), vs...)
		}
	}
	return c
}

// Refresh fetches the page matching the current state. Loading is cleared on
// every path; a failed fetch leaves the list empty rather than stale.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel() // supersede any in-flight fetch
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loading = true
	params := c.state.FetchParams()
	c.mu.Unlock()

	res, err := c.client.ListProducts(ctx, params)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return // a newer fetch owns the state now
	}
	c.loading = false
	if err != nil {
		c.products = nil
		c.pagination = Pagination{Page: c.state.Page}
		c.lastErr = err
		return
	}
	c.products = res.Products
	c.pagination = res.Pagination
	c.lastErr = nil
}

func (c *Controller) SubmitSearch(ctx context.Context, q string) {
	c.transition(func() { c.state.SubmitSearch(q) })
	c.Refresh(ctx)
}

func (c *Controller) SelectCategory(ctx context.Context, id int64) {
	c.transition(func() { c.state.SelectCategory(id) })
	c.Refresh(ctx)
}

func (c *Controller) ChangeSort(ctx context.Context, choice string) {
	c.transition(func() { c.state.ChangeSort(choice) })
	c.Refresh(ctx)
}

func (c *Controller) GotoPage(ctx context.Context, n int) {
	c.transition(func() { c.state.GotoPage(n) })
	c.Refresh(ctx)
}

// Reset is the empty-state action: same flow as a manual search submission.
func (c *Controller) Reset(ctx context.Context) {
	c.transition(func() { c.state.Reset() })
	c.Refresh(ctx)
}

// ToggleView has no network effect and does not touch the URL.
func (c *Controller) ToggleView() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ToggleView()
}

func (c *Controller) transition(apply func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	apply()
	c.addressBar = EncodeQuery(c.state, c.addressBar)
}

// Snapshot is what the template renders.
type Snapshot struct {
	State      State
	Products   []domain.Product
	Pagination Pagination
	Loading    bool
	Err        error
	Empty      bool
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:      c.state,
		Products:   append([]domain.Product(nil), c.products...),
		Pagination: c.pagination,
		Loading:    c.loading,
		Err:        c.lastErr,
		Empty:      !c.loading && c.lastErr == nil && len(c.products) == 0,
	}
}

func (c *Controller) AddressBar() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := url.Values{}
	for k, vs := range c.addressBar {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
