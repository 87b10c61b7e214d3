package listing

import (
	"context"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/domain"
)

type clientFunc func(ctx context.Context, p Params) (Result, error)

func (f clientFunc) ListProducts(ctx context.Context, p Params) (Result, error) { return f(ctx, p) }

func okResult(names ...string) Result {
	products := make([]domain.Product, len(names))
	for i, n := range names {
		products[i] = domain.Product{Name: n}
	}
	return Result{
		Products:   products,
		Pagination: Pagination{Page: 1, TotalPages: 1, Total: len(names)},
	}
}

func TestRefreshSuccess(t *testing.T) {
	c := NewController(clientFunc(func(ctx context.Context, p Params) (Result, error) {
		return okResult("Teak Coffee Table"), nil
	}), nil)

	c.Refresh(context.Background())

	snap := c.Snapshot()
	require.Len(t, snap.Products, 1)
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)
	assert.False(t, snap.Empty)
	assert.Equal(t, 1, snap.Pagination.Total)
}

func TestFailedFetchShowsZeroProducts(t *testing.T) {
	c := NewController(clientFunc(func(ctx context.Context, p Params) (Result, error) {
		return Result{}, ErrNetwork
	}), nil)

	c.Refresh(context.Background())

	snap := c.Snapshot()
	assert.Empty(t, snap.Products)
	assert.False(t, snap.Loading, "loading must clear even on failure")
	assert.ErrorIs(t, snap.Err, ErrNetwork)
}

func TestZeroMatchesIsEmptyNotError(t *testing.T) {
	c := NewController(clientFunc(func(ctx context.Context, p Params) (Result, error) {
		return Result{Products: []domain.Product{}, Pagination: Pagination{Page: 1}}, nil
	}), nil)

	c.Refresh(context.Background())

	snap := c.Snapshot()
	assert.True(t, snap.Empty)
	assert.NoError(t, snap.Err)
}

func TestStaleResponseDiscarded(t *testing.T) {
	block := make(chan struct{})
	var calls int32
	c := NewController(clientFunc(func(ctx context.Context, p Params) (Result, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			<-block
			return okResult("stale"), nil
		}
		return okResult("fresh"), nil
	}), nil)

	done := make(chan struct{})
	go func() {
		c.Refresh(context.Background())
		close(done)
	}()
	for atomic.LoadInt32(&calls) == 0 {
		time.Sleep(time.Millisecond)
	}

	// A newer fetch starts while the first is still in flight.
	c.Refresh(context.Background())
	close(block)
	<-done

	snap := c.Snapshot()
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "fresh", snap.Products[0].Name, "slow first response must not overwrite the newer one")
	assert.False(t, snap.Loading)
}

func TestTransitionsSyncAddressBar(t *testing.T) {
	initial, err := url.ParseQuery("utm_source=newsletter")
	require.NoError(t, err)

	// URL sync must happen even when every fetch fails.
	c := NewController(clientFunc(func(ctx context.Context, p Params) (Result, error) {
		return Result{}, ErrNetwork
	}), initial)

	c.SubmitSearch(context.Background(), "lamp")
	bar := c.AddressBar()
	assert.Equal(t, "lamp", bar.Get("q"))
	assert.Equal(t, "newsletter", bar.Get("utm_source"))

	c.SelectCategory(context.Background(), 2)
	c.GotoPage(context.Background(), 3)
	bar = c.AddressBar()
	assert.Equal(t, "lamp", bar.Get("q"), "page change keeps the search")
	assert.Equal(t, "2", bar.Get("categoryId"))
	assert.Equal(t, "3", bar.Get("page"))

	c.Reset(context.Background())
	bar = c.AddressBar()
	_, hasQ := bar["q"]
	_, hasCat := bar["categoryId"]
	assert.False(t, hasQ)
	assert.False(t, hasCat)
	assert.Equal(t, "newsletter", bar.Get("utm_source"))
}

func TestToggleViewHasNoNetworkEffect(t *testing.T) {
	var calls int32
	c := NewController(clientFunc(func(ctx context.Context, p Params) (Result, error) {
		atomic.AddInt32(&calls, 1)
		return okResult(), nil
	}), nil)

	c.ToggleView()
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Equal(t, ViewList, c.Snapshot().State.View)
	assert.Empty(t, c.AddressBar())
}

func TestInitialURLReproducesState(t *testing.T) {
	initial, err := url.ParseQuery("q=lamp&categoryId=2&sortBy=price_low&page=3")
	require.NoError(t, err)

	c := NewController(clientFunc(func(ctx context.Context, p Params) (Result, error) {
		return okResult(), nil
	}), initial)

	st := c.Snapshot().State
	assert.Equal(t, "lamp", st.Query)
	assert.Equal(t, int64(2), st.CategoryID)
	assert.Equal(t, SortPriceLow, st.Sort)
	assert.Equal(t, 3, st.Page)
}
