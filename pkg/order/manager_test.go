package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
)

// fakeVenue embeds the interface so only the methods a test exercises need
// an implementation.
type fakeVenue struct {
	exchange.Exchange

	created  *core.Order
	canceled *core.Order
	fetched  *core.Order
	err      error
}

func (f *fakeVenue) Name() string { return "fake" }

func (f *fakeVenue) CreateOrder(_ context.Context, req *exchange.OrderRequest, _ ...exchange.Option) (*core.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.created != nil {
		return f.created, nil
	}
	return &core.Order{
		ID:            "v-1",
		ClientOrderID: req.ClientOrderID,
		Symbol:        req.Symbol,
		Side:          req.Side,
		Type:          req.Type,
		Price:         req.Price,
		Amount:        req.Amount,
		Status:        core.StatusOpen,
	}, nil
}

func (f *fakeVenue) CancelOrder(_ context.Context, id, _ string, _ ...exchange.Option) (*core.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.canceled != nil {
		return f.canceled, nil
	}
	return &core.Order{ID: id, Status: core.StatusCanceled}, nil
}

func (f *fakeVenue) FetchOrder(_ context.Context, id, _ string, _ ...exchange.Option) (*core.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.fetched != nil {
		return f.fetched, nil
	}
	return &core.Order{ID: id, Status: core.StatusOpen}, nil
}

func limitRequest() *exchange.OrderRequest {
	return &exchange.OrderRequest{
		Symbol:        "BTC/USDT",
		Side:          core.SideBuy,
		Type:          core.TypeLimit,
		Price:         "50000",
		Amount:        "0.001",
		ClientOrderID: "client-1",
	}
}

func TestManager_PlaceTracksOrder(t *testing.T) {
	m := NewManager(&fakeVenue{})

	placed, err := m.Place(context.Background(), limitRequest())
	require.NoError(t, err)
	assert.Equal(t, "v-1", placed.ID)

	tracked, ok := m.Get("v-1")
	require.True(t, ok)
	assert.Equal(t, "BTC/USDT", tracked.Symbol)

	byClient, ok := m.GetByClientID("client-1")
	require.True(t, ok)
	assert.Equal(t, "v-1", byClient.ID)
}

func TestManager_PlaceRejectsInvalidRequest(t *testing.T) {
	m := NewManager(&fakeVenue{})

	_, err := m.Place(context.Background(), &exchange.OrderRequest{Symbol: "BTC/USDT"})
	require.Error(t, err)

	_, err = m.Place(context.Background(), nil)
	require.Error(t, err)
}

func TestManager_CancelUpdatesLocalView(t *testing.T) {
	m := NewManager(&fakeVenue{})

	placed, err := m.Place(context.Background(), limitRequest())
	require.NoError(t, err)

	canceled, err := m.Cancel(context.Background(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCanceled, canceled.Status)
	assert.Equal(t, "BTC/USDT", canceled.Symbol, "symbol backfilled from the tracked order")

	tracked, _ := m.Get(placed.ID)
	assert.Equal(t, core.StatusCanceled, tracked.Status)
}

func TestManager_CancelTerminalRefusedLocally(t *testing.T) {
	venue := &fakeVenue{created: &core.Order{ID: "done-1", Symbol: "BTC/USDT", Status: core.StatusClosed}}
	m := NewManager(venue)

	_, err := m.Place(context.Background(), limitRequest())
	require.NoError(t, err)

	_, err = m.Cancel(context.Background(), "done-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already closed")
}

func TestManager_CancelUntracked(t *testing.T) {
	m := NewManager(&fakeVenue{})
	_, err := m.Cancel(context.Background(), "ghost")
	assert.Error(t, err)
}

func TestManager_RefreshReplacesState(t *testing.T) {
	venue := &fakeVenue{}
	m := NewManager(venue)

	placed, err := m.Place(context.Background(), limitRequest())
	require.NoError(t, err)

	venue.fetched = &core.Order{ID: placed.ID, Symbol: "BTC/USDT", Status: core.StatusClosed, Filled: "0.001"}
	fresh, err := m.Refresh(context.Background(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusClosed, fresh.Status)

	assert.Empty(t, m.Open())
}

func TestManager_OpenFiltersTerminal(t *testing.T) {
	venue := &fakeVenue{}
	m := NewManager(venue)

	_, err := m.Place(context.Background(), limitRequest())
	require.NoError(t, err)

	open := m.Open()
	require.Len(t, open, 1)
	assert.Equal(t, "v-1", open[0].ID)
}

func TestManager_ForgetDropsBothIndexes(t *testing.T) {
	m := NewManager(&fakeVenue{})

	placed, err := m.Place(context.Background(), limitRequest())
	require.NoError(t, err)

	m.Forget(placed.ID)
	_, ok := m.Get(placed.ID)
	assert.False(t, ok)
	_, ok = m.GetByClientID("client-1")
	assert.False(t, ok)
}

func TestManager_VenueErrorPropagates(t *testing.T) {
	venue := &fakeVenue{err: core.NewError("fake", core.KindInsufficientFunds, 400, "no funds")}
	m := NewManager(venue)

	_, err := m.Place(context.Background(), limitRequest())
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindInsufficientFunds))
}
