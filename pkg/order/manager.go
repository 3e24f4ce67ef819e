package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
)

// Manager places orders on one venue and keeps a local view of their
// lifecycle. Safe for concurrent use.
type Manager struct {
	venue    exchange.Exchange
	logger   zerolog.Logger
	orders   sync.Map // order id -> *core.Order
	clientID sync.Map // client order id -> order id
}

// NewManager creates an order manager bound to one venue.
func NewManager(venue exchange.Exchange) *Manager {
	return &Manager{venue: venue, logger: zerolog.Nop()}
}

// NewManagerWithLogger creates an order manager with a custom logger.
func NewManagerWithLogger(venue exchange.Exchange, logger zerolog.Logger) *Manager {
	m := NewManager(venue)
	m.logger = logger
	return m
}

// Place submits an order and begins tracking it.
func (m *Manager) Place(ctx context.Context, req *exchange.OrderRequest, opts ...exchange.Option) (*core.Order, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is required")
	}
	if err := validate(req); err != nil {
		return nil, fmt.Errorf("order validation: %w", err)
	}

	placed, err := m.venue.CreateOrder(ctx, req, opts...)
	if err != nil {
		return nil, err
	}

	m.track(placed)
	m.logger.Info().
		Str("exchange", m.venue.Name()).
		Str("id", placed.ID).
		Str("symbol", placed.Symbol).
		Str("side", string(placed.Side)).
		Str("amount", placed.Amount).
		Msg("order placed")
	return placed, nil
}

// Cancel cancels a tracked order. Terminal orders are refused locally
// without a venue round trip.
func (m *Manager) Cancel(ctx context.Context, id string) (*core.Order, error) {
	tracked, ok := m.Get(id)
	if !ok {
		return nil, fmt.Errorf("order not tracked: %s", id)
	}
	if tracked.Status.IsTerminal() {
		return nil, fmt.Errorf("order %s already %s", id, tracked.Status)
	}

	canceled, err := m.venue.CancelOrder(ctx, id, tracked.Symbol)
	if err != nil {
		return nil, err
	}
	if canceled.Symbol == "" {
		canceled.Symbol = tracked.Symbol
	}
	m.track(canceled)
	return canceled, nil
}

// Refresh re-fetches one tracked order from the venue and updates the
// local view.
func (m *Manager) Refresh(ctx context.Context, id string) (*core.Order, error) {
	tracked, ok := m.Get(id)
	if !ok {
		return nil, fmt.Errorf("order not tracked: %s", id)
	}

	fresh, err := m.venue.FetchOrder(ctx, id, tracked.Symbol)
	if err != nil {
		return nil, err
	}
	m.track(fresh)
	return fresh, nil
}

// RefreshOpen re-fetches every tracked non-terminal order.
func (m *Manager) RefreshOpen(ctx context.Context) error {
	var firstErr error
	for _, o := range m.Open() {
		if _, err := m.Refresh(ctx, o.ID); err != nil {
			m.logger.Warn().Err(err).Str("id", o.ID).Msg("order refresh failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Get returns a tracked order by exchange id.
func (m *Manager) Get(id string) (*core.Order, bool) {
	v, ok := m.orders.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*core.Order), true
}

// GetByClientID returns a tracked order by client order id.
func (m *Manager) GetByClientID(clientID string) (*core.Order, bool) {
	v, ok := m.clientID.Load(clientID)
	if !ok {
		return nil, false
	}
	return m.Get(v.(string))
}

// Open returns every tracked order not yet in a terminal state.
func (m *Manager) Open() []*core.Order {
	var open []*core.Order
	m.orders.Range(func(_, v any) bool {
		if o := v.(*core.Order); !o.Status.IsTerminal() {
			open = append(open, o)
		}
		return true
	})
	return open
}

// Forget drops a tracked order from the local view.
func (m *Manager) Forget(id string) {
	if o, ok := m.Get(id); ok && o.ClientOrderID != "" {
		m.clientID.Delete(o.ClientOrderID)
	}
	m.orders.Delete(id)
}

func (m *Manager) track(o *core.Order) {
	if o == nil || o.ID == "" {
		return
	}
	m.orders.Store(o.ID, o)
	if o.ClientOrderID != "" {
		m.clientID.Store(o.ClientOrderID, o.ID)
	}
}
