// Package exchange defines the unified contract every venue adapter
// implements, plus the shared machinery adapters compose instead of
// inheriting: market-type resolution, rate-limit cost calculation, two-tier
// error classification, and the request/dispatch client with its atomically
// swapped market metadata cache.
package exchange

import (
	"context"

	"github.com/Gsuz/ccxt/pkg/core"
)

// Capability declares whether and how an adapter supports one operation.
type Capability int8

// Capability constants form the four-state flag the contract requires.
const (
	// CapUndefined means unimplemented but theoretically supported.
	CapUndefined Capability = iota
	// CapSupported means the operation maps to a native endpoint.
	CapSupported
	// CapUnsupported means the venue cannot perform the operation at all.
	CapUnsupported
	// CapEmulated means the adapter synthesizes the operation from others.
	CapEmulated
)

// Features maps operation names (the interface method names) to their
// capability flags. It is immutable per-adapter configuration.
type Features map[string]Capability

// Has returns the declared capability for an operation, CapUndefined when
// the adapter declares nothing.
func (f Features) Has(op string) Capability {
	return f[op]
}

// OrderRequest carries the parameters of a new order. Amount and Price are
// decimal strings; the adapter converts them to the market's precision
// before they reach the wire.
type OrderRequest struct {
	Symbol        string
	Type          core.OrderType
	Side          core.OrderSide
	Amount        string
	Price         string
	ClientOrderID string
}

// Exchange is the unified capability set. Not every adapter implements
// every operation; unimplemented ones return a NotSupported error and are
// declared in Features. Every method accepts an options list whose
// unrecognized parameters pass through verbatim to the venue request.
type Exchange interface {
	Name() string
	Features() Features

	// Close releases the adapter's transport and background resources.
	Close() error

	// LoadMarkets returns the cached market metadata, fetching it on first
	// use or when reload is true. The reload atomically replaces the cache;
	// concurrent readers never observe a partial update.
	LoadMarkets(ctx context.Context, reload bool) (map[string]*core.Market, error)
	FetchMarkets(ctx context.Context) ([]*core.Market, error)
	FetchCurrencies(ctx context.Context) ([]*core.Currency, error)

	FetchTicker(ctx context.Context, symbol string, opts ...Option) (*core.Ticker, error)
	FetchTickers(ctx context.Context, symbols []string, opts ...Option) (map[string]*core.Ticker, error)
	FetchOrderBook(ctx context.Context, symbol string, opts ...Option) (*core.OrderBook, error)
	FetchTrades(ctx context.Context, symbol string, opts ...Option) ([]core.Trade, error)
	FetchOHLCV(ctx context.Context, symbol, timeframe string, opts ...Option) ([]core.OHLCV, error)

	FetchBalance(ctx context.Context, opts ...Option) (*core.Balances, error)

	CreateOrder(ctx context.Context, req *OrderRequest, opts ...Option) (*core.Order, error)
	CancelOrder(ctx context.Context, id, symbol string, opts ...Option) (*core.Order, error)
	CancelAllOrders(ctx context.Context, symbol string, opts ...Option) ([]core.Order, error)
	FetchOrder(ctx context.Context, id, symbol string, opts ...Option) (*core.Order, error)
	FetchOrders(ctx context.Context, symbol string, opts ...Option) ([]core.Order, error)
	FetchOpenOrders(ctx context.Context, symbol string, opts ...Option) ([]core.Order, error)
	FetchClosedOrders(ctx context.Context, symbol string, opts ...Option) ([]core.Order, error)
	FetchMyTrades(ctx context.Context, symbol string, opts ...Option) ([]core.Trade, error)

	FetchDepositAddress(ctx context.Context, code string, opts ...Option) (*core.DepositAddress, error)
	Withdraw(ctx context.Context, code, amount, address, tag string, opts ...Option) (*core.Transaction, error)
	FetchDeposits(ctx context.Context, code string, opts ...Option) ([]core.Transaction, error)
	FetchWithdrawals(ctx context.Context, code string, opts ...Option) ([]core.Transaction, error)
	FetchTransactions(ctx context.Context, code string, opts ...Option) ([]core.Transaction, error)
}
