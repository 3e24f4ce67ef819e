// Package bybit adapts the Bybit v5 REST dialect to the unified exchange
// contract. One host serves every product line; requests select the market
// family with a category parameter, which is where spot, linear and inverse
// resolution surfaces on the wire.
package bybit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
	"github.com/Gsuz/ccxt/pkg/normalize"
	"github.com/Gsuz/ccxt/pkg/safe"
)

const (
	// ProductionURL is the live REST host.
	ProductionURL = "https://api.bybit.com"
	// SandboxURL is the testnet host.
	SandboxURL = "https://api-testnet.bybit.com"
)

var supportedTypes = map[core.MarketType]bool{
	core.MarketTypeSpot:   true,
	core.MarketTypeSwap:   true,
	core.MarketTypeFuture: true,
}

// marketCategories are the instrument families the adapter indexes.
var marketCategories = []string{"spot", "linear", "inverse"}

var _ exchange.Exchange = (*Bybit)(nil)

// Bybit implements the unified exchange contract for Bybit v5.
type Bybit struct {
	client   *exchange.Client
	features exchange.Features
	statuses normalize.OrderStatuses
	deposits normalize.TransactionStatuses
	payouts  normalize.TransactionStatuses
}

// Option configures optional adapter collaborators.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger sets the adapter logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Bybit adapter from the given session config.
func New(cfg *core.Config, opts ...Option) (*Bybit, error) {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	base := ProductionURL
	if cfg.Sandbox {
		base = SandboxURL
	}

	client, err := exchange.NewClient(cfg, base, errorMap, nil, o.logger)
	if err != nil {
		return nil, err
	}

	return &Bybit{
		client:   client,
		features: features,
		statuses: orderStatuses,
		deposits: depositStatuses,
		payouts:  withdrawalStatuses,
	}, nil
}

var features = exchange.Features{
	"FetchMarkets":        exchange.CapSupported,
	"FetchCurrencies":     exchange.CapSupported,
	"FetchTicker":         exchange.CapSupported,
	"FetchTickers":        exchange.CapSupported,
	"FetchOrderBook":      exchange.CapSupported,
	"FetchTrades":         exchange.CapSupported,
	"FetchOHLCV":          exchange.CapSupported,
	"FetchBalance":        exchange.CapSupported,
	"CreateOrder":         exchange.CapSupported,
	"CancelOrder":         exchange.CapSupported,
	"CancelAllOrders":     exchange.CapSupported,
	"FetchOrder":          exchange.CapSupported,
	"FetchOrders":         exchange.CapEmulated,
	"FetchOpenOrders":     exchange.CapSupported,
	"FetchClosedOrders":   exchange.CapSupported,
	"FetchMyTrades":       exchange.CapSupported,
	"FetchDepositAddress": exchange.CapSupported,
	"Withdraw":            exchange.CapSupported,
	"FetchDeposits":       exchange.CapSupported,
	"FetchWithdrawals":    exchange.CapSupported,
	"FetchTransactions":   exchange.CapEmulated,
}

// Name returns the exchange identifier "bybit".
func (b *Bybit) Name() string { return "bybit" }

// Features returns the adapter's capability flags.
func (b *Bybit) Features() exchange.Features { return b.features }

// Close releases the adapter's transport resources.
func (b *Bybit) Close() error { return b.client.Close() }

// SyncTime measures the server clock offset so signed request timestamps
// track Bybit time.
func (b *Bybit) SyncTime(ctx context.Context) error {
	req := core.NewRequest("GET", "/v5/market/time").SetCost(1)
	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return err
	}
	result, err := b.result(resp)
	if err != nil {
		return err
	}
	if nanos := safe.Integer(result, "timeNano", 0); nanos > 0 {
		b.client.Nonce().Sync(nanos / 1_000_000)
	}
	return nil
}

// LoadMarkets returns the cached market metadata, fetching on first use or
// when reload is set.
func (b *Bybit) LoadMarkets(ctx context.Context, reload bool) (map[string]*core.Market, error) {
	return b.client.LoadMarkets(ctx, reload, func(ctx context.Context) ([]*core.Market, []*core.Currency, error) {
		markets, err := b.FetchMarkets(ctx)
		if err != nil {
			return nil, nil, err
		}
		// The coin table is a signed endpoint; public sessions still get
		// the market table.
		currencies, err := b.FetchCurrencies(ctx)
		if err != nil {
			if core.IsAuthentication(err) {
				return markets, nil, nil
			}
			return nil, nil, err
		}
		return markets, currencies, nil
	})
}

// resolveCategory maps the resolved unified market type onto Bybit's wire
// category. Contract types split by settlement: linear contracts settle in
// the quote, inverse contracts in the base.
func (b *Bybit) resolveCategory(o *exchange.Options) (string, error) {
	t, sub, err := exchange.ResolveMarketType(b.Name(), o, b.client.Config(), supportedTypes)
	if err != nil {
		return "", err
	}
	if t == core.MarketTypeSpot {
		return "spot", nil
	}
	if sub == core.SubTypeInverse {
		return "inverse", nil
	}
	return "linear", nil
}

// marketCategory picks the category a specific market trades under,
// overriding whatever the session default would resolve to.
func marketCategory(m *core.Market) string {
	switch {
	case m.Type == core.MarketTypeSpot || m.Type == core.MarketTypeMargin:
		return "spot"
	case m.Inverse != nil && *m.Inverse:
		return "inverse"
	default:
		return "linear"
	}
}
