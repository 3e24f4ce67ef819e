// Package binance adapts the Binance REST dialect to the unified exchange
// contract. Spot and margin trading share one host: spot order flow lives
// under /api/v3, margin order flow and all funding endpoints under /sapi/v1.
package binance

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
	ProductionURL = "https://api.binance.com"
	// SandboxURL is the spot testnet host.
	SandboxURL = "https://testnet.binance.vision"
)

// currencyAliases substitutes Binance's quirky tickers with canonical codes.
var currencyAliases = map[string]string{
	"YOYO": "YOYOW",
	"BCC":  "BCH",
	"BCHA": "XEC",
}

var supportedTypes = map[core.MarketType]bool{
	core.MarketTypeSpot:   true,
	core.MarketTypeMargin: true,
}

var _ exchange.Exchange = (*Binance)(nil)

// Binance implements the unified exchange contract for Binance.
type Binance struct {
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

// New creates a Binance adapter from the given session config.
func New(cfg *core.Config, opts ...Option) (*Binance, error) {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	base := ProductionURL
	if cfg.Sandbox {
		base = SandboxURL
	}

	client, err := exchange.NewClient(cfg, base, errorMap, currencyAliases, o.logger)
	if err != nil {
		return nil, err
	}

	return &Binance{
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
	"FetchOrders":         exchange.CapSupported,
	"FetchOpenOrders":     exchange.CapSupported,
	"FetchClosedOrders":   exchange.CapEmulated,
	"FetchMyTrades":       exchange.CapSupported,
	"FetchDepositAddress": exchange.CapSupported,
	"Withdraw":            exchange.CapSupported,
	"FetchDeposits":       exchange.CapSupported,
	"FetchWithdrawals":    exchange.CapSupported,
	"FetchTransactions":   exchange.CapEmulated,
}

// Name returns the exchange identifier "binance".
func (b *Binance) Name() string { return "binance" }

// Features returns the adapter's capability flags.
func (b *Binance) Features() exchange.Features { return b.features }

// Close releases the adapter's transport resources.
func (b *Binance) Close() error { return b.client.Close() }

// SyncTime measures the server clock offset so signed request timestamps
// track Binance time. Optional; without it the local clock is trusted.
func (b *Binance) SyncTime(ctx context.Context) error {
	req := core.NewRequest("GET", "/api/v3/time").SetCost(1)
	resp, err := b.client.Call(ctx, req)
	if err != nil {
		return err
	}
	body, err := b.object(resp)
	if err != nil {
		return err
	}
	serverTime := safe.Integer(body, "serverTime", 0)
	if serverTime > 0 {
		b.client.Nonce().Sync(serverTime)
	}
	return nil
}

// LoadMarkets returns the cached market metadata, fetching on first use or
// when reload is set.
func (b *Binance) LoadMarkets(ctx context.Context, reload bool) (map[string]*core.Market, error) {
	return b.client.LoadMarkets(ctx, reload, func(ctx context.Context) ([]*core.Market, []*core.Currency, error) {
		markets, err := b.FetchMarkets(ctx)
		if err != nil {
			return nil, nil, err
		}
		// Currency listings require credentials; public sessions still get
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

func (b *Binance) resolveType(o *exchange.Options) (core.MarketType, error) {
	t, _, err := exchange.ResolveMarketType(b.Name(), o, b.client.Config(), supportedTypes)
	return t, err
}
