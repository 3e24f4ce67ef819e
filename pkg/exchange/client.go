package exchange

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/Gsuz/ccxt/internal/circuitbreaker"
	"github.com/Gsuz/ccxt/internal/keyring"
	"github.com/Gsuz/ccxt/internal/ratelimit"
	"github.com/Gsuz/ccxt/internal/signer"
	"github.com/Gsuz/ccxt/internal/transport"
	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/normalize"
)

// Client is the shared dispatch machinery every adapter composes: the
// transport bound to the venue's base URL, the cost-weighted limiter, the
// circuit breaker, the credential ring, the nonce source and the atomically
// swapped market metadata index. Adapters import it as a library; there is
// no inheritance chain to override.
type Client struct {
	name     string
	cfg      *core.Config
	http     *transport.Client
	limiter  *ratelimit.Limiter
	breaker  *circuitbreaker.Breaker
	keys     *keyring.Ring
	nonce    signer.Nonce
	logger   zerolog.Logger
	errorMap ErrorMap
	aliases  map[string]string

	index  atomic.Pointer[normalize.Index]
	loadMu sync.Mutex
}

// NewClient validates the config and assembles a dispatch client. aliases
// is the adapter's currency-alias substitution table; errorMap its
// classification tables. Both are treated as immutable after this call.
func NewClient(cfg *core.Config, baseURL string, errorMap ErrorMap, aliases map[string]string, logger zerolog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		name:     cfg.Exchange,
		cfg:      cfg,
		http:     transport.NewClient(baseURL, cfg.Timeout, logger),
		limiter:  ratelimit.New(cfg.RateLimitCost, cfg.RateLimitPeriod),
		logger:   logger,
		errorMap: errorMap,
		aliases:  aliases,
	}
	if cfg.CircuitBreakerEnabled {
		c.breaker = circuitbreaker.New(
			cfg.CircuitBreakerFailThreshold,
			cfg.CircuitBreakerSuccessThreshold,
			cfg.CircuitBreakerTimeout,
		)
	}
	if cfg.Credentials != nil {
		c.keys = keyring.New(*cfg.Credentials)
	} else {
		c.keys = keyring.New()
	}
	return c, nil
}

// Name returns the exchange identifier.
func (c *Client) Name() string { return c.name }

// Config returns the session configuration.
func (c *Client) Config() *core.Config { return c.cfg }

// Logger returns the session logger.
func (c *Client) Logger() zerolog.Logger { return c.logger }

// Errors returns the adapter's classification tables.
func (c *Client) Errors() ErrorMap { return c.errorMap }

// Nonce returns the session nonce source.
func (c *Client) Nonce() *signer.Nonce { return &c.nonce }

// Credentials returns the active API credentials, failing with an
// authentication error before any network traffic when none are configured.
func (c *Client) Credentials() (core.Credentials, error) {
	creds, ok := c.keys.Current()
	if !ok {
		e := core.NewError(c.name, core.KindAuthentication, 0, core.ErrNoCredentials.Error())
		return core.Credentials{}, e
	}
	return creds, nil
}

// RotateCredentials advances to the next configured API key. Adapters call
// it after an InvalidNonce or throttling rejection when several keys are
// configured.
func (c *Client) RotateCredentials() {
	if c.keys.Len() > 1 {
		c.keys.Rotate()
		c.logger.Warn().Str("exchange", c.name).Msg("rotated api credentials")
	}
}

// Call executes one fully-built request descriptor: the weighted cost is
// consumed from the limiter first, the breaker gates the dispatch, and
// transport-level failures come back classified. Non-2xx responses are
// returned to the adapter untouched — error body shapes are venue-specific
// and classification happens there.
func (c *Client) Call(ctx context.Context, req *core.Request) (*transport.Response, error) {
	if err := c.limiter.WaitCost(ctx, req.Cost); err != nil {
		return nil, err
	}
	if c.breaker != nil && !c.breaker.Allow() {
		return nil, core.NewError(c.name, core.KindExchangeNotAvailable, 0, "circuit breaker open")
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if c.breaker != nil {
			c.breaker.Failure()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, core.NewError(c.name, core.KindRequestTimeout, 0, err.Error())
		}
		return nil, core.NewError(c.name, core.KindNetwork, 0, err.Error())
	}

	if c.breaker != nil {
		// Server-level breakdown trips the breaker; business errors do not.
		if resp.StatusCode >= 500 {
			c.breaker.Failure()
		} else {
			c.breaker.Success()
		}
	}
	return resp, nil
}

// Index returns the current market metadata index, nil before the first
// LoadMarkets.
func (c *Client) Index() *normalize.Index {
	return c.index.Load()
}

// MarketIndex returns the index or fails when markets were never loaded.
func (c *Client) MarketIndex() (*normalize.Index, error) {
	if x := c.index.Load(); x != nil {
		return x, nil
	}
	return nil, core.NewError(c.name, core.KindExchangeError, 0, core.ErrMarketsNotLoaded.Error())
}

// Market resolves a unified symbol strictly against the loaded metadata.
func (c *Client) Market(symbol string) (*core.Market, error) {
	x, err := c.MarketIndex()
	if err != nil {
		return nil, err
	}
	return x.Market(c.name, symbol)
}

// LoadMarkets returns the cached metadata, invoking fetch on first use or
// when reload is set. The new index replaces the old one atomically, so
// concurrent readers always see a complete table; concurrent reloads
// collapse into one fetch.
func (c *Client) LoadMarkets(ctx context.Context, reload bool, fetch func(context.Context) ([]*core.Market, []*core.Currency, error)) (map[string]*core.Market, error) {
	if !reload {
		if x := c.index.Load(); x != nil {
			return x.Markets(), nil
		}
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	// A concurrent reload may have landed while this one waited.
	if !reload {
		if x := c.index.Load(); x != nil {
			return x.Markets(), nil
		}
	}

	markets, currencies, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	x := normalize.NewIndex(markets, currencies, c.aliases)
	c.index.Store(x)
	c.logger.Debug().
		Str("exchange", c.name).
		Int("markets", len(markets)).
		Int("currencies", len(currencies)).
		Msg("market metadata loaded")
	return x.Markets(), nil
}

// Close releases the transport resources.
func (c *Client) Close() error {
	return c.http.Close()
}
