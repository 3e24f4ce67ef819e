package exchange

import "github.com/Gsuz/ccxt/pkg/core"

// Option mutates the per-call options bag.
type Option func(*Options)

// Options carries the recognized per-call parameters of the unified
// methods. Anything an adapter does not consume from Params is forwarded to
// the venue request verbatim.
type Options struct {
	// Type selects the market type for this call; empty falls back to the
	// configured default.
	Type core.MarketType
	// SubType selects the contract family for derivative calls.
	SubType core.SubType
	// Limit bounds the number of returned records; it also feeds the tiered
	// rate-limit cost calculation.
	Limit int
	// Since is a millisecond lower time bound.
	Since int64
	// Until is a millisecond upper time bound.
	Until int64
	// PostOnly rejects an order that would fill immediately.
	PostOnly bool
	// TriggerPrice arms a stop or take-profit order.
	TriggerPrice string
	// TimeInForce overrides the venue's default order lifetime.
	TimeInForce string
	// ClientOrderID tags the order with a caller-chosen identifier.
	ClientOrderID string
	// Network selects a transfer network for funding operations.
	Network string
	// Params holds unrecognized keys, forwarded verbatim.
	Params core.Params
}

// Apply folds a list of Option values into a fresh Options bag.
func Apply(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithType selects the market type for one call.
func WithType(t core.MarketType) Option {
	return func(o *Options) { o.Type = t }
}

// WithSubType selects the contract family for one call.
func WithSubType(s core.SubType) Option {
	return func(o *Options) { o.SubType = s }
}

// WithLimit bounds the number of returned records.
func WithLimit(limit int) Option {
	return func(o *Options) { o.Limit = limit }
}

// WithSince sets the millisecond lower time bound.
func WithSince(since int64) Option {
	return func(o *Options) { o.Since = since }
}

// WithUntil sets the millisecond upper time bound.
func WithUntil(until int64) Option {
	return func(o *Options) { o.Until = until }
}

// WithPostOnly marks an order post-only.
func WithPostOnly() Option {
	return func(o *Options) { o.PostOnly = true }
}

// WithTriggerPrice arms a stop or take-profit order at the given price.
func WithTriggerPrice(price string) Option {
	return func(o *Options) { o.TriggerPrice = price }
}

// WithTimeInForce overrides the order lifetime policy.
func WithTimeInForce(tif string) Option {
	return func(o *Options) { o.TimeInForce = tif }
}

// WithClientOrderID tags an order with a caller-chosen identifier.
func WithClientOrderID(id string) Option {
	return func(o *Options) { o.ClientOrderID = id }
}

// WithNetwork selects the transfer network for funding operations.
func WithNetwork(network string) Option {
	return func(o *Options) { o.Network = network }
}

// WithParams forwards venue-specific parameters verbatim.
func WithParams(params core.Params) Option {
	return func(o *Options) {
		if o.Params == nil {
			o.Params = make(core.Params, len(params))
		}
		for k, v := range params {
			o.Params[k] = v
		}
	}
}
