// Package order offers a fluent builder for well-formed order requests and
// a manager that tracks order lifecycle against any venue behind the
// unified contract.
package order

import (
	"fmt"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
	"github.com/Gsuz/ccxt/pkg/precise"
)

// Builder accumulates order parameters and validation errors, reporting
// them on Build.
//
// Example:
//
//	req, opts, err := order.NewBuilder("BTC/USDT").
//	    Buy().
//	    Limit().
//	    Price("50000").
//	    Amount("0.001").
//	    Build()
type Builder struct {
	req  exchange.OrderRequest
	opts []exchange.Option
	err  error
}

// NewBuilder creates a builder for the given unified symbol.
func NewBuilder(symbol string) *Builder {
	return &Builder{req: exchange.OrderRequest{Symbol: symbol}}
}

// Side sets the order side.
func (b *Builder) Side(side core.OrderSide) *Builder {
	b.req.Side = side
	return b
}

// Buy sets the order side to buy.
func (b *Builder) Buy() *Builder { return b.Side(core.SideBuy) }

// Sell sets the order side to sell.
func (b *Builder) Sell() *Builder { return b.Side(core.SideSell) }

// Type sets the order type.
func (b *Builder) Type(t core.OrderType) *Builder {
	b.req.Type = t
	return b
}

// Market sets the order type to market.
func (b *Builder) Market() *Builder { return b.Type(core.TypeMarket) }

// Limit sets the order type to limit.
func (b *Builder) Limit() *Builder { return b.Type(core.TypeLimit) }

// Price sets the limit price as a decimal string.
func (b *Builder) Price(price string) *Builder {
	if b.err == nil && !precise.Valid(price) {
		b.err = fmt.Errorf("parse price: %q is not a decimal", price)
		return b
	}
	b.req.Price = price
	return b
}

// Amount sets the order amount in base units as a decimal string.
func (b *Builder) Amount(amount string) *Builder {
	if b.err == nil && !precise.Valid(amount) {
		b.err = fmt.Errorf("parse amount: %q is not a decimal", amount)
		return b
	}
	b.req.Amount = amount
	return b
}

// ClientOrderID sets a client-assigned identifier for order tracking.
func (b *Builder) ClientOrderID(id string) *Builder {
	b.req.ClientOrderID = id
	return b
}

// PostOnly marks the order as maker-only.
func (b *Builder) PostOnly() *Builder {
	b.opts = append(b.opts, exchange.WithPostOnly())
	return b
}

// TimeInForce sets the time-in-force policy.
func (b *Builder) TimeInForce(tif string) *Builder {
	b.opts = append(b.opts, exchange.WithTimeInForce(tif))
	return b
}

// TriggerPrice arms the order as a stop with the given trigger.
func (b *Builder) TriggerPrice(price string) *Builder {
	if b.err == nil && !precise.Valid(price) {
		b.err = fmt.Errorf("parse trigger price: %q is not a decimal", price)
		return b
	}
	b.opts = append(b.opts, exchange.WithTriggerPrice(price))
	return b
}

// Build validates and returns the request plus the accumulated options.
func (b *Builder) Build() (*exchange.OrderRequest, []exchange.Option, error) {
	if b.err != nil {
		return nil, nil, b.err
	}
	if err := validate(&b.req); err != nil {
		return nil, nil, err
	}
	req := b.req
	return &req, b.opts, nil
}

func validate(req *exchange.OrderRequest) error {
	if req.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if req.Side != core.SideBuy && req.Side != core.SideSell {
		return fmt.Errorf("invalid order side %q", req.Side)
	}
	if req.Type != core.TypeMarket && req.Type != core.TypeLimit {
		return fmt.Errorf("invalid order type %q", req.Type)
	}
	if req.Amount == "" || precise.IsZero(req.Amount) || precise.IsNegative(req.Amount) {
		return fmt.Errorf("amount must be positive")
	}
	if req.Type == core.TypeLimit {
		if req.Price == "" || precise.IsZero(req.Price) || precise.IsNegative(req.Price) {
			return fmt.Errorf("price must be positive for limit orders")
		}
	}
	return nil
}
