// Package aggregate combines market data from several venues behind the
// unified contract: best prices, merged depth, cross-venue VWAP and
// arbitrage spreads. All arithmetic stays in exact decimal strings.
package aggregate

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
	"github.com/Gsuz/ccxt/pkg/precise"
)

// divisionPlaces bounds the quotient scale for ratios and averages.
const divisionPlaces = 8

// Aggregator fans requests out to registered venues concurrently and
// merges the results. Safe for concurrent use.
type Aggregator struct {
	mu     sync.RWMutex
	venues map[string]exchange.Exchange
	logger zerolog.Logger
}

// New creates an aggregator with no venues registered.
func New() *Aggregator {
	return &Aggregator{
		venues: make(map[string]exchange.Exchange),
		logger: zerolog.Nop(),
	}
}

// NewWithLogger creates an aggregator with a custom logger.
func NewWithLogger(logger zerolog.Logger) *Aggregator {
	a := New()
	a.logger = logger
	return a
}

// Add registers a venue under its own name.
func (a *Aggregator) Add(ex exchange.Exchange) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.venues[ex.Name()] = ex
}

// Remove unregisters a venue.
func (a *Aggregator) Remove(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.venues, name)
}

// Venues returns the registered venue names in sorted order.
func (a *Aggregator) Venues() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.venues))
	for name := range a.venues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *Aggregator) snapshot() map[string]exchange.Exchange {
	a.mu.RLock()
	defer a.mu.RUnlock()
	venues := make(map[string]exchange.Exchange, len(a.venues))
	maps.Copy(venues, a.venues)
	return venues
}

// TickerResult holds the ticker or error from a single venue.
type TickerResult struct {
	Exchange string       `json:"exchange"`
	Ticker   *core.Ticker `json:"ticker,omitempty"`
	Error    error        `json:"error,omitempty"`
}

// Tickers fetches the symbol's ticker from every registered venue
// concurrently. Per-venue failures land in the result, never abort the
// whole fan-out.
func (a *Aggregator) Tickers(ctx context.Context, symbol string) []TickerResult {
	venues := a.snapshot()

	resultChan := make(chan TickerResult, len(venues))
	var wg sync.WaitGroup
	for name, ex := range venues {
		wg.Add(1)
		go func(name string, ex exchange.Exchange) {
			defer wg.Done()

			result := TickerResult{Exchange: name}
			ticker, err := ex.FetchTicker(ctx, symbol)
			if err != nil {
				a.logger.Debug().Err(err).Str("exchange", name).Str("symbol", symbol).Msg("ticker fetch failed")
				result.Error = err
			} else {
				result.Ticker = ticker
			}
			resultChan <- result
		}(name, ex)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]TickerResult, 0, len(venues))
	for r := range resultChan {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Exchange < results[j].Exchange })
	return results
}

// BestPrice is the highest bid and lowest ask found across venues.
type BestPrice struct {
	Symbol        string `json:"symbol"`
	Bid           string `json:"bid"`
	Ask           string `json:"ask"`
	BidExchange   string `json:"bidExchange"`
	AskExchange   string `json:"askExchange"`
	Spread        string `json:"spread"`
	SpreadPercent string `json:"spreadPercent"`
	Timestamp     int64  `json:"timestamp"`
}

// BestPrice finds the best bid and ask for a symbol across every venue.
func (a *Aggregator) BestPrice(ctx context.Context, symbol string) (*BestPrice, error) {
	best := &BestPrice{Symbol: symbol}
	for _, result := range a.Tickers(ctx, symbol) {
		if result.Error != nil || result.Ticker == nil {
			continue
		}
		t := result.Ticker
		if t.Bid != "" && (best.Bid == "" || precise.Cmp(t.Bid, best.Bid) > 0) {
			best.Bid = t.Bid
			best.BidExchange = result.Exchange
		}
		if t.Ask != "" && (best.Ask == "" || precise.Cmp(t.Ask, best.Ask) < 0) {
			best.Ask = t.Ask
			best.AskExchange = result.Exchange
		}
		if t.Timestamp > best.Timestamp {
			best.Timestamp = t.Timestamp
		}
	}

	if best.Bid == "" && best.Ask == "" {
		return nil, core.NewError("aggregate", core.KindExchangeError, 0, "no ticker data for "+symbol)
	}

	best.Spread = precise.Sub(best.Ask, best.Bid)
	if best.Bid != "" && !precise.IsZero(best.Bid) {
		best.SpreadPercent = precise.Div(precise.Mul(best.Spread, "100"), best.Bid, divisionPlaces)
	}
	return best, nil
}

type bookResult struct {
	exchange string
	book     *core.OrderBook
	err      error
}

func (a *Aggregator) books(ctx context.Context, symbol string, depth int) <-chan bookResult {
	venues := a.snapshot()

	var opts []exchange.Option
	if depth > 0 {
		opts = append(opts, exchange.WithLimit(depth))
	}

	resultChan := make(chan bookResult, len(venues))
	var wg sync.WaitGroup
	for name, ex := range venues {
		wg.Add(1)
		go func(name string, ex exchange.Exchange) {
			defer wg.Done()

			book, err := ex.FetchOrderBook(ctx, symbol, opts...)
			if err != nil {
				a.logger.Debug().Err(err).Str("exchange", name).Str("symbol", symbol).Msg("order book fetch failed")
				resultChan <- bookResult{exchange: name, err: err}
				return
			}
			resultChan <- bookResult{exchange: name, book: book}
		}(name, ex)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()
	return resultChan
}

// VWAPResult is the volume-weighted average price over the visible depth
// of every venue.
type VWAPResult struct {
	Symbol    string   `json:"symbol"`
	VWAP      string   `json:"vwap"`
	Volume    string   `json:"volume"`
	Levels    int      `json:"levels"`
	Exchanges []string `json:"exchanges"`
}

// VWAP computes the volume-weighted average price across venues. The depth
// parameter bounds the book levels included per venue.
func (a *Aggregator) VWAP(ctx context.Context, symbol string, depth int) (*VWAPResult, error) {
	totalValue := "0"
	totalVolume := "0"
	levels := 0
	var exchanges []string

	for r := range a.books(ctx, symbol, depth) {
		if r.err != nil || r.book == nil {
			continue
		}
		exchanges = append(exchanges, r.exchange)
		for _, level := range append(r.book.Bids, r.book.Asks...) {
			totalValue = precise.Add(totalValue, precise.Mul(level.Price, level.Amount))
			totalVolume = precise.Add(totalVolume, level.Amount)
			levels++
		}
	}

	if precise.IsZero(totalVolume) {
		return nil, core.NewError("aggregate", core.KindExchangeError, 0, "no order book data for "+symbol)
	}

	sort.Strings(exchanges)
	return &VWAPResult{
		Symbol:    symbol,
		VWAP:      precise.Div(totalValue, totalVolume, divisionPlaces),
		Volume:    totalVolume,
		Levels:    levels,
		Exchanges: exchanges,
	}, nil
}

// MergedOrderBook combines depth from several venues; levels at the same
// price merge by summing amounts.
type MergedOrderBook struct {
	Symbol    string           `json:"symbol"`
	Bids      []core.BookLevel `json:"bids"`
	Asks      []core.BookLevel `json:"asks"`
	Timestamp int64            `json:"timestamp"`
	Exchanges []string         `json:"exchanges"`
}

// MergedOrderBook merges the order books of every venue. Bids sort by
// price descending, asks ascending; depth bounds each side when positive.
func (a *Aggregator) MergedOrderBook(ctx context.Context, symbol string, depth int) (*MergedOrderBook, error) {
	bidAmounts := make(map[string]string)
	askAmounts := make(map[string]string)
	merged := &MergedOrderBook{Symbol: symbol}

	for r := range a.books(ctx, symbol, depth) {
		if r.err != nil || r.book == nil {
			continue
		}
		merged.Exchanges = append(merged.Exchanges, r.exchange)
		if r.book.Timestamp > merged.Timestamp {
			merged.Timestamp = r.book.Timestamp
		}
		for _, level := range r.book.Bids {
			addLevel(bidAmounts, level)
		}
		for _, level := range r.book.Asks {
			addLevel(askAmounts, level)
		}
	}

	if len(bidAmounts) == 0 && len(askAmounts) == 0 {
		return nil, core.NewError("aggregate", core.KindExchangeError, 0, "no order book data for "+symbol)
	}

	merged.Bids = sortLevels(bidAmounts, true, depth)
	merged.Asks = sortLevels(askAmounts, false, depth)
	sort.Strings(merged.Exchanges)
	return merged, nil
}

func addLevel(amounts map[string]string, level core.BookLevel) {
	if existing, ok := amounts[level.Price]; ok {
		amounts[level.Price] = precise.Add(existing, level.Amount)
		return
	}
	amounts[level.Price] = level.Amount
}

func sortLevels(amounts map[string]string, descending bool, depth int) []core.BookLevel {
	levels := make([]core.BookLevel, 0, len(amounts))
	for price, amount := range amounts {
		levels = append(levels, core.BookLevel{Price: price, Amount: amount})
	}
	sort.Slice(levels, func(i, j int) bool {
		cmp := precise.Cmp(levels[i].Price, levels[j].Price)
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	if depth > 0 && len(levels) > depth {
		levels = levels[:depth]
	}
	return levels
}

// ArbitrageOpportunity is a cross-venue spread: buy at one venue's ask,
// sell at another's bid.
type ArbitrageOpportunity struct {
	Symbol        string `json:"symbol"`
	BuyExchange   string `json:"buyExchange"`
	SellExchange  string `json:"sellExchange"`
	BuyPrice      string `json:"buyPrice"`
	SellPrice     string `json:"sellPrice"`
	Spread        string `json:"spread"`
	SpreadPercent string `json:"spreadPercent"`
}

// FindArbitrage lists venue pairs whose bid/ask spread exceeds
// minSpreadPercent, sorted widest first. At least two venues must answer.
func (a *Aggregator) FindArbitrage(ctx context.Context, symbol, minSpreadPercent string) ([]ArbitrageOpportunity, error) {
	var valid []TickerResult
	for _, result := range a.Tickers(ctx, symbol) {
		if result.Error == nil && result.Ticker != nil {
			valid = append(valid, result)
		}
	}
	if len(valid) < 2 {
		return nil, core.NewError("aggregate", core.KindExchangeError, 0, "arbitrage detection needs at least 2 venues with data")
	}

	var opportunities []ArbitrageOpportunity
	for i, buy := range valid {
		for j, sell := range valid {
			if i == j {
				continue
			}
			buyPrice := buy.Ticker.Ask
			sellPrice := sell.Ticker.Bid
			if buyPrice == "" || sellPrice == "" || precise.IsZero(buyPrice) {
				continue
			}

			spread := precise.Sub(sellPrice, buyPrice)
			spreadPercent := precise.Div(precise.Mul(spread, "100"), buyPrice, divisionPlaces)
			if precise.Cmp(spreadPercent, minSpreadPercent) < 0 {
				continue
			}

			opportunities = append(opportunities, ArbitrageOpportunity{
				Symbol:        symbol,
				BuyExchange:   buy.Exchange,
				SellExchange:  sell.Exchange,
				BuyPrice:      buyPrice,
				SellPrice:     sellPrice,
				Spread:        spread,
				SpreadPercent: spreadPercent,
			})
		}
	}

	sort.Slice(opportunities, func(i, j int) bool {
		return precise.Cmp(opportunities[i].SpreadPercent, opportunities[j].SpreadPercent) > 0
	})
	return opportunities, nil
}
