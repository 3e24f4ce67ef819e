package exchange

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gsuz/ccxt/pkg/core"
)

var allTypes = map[core.MarketType]bool{
	core.MarketTypeSpot:   true,
	core.MarketTypeMargin: true,
	core.MarketTypeSwap:   true,
	core.MarketTypeFuture: true,
}

func TestResolveMarketType_DefaultsToSpot(t *testing.T) {
	typ, sub, err := ResolveMarketType("test", Apply(), core.DefaultConfig("test"), allTypes)
	require.NoError(t, err)
	assert.Equal(t, core.MarketTypeSpot, typ)
	assert.Equal(t, core.SubType(""), sub)
}

func TestResolveMarketType_OptionsWinOverConfig(t *testing.T) {
	cfg := core.DefaultConfig("test")
	cfg.DefaultType = core.MarketTypeSpot

	typ, sub, err := ResolveMarketType("test", Apply(WithType(core.MarketTypeSwap)), cfg, allTypes)
	require.NoError(t, err)
	assert.Equal(t, core.MarketTypeSwap, typ)
	assert.Equal(t, core.SubTypeLinear, sub, "contracts default to linear")
}

func TestResolveMarketType_ConfigDefaultApplies(t *testing.T) {
	cfg := core.DefaultConfig("test")
	cfg.DefaultType = core.MarketTypeSwap
	cfg.DefaultSubType = core.SubTypeInverse

	typ, sub, err := ResolveMarketType("test", Apply(), cfg, allTypes)
	require.NoError(t, err)
	assert.Equal(t, core.MarketTypeSwap, typ)
	assert.Equal(t, core.SubTypeInverse, sub)
}

func TestResolveMarketType_SubTypeOnSpotRejected(t *testing.T) {
	_, _, err := ResolveMarketType("test", Apply(WithSubType(core.SubTypeLinear)), core.DefaultConfig("test"), allTypes)
	require.Error(t, err)
	assert.True(t, core.IsNotSupported(err))
}

func TestResolveMarketType_ConfiguredSubTypeIgnoredOnSpot(t *testing.T) {
	cfg := core.DefaultConfig("test")
	cfg.DefaultSubType = core.SubTypeInverse

	typ, sub, err := ResolveMarketType("test", Apply(), cfg, allTypes)
	require.NoError(t, err)
	assert.Equal(t, core.MarketTypeSpot, typ)
	assert.Equal(t, core.SubType(""), sub)
}

func TestResolveMarketType_UndeclaredTypeRejected(t *testing.T) {
	spotOnly := map[core.MarketType]bool{core.MarketTypeSpot: true}
	_, _, err := ResolveMarketType("test", Apply(WithType(core.MarketTypeSwap)), core.DefaultConfig("test"), spotOnly)
	require.Error(t, err)
	assert.True(t, core.IsNotSupported(err))
}

func TestResolveMarketType_InvalidTypeRejected(t *testing.T) {
	_, _, err := ResolveMarketType("test", Apply(WithType("perpetual")), core.DefaultConfig("test"), allTypes)
	require.Error(t, err)
	assert.True(t, core.IsNotSupported(err))
}

func TestResolveMarketType_InvalidSubTypeRejected(t *testing.T) {
	_, _, err := ResolveMarketType("test",
		Apply(WithType(core.MarketTypeSwap), WithSubType("quanto")),
		core.DefaultConfig("test"), allTypes)
	require.Error(t, err)
	assert.True(t, core.IsNotSupported(err))
}

type fakeAdapter struct {
	Exchange
	name   string
	closed bool
	err    error
}

func (f *fakeAdapter) Name() string { return f.name }
func (f *fakeAdapter) Close() error { f.closed = true; return f.err }

func TestContainer_RegisterAndGet(t *testing.T) {
	c := NewContainer()
	assert.False(t, c.Exists("binance"))
	assert.Empty(t, c.Names())

	c.Register("binance", &fakeAdapter{name: "binance"})
	assert.True(t, c.Exists("binance"))

	_, err := c.Get("bybit")
	require.Error(t, err)

	c.Unregister("binance")
	assert.False(t, c.Exists("binance"))
}

func TestContainer_NamesSorted(t *testing.T) {
	c := NewContainer()
	c.Register("bybit", &fakeAdapter{name: "bybit"})
	c.Register("alpha", &fakeAdapter{name: "alpha"})
	c.Register("binance", &fakeAdapter{name: "binance"})
	assert.Equal(t, []string{"alpha", "binance", "bybit"}, c.Names())
}

func TestContainer_EachVisitsInOrder(t *testing.T) {
	c := NewContainer()
	c.Register("bybit", &fakeAdapter{name: "bybit"})
	c.Register("binance", &fakeAdapter{name: "binance"})

	var visited []string
	err := c.Each(func(name string, ex Exchange) error {
		visited = append(visited, ex.Name())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"binance", "bybit"}, visited)
}

func TestContainer_EachStopsOnError(t *testing.T) {
	c := NewContainer()
	c.Register("a", &fakeAdapter{name: "a"})
	c.Register("b", &fakeAdapter{name: "b"})
	c.Register("c", &fakeAdapter{name: "c"})

	var visited []string
	err := c.Each(func(name string, ex Exchange) error {
		visited = append(visited, name)
		if name == "b" {
			return errors.New("venue down")
		}
		return nil
	})
	require.EqualError(t, err, "venue down")
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestContainer_CloseClosesAll(t *testing.T) {
	c := NewContainer()
	good := &fakeAdapter{name: "good"}
	bad := &fakeAdapter{name: "bad", err: errors.New("socket already closed")}
	c.Register("good", good)
	c.Register("bad", bad)

	err := c.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close bad")
	assert.True(t, good.closed)
	assert.True(t, bad.closed)
	assert.Empty(t, c.Names())
}
