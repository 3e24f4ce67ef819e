package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ExchangeError", KindExchangeError.String())
	assert.Equal(t, "AuthenticationError", KindAuthentication.String())
	assert.Equal(t, "RateLimitExceeded", KindRateLimitExceeded.String())
	assert.Equal(t, "RequestTimeout", KindRequestTimeout.String())
}

func TestExchangeError_ErrorText(t *testing.T) {
	err := NewErrorWithCode("binance", KindInsufficientFunds, 400, "-2010", "Account has insufficient balance")
	assert.Contains(t, err.Error(), "binance")
	assert.Contains(t, err.Error(), "-2010")
	assert.Contains(t, err.Error(), "InsufficientFunds")
	assert.Contains(t, err.Error(), "Account has insufficient balance")
}

func TestExchangeError_ErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("fetch order: %w", NewError("bybit", KindOrderNotFound, 404, "order not found"))

	var ex *ExchangeError
	require.True(t, errors.As(wrapped, &ex))
	assert.Equal(t, KindOrderNotFound, ex.Kind)
	assert.Equal(t, "bybit", ex.Exchange)

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindOrderNotFound, kind)
}

func TestKindOf_PlainError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsKind(errors.New("plain"), KindExchangeError))
}

func TestIsKind_Helpers(t *testing.T) {
	assert.True(t, IsAuthentication(NewError("x", KindAuthentication, 401, "bad key")))
	assert.True(t, IsRateLimit(NewError("x", KindRateLimitExceeded, 429, "slow down")))
	assert.True(t, IsRateLimit(NewError("x", KindDDoSProtection, 403, "banned")))
	assert.True(t, IsUnavailable(NewError("x", KindExchangeNotAvailable, 503, "down")))
	assert.True(t, IsInvalidNonce(NewError("x", KindInvalidNonce, 400, "clock skew")))
	assert.False(t, IsAuthentication(NewError("x", KindExchangeError, 500, "boom")))
}

func TestNotSupported_Message(t *testing.T) {
	err := NotSupported("bybit", "FetchOHLCV without timeframe")
	assert.True(t, IsNotSupported(err))
	assert.Contains(t, err.Error(), "FetchOHLCV without timeframe is not supported")
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusOpen.IsTerminal())
	assert.True(t, StatusClosed.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, OrderStatus("PENDING_NEW").IsTerminal())
}

func TestMarketType_ValidAndContract(t *testing.T) {
	assert.True(t, MarketTypeSpot.Valid())
	assert.False(t, MarketType("perpetual").Valid())
	assert.False(t, MarketTypeSpot.Contract())
	assert.True(t, MarketTypeSwap.Contract())
	assert.True(t, MarketTypeOption.Contract())
}
