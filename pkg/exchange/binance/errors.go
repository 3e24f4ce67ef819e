package binance

import (
	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
	"github.com/Gsuz/ccxt/pkg/normalize"
)

// errorMap classifies Binance error payloads. Codes are stable across API
// versions so the exact tier keys on them; the broad tier catches the
// free-text messages whose wording drifts.
var errorMap = exchange.ErrorMap{
	Exact: map[string]core.Kind{
		"-1002":  core.KindAuthentication,
		"-1003":  core.KindRateLimitExceeded,
		"-1013":  core.KindInvalidOrder,
		"-1015":  core.KindRateLimitExceeded,
		"-1021":  core.KindInvalidNonce,
		"-1022":  core.KindAuthentication,
		"-1100":  core.KindInvalidOrder,
		"-1121":  core.KindBadSymbol,
		"-2010":  core.KindInvalidOrder,
		"-2011":  core.KindOrderNotFound,
		"-2013":  core.KindOrderNotFound,
		"-2014":  core.KindAuthentication,
		"-2015":  core.KindPermissionDenied,
		"-3041":  core.KindInsufficientFunds,
		"-11008": core.KindInsufficientFunds,
	},
	Broad: []exchange.BroadRule{
		{Pattern: "insufficient balance", Kind: core.KindInsufficientFunds},
		{Pattern: "Account has insufficient balance", Kind: core.KindInsufficientFunds},
		{Pattern: "Timestamp for this request", Kind: core.KindInvalidNonce},
		{Pattern: "recvWindow", Kind: core.KindInvalidNonce},
		{Pattern: "Too many requests", Kind: core.KindRateLimitExceeded},
		{Pattern: "Invalid symbol", Kind: core.KindBadSymbol},
		{Pattern: "MIN_NOTIONAL", Kind: core.KindInvalidOrder},
		{Pattern: "LOT_SIZE", Kind: core.KindInvalidOrder},
		{Pattern: "PRICE_FILTER", Kind: core.KindInvalidOrder},
		{Pattern: "Order would immediately match and take", Kind: core.KindInvalidOrder},
		{Pattern: "Unknown order sent", Kind: core.KindOrderNotFound},
		{Pattern: "System is under maintenance", Kind: core.KindOnMaintenance},
	},
	HTTPStatus: map[int]core.Kind{
		401: core.KindAuthentication,
		403: core.KindPermissionDenied,
		418: core.KindDDoSProtection,
		429: core.KindRateLimitExceeded,
		503: core.KindExchangeNotAvailable,
	},
}

var orderStatuses = normalize.OrderStatuses{
	"NEW":              core.StatusOpen,
	"PARTIALLY_FILLED": core.StatusOpen,
	"FILLED":           core.StatusClosed,
	"CANCELED":         core.StatusCanceled,
	"PENDING_CANCEL":   core.StatusCanceled,
	"REJECTED":         core.StatusRejected,
	"EXPIRED":          core.StatusExpired,
	"EXPIRED_IN_MATCH": core.StatusExpired,
}

// Deposit statuses arrive as small integers.
var depositStatuses = normalize.TransactionStatuses{
	"0": core.TxPending,
	"1": core.TxOK,
	"6": core.TxOK,
	"7": core.TxFailed,
}

var withdrawalStatuses = normalize.TransactionStatuses{
	"0": core.TxPending,
	"1": core.TxCanceled,
	"2": core.TxPending,
	"3": core.TxFailed,
	"4": core.TxPending,
	"5": core.TxFailed,
	"6": core.TxOK,
}
