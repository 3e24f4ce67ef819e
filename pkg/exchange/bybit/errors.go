package bybit

import (
	"net/http"

	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/exchange"
	"github.com/Gsuz/ccxt/pkg/normalize"
)

// errorMap classifies Bybit v5 retCode values. The exact table wins; the
// broad rules catch the messages the venue reuses across numeric codes.
var errorMap = exchange.ErrorMap{
	Exact: map[string]core.Kind{
		"10002":  core.KindInvalidNonce,
		"10003":  core.KindAuthentication,
		"10004":  core.KindAuthentication,
		"10005":  core.KindPermissionDenied,
		"10006":  core.KindRateLimitExceeded,
		"10010":  core.KindPermissionDenied,
		"10016":  core.KindExchangeNotAvailable,
		"10018":  core.KindRateLimitExceeded,
		"110001": core.KindOrderNotFound,
		"110003": core.KindInvalidOrder,
		"110004": core.KindInsufficientFunds,
		"110007": core.KindInsufficientFunds,
		"110012": core.KindInsufficientFunds,
		"110017": core.KindInvalidOrder,
		"110025": core.KindPermissionDenied,
		"170130": core.KindInvalidOrder,
		"170131": core.KindInsufficientFunds,
		"170140": core.KindInvalidOrder,
		"170213": core.KindOrderNotFound,
		"181001": core.KindBadSymbol,
	},
	Broad: []exchange.BroadRule{
		{Pattern: "Insufficient", Kind: core.KindInsufficientFunds},
		{Pattern: "insufficient", Kind: core.KindInsufficientFunds},
		{Pattern: "order not exists", Kind: core.KindOrderNotFound},
		{Pattern: "Order does not exist", Kind: core.KindOrderNotFound},
		{Pattern: "Not supported symbols", Kind: core.KindBadSymbol},
		{Pattern: "Symbol Is Invalid", Kind: core.KindBadSymbol},
		{Pattern: "invalid request, please check your timestamp", Kind: core.KindInvalidNonce},
		{Pattern: "Too many visits", Kind: core.KindRateLimitExceeded},
		{Pattern: "unknown orderInfo", Kind: core.KindOrderNotFound},
		{Pattern: "API key is invalid", Kind: core.KindAuthentication},
		{Pattern: "maintenance", Kind: core.KindOnMaintenance},
	},
	HTTPStatus: map[int]core.Kind{
		http.StatusForbidden:          core.KindDDoSProtection,
		http.StatusTooManyRequests:    core.KindRateLimitExceeded,
		http.StatusServiceUnavailable: core.KindExchangeNotAvailable,
	},
}

var orderStatuses = normalize.OrderStatuses{
	"Created":                 core.StatusOpen,
	"New":                     core.StatusOpen,
	"PartiallyFilled":         core.StatusOpen,
	"Untriggered":             core.StatusOpen,
	"Triggered":               core.StatusOpen,
	"Filled":                  core.StatusClosed,
	"Cancelled":               core.StatusCanceled,
	"PartiallyFilledCanceled": core.StatusCanceled,
	"Deactivated":             core.StatusCanceled,
	"Rejected":                core.StatusRejected,
}

// Deposit records report numeric statuses.
var depositStatuses = normalize.TransactionStatuses{
	"0": core.TxPending,
	"1": core.TxPending,
	"2": core.TxPending,
	"3": core.TxOK,
	"4": core.TxFailed,
}

var withdrawalStatuses = normalize.TransactionStatuses{
	"SecurityCheck":       core.TxPending,
	"Pending":             core.TxPending,
	"success":             core.TxOK,
	"CancelByUser":        core.TxCanceled,
	"Reject":              core.TxFailed,
	"Fail":                core.TxFailed,
	"BlockchainConfirmed": core.TxPending,
}
