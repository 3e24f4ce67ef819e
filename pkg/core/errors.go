package core

import (
	"errors"
	"fmt"
	"time"
)

// Kind categorizes an exchange error for programmatic handling. Every kind
// carries the untouched original exchange message alongside it; classification
// never masks what the venue actually said.
type Kind int

// Error kind constants form the shared taxonomy all adapters classify into.
const (
	// KindExchangeError is an uncategorized venue failure.
	KindExchangeError Kind = iota
	// KindAuthentication indicates bad or missing credentials or a bad signature.
	KindAuthentication
	// KindPermissionDenied indicates valid credentials lacking authorization.
	KindPermissionDenied
	// KindInvalidNonce indicates a stale or reused request nonce.
	KindInvalidNonce
	// KindInsufficientFunds indicates the balance is too low for the action.
	KindInsufficientFunds
	// KindInvalidOrder indicates order parameters violate venue constraints.
	KindInvalidOrder
	// KindOrderNotFound references a nonexistent or already-terminal order.
	KindOrderNotFound
	// KindBadSymbol indicates an unrecognized market identifier.
	KindBadSymbol
	// KindRateLimitExceeded indicates server-side throttling of this client.
	KindRateLimitExceeded
	// KindDDoSProtection indicates the venue's protection layer refused the call.
	KindDDoSProtection
	// KindExchangeNotAvailable indicates service-level unavailability.
	KindExchangeNotAvailable
	// KindOnMaintenance indicates a scheduled maintenance window.
	KindOnMaintenance
	// KindNotSupported indicates the operation is not implemented for this
	// adapter or market-type combination.
	KindNotSupported
	// KindNetwork indicates the request never produced a venue response.
	KindNetwork
	// KindRequestTimeout indicates the request exceeded its deadline.
	KindRequestTimeout
)

// String returns the canonical name of the error kind.
func (k Kind) String() string {
	return [...]string{
		"ExchangeError",
		"AuthenticationError",
		"PermissionDenied",
		"InvalidNonce",
		"InsufficientFunds",
		"InvalidOrder",
		"OrderNotFound",
		"BadSymbol",
		"RateLimitExceeded",
		"DDoSProtection",
		"ExchangeNotAvailable",
		"OnMaintenance",
		"NotSupported",
		"NetworkError",
		"RequestTimeout",
	}[k]
}

// ExchangeError is the structured error every adapter surfaces. It pairs a
// taxonomy Kind with the exchange's own code and message so callers can
// branch on the kind and still log the raw venue text.
type ExchangeError struct {
	// Kind categorizes the error for programmatic handling.
	Kind Kind `json:"kind"`
	// StatusCode is the HTTP status code from the response, when any.
	StatusCode int `json:"status_code,omitempty"`
	// Code is the exchange-specific error code.
	Code string `json:"code,omitempty"`
	// Message is the original, unmodified exchange error text.
	Message string `json:"message"`
	// Raw carries the decoded error payload for debugging.
	Raw any `json:"raw,omitempty"`
	// Exchange identifies which adapter produced this error.
	Exchange string `json:"exchange"`
	// Timestamp is when the error was classified.
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface for ExchangeError.
func (e *ExchangeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s (%d/%s): %s",
			e.Exchange, e.Kind, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (%d): %s",
		e.Exchange, e.Kind, e.StatusCode, e.Message)
}

// NewError creates an ExchangeError of the given kind. The timestamp is set
// to the current time.
func NewError(exchange string, kind Kind, statusCode int, message string) *ExchangeError {
	return &ExchangeError{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
		Exchange:   exchange,
		Timestamp:  time.Now(),
	}
}

// NewErrorWithCode creates an ExchangeError that also carries the
// exchange-specific error code.
func NewErrorWithCode(exchange string, kind Kind, statusCode int, code, message string) *ExchangeError {
	e := NewError(exchange, kind, statusCode, message)
	e.Code = code
	return e
}

// NotSupported builds the error every adapter returns for an operation or
// market-type combination it does not implement.
func NotSupported(exchange, operation string) *ExchangeError {
	return NewError(exchange, KindNotSupported, 0, operation+" is not supported")
}

// KindOf extracts the taxonomy kind from err. The second return is false when
// err is not an ExchangeError.
func KindOf(err error) (Kind, bool) {
	var e *ExchangeError
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindExchangeError, false
}

// IsKind reports whether err is an ExchangeError of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsAuthentication reports whether err is a credentials or signature failure.
// These are never retryable.
func IsAuthentication(err error) bool { return IsKind(err, KindAuthentication) }

// IsRateLimit reports whether err is server-side throttling, either explicit
// rate limiting or the venue's DDoS protection layer.
func IsRateLimit(err error) bool {
	k, ok := KindOf(err)
	return ok && (k == KindRateLimitExceeded || k == KindDDoSProtection)
}

// IsUnavailable reports whether err is a service-level outage, including
// declared maintenance windows.
func IsUnavailable(err error) bool {
	k, ok := KindOf(err)
	return ok && (k == KindExchangeNotAvailable || k == KindOnMaintenance)
}

// IsNotSupported reports whether err marks an unimplemented operation.
func IsNotSupported(err error) bool { return IsKind(err, KindNotSupported) }

// IsInvalidNonce reports whether err is a stale or reused nonce rejection.
func IsInvalidNonce(err error) bool { return IsKind(err, KindInvalidNonce) }

// Sentinel errors for client-local failure conditions that never reach a venue.
var (
	// ErrNoCredentials is returned when a signed call is attempted without
	// configured API credentials.
	ErrNoCredentials = errors.New("no credentials configured")
	// ErrMarketsNotLoaded is returned when a symbol lookup happens before
	// LoadMarkets has populated the market index.
	ErrMarketsNotLoaded = errors.New("markets not loaded")
)
