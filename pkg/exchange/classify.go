package exchange

import (
	"strings"

	"github.com/Gsuz/ccxt/pkg/core"
)

// BroadRule matches an error message by substring. Broad rules exist
// because venues return free-text messages whose exact wording drifts
// across API versions, while their numeric codes stay stable.
type BroadRule struct {
	Pattern string
	Kind    core.Kind
}

// ErrorMap is one adapter's two-tier error classification table: exact
// matches on stable codes or literal messages first, then substring matches
// in declaration order, then an HTTP-status hint, then the uncategorized
// fallback. The tables are immutable configuration built once per adapter
// instance.
type ErrorMap struct {
	// Exact maps a literal error code or message to a kind.
	Exact map[string]core.Kind
	// Broad maps a message substring to a kind, consulted only when no
	// exact entry applies.
	Broad []BroadRule
	// HTTPStatus maps a status code to a kind, consulted after both tables.
	HTTPStatus map[int]core.Kind
}

// Classify turns a raw venue error into the shared taxonomy. Whatever tier
// matches, the returned error embeds the original code and message
// untouched — classification never masks what the venue said.
func (m ErrorMap) Classify(exchange, code, message string, statusCode int, raw any) *core.ExchangeError {
	kind, ok := m.lookup(code, message, statusCode)
	if !ok {
		kind = core.KindExchangeError
	}
	e := core.NewErrorWithCode(exchange, kind, statusCode, code, message)
	e.Raw = raw
	return e
}

func (m ErrorMap) lookup(code, message string, statusCode int) (core.Kind, bool) {
	if code != "" {
		if k, ok := m.Exact[code]; ok {
			return k, true
		}
	}
	if message != "" {
		if k, ok := m.Exact[message]; ok {
			return k, true
		}
		for _, rule := range m.Broad {
			if strings.Contains(message, rule.Pattern) {
				return rule.Kind, true
			}
		}
	}
	if k, ok := m.HTTPStatus[statusCode]; ok {
		return k, true
	}
	return core.KindExchangeError, false
}
