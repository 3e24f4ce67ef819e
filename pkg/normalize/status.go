package normalize

import "github.com/Gsuz/ccxt/pkg/core"

// OrderStatuses maps an exchange's native order status strings to the
// unified set. The table is immutable configuration owned by one adapter
// instance; adapters never share or mutate it after construction.
type OrderStatuses map[string]core.OrderStatus

// Parse resolves a native status string. A status missing from the table
// passes through unchanged rather than failing: venues add statuses between
// API versions and an unknown one must not break order retrieval.
func (m OrderStatuses) Parse(raw string) core.OrderStatus {
	if s, ok := m[raw]; ok {
		return s
	}
	return core.OrderStatus(raw)
}

// TransactionStatuses maps native deposit/withdrawal status strings to the
// unified set, with the same pass-through rule as OrderStatuses.
type TransactionStatuses map[string]core.TransactionStatus

// Parse resolves a native transaction status string.
func (m TransactionStatuses) Parse(raw string) core.TransactionStatus {
	if s, ok := m[raw]; ok {
		return s
	}
	return core.TransactionStatus(raw)
}
