package exchange

// CostTier is one entry of a limit-keyed weight schedule. The first tier
// whose bound is greater than or equal to the requested limit applies.
type CostTier struct {
	// UpTo is the inclusive upper bound on the requested limit.
	UpTo int
	// Cost is the weight charged inside this tier.
	Cost int
}

// CostRule computes the weighted rate-limit cost of one endpoint before
// dispatch. Venues charge more when a filtering parameter like symbol is
// omitted (the response covers every market) or when a larger page is
// requested.
type CostRule struct {
	// Base is the default weight.
	Base int
	// NoSymbol, when positive, replaces Base for calls without a symbol.
	NoSymbol int
	// ByLimit is an ascending schedule keyed by the requested limit.
	ByLimit []CostTier
}

// Compute returns the effective cost for a call. A missing-symbol surcharge
// wins over the tier schedule; a requested limit beyond every tier falls
// back to the base cost.
func (r CostRule) Compute(hasSymbol bool, limit int) int {
	base := r.Base
	if base <= 0 {
		base = 1
	}
	if !hasSymbol && r.NoSymbol > 0 {
		return r.NoSymbol
	}
	if limit > 0 {
		for _, tier := range r.ByLimit {
			if limit <= tier.UpTo {
				return tier.Cost
			}
		}
	}
	return base
}
