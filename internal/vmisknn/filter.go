package vmisknn

// BusinessRule decides whether a candidate item may be recommended given
// the attributes of the query's most recent item and the candidate
// itself. It must be cheap (O(1)) since it runs inside the top-N
// admission loop.
type BusinessRule interface {
	Allow(query, candidate ItemAttributes, queryKnown, candidateKnown bool) bool
}

// defaultBusinessRule implements the rule named in 4.E / §6: a candidate
// must be for-sale; if the candidate is adult, the query item must also
// be adult. Attributes of absent items are treated as unknown, which
// always rejects under filtering.
type defaultBusinessRule struct{}

// DefaultBusinessRule returns the standard business-rule filter.
func DefaultBusinessRule() BusinessRule { return defaultBusinessRule{} }

func (defaultBusinessRule) Allow(query, candidate ItemAttributes, queryKnown, candidateKnown bool) bool {
	if !candidateKnown {
		return false
	}
	if !candidate.IsForSale {
		return false
	}
	if candidate.IsAdult {
		if !queryKnown || !query.IsAdult {
			return false
		}
	}
	return true
}
