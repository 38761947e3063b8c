package store

// Op is a filter comparison operator.
type Op string

const (
	OpEq    Op = "eq"    // column = value
	OpILike Op = "ilike" // column ILIKE %value%
	OpIn    Op = "in"    // column = ANY(values), comma-separated input
	OpGTE   Op = "gte"   // column >= value (date range start)
	OpLTE   Op = "lte"   // column <= value (date range end)
)

// Predicate binds a filter key to a column and comparison operator.
type Predicate struct {
	Column string
	Op     Op
}

// Order is one order-by term.
type Order struct {
	Column string
	Desc   bool
}

// Schema describes one entity table to the store: how to filter it, how to
// search it, how to order its lists, and which defaults a create merges in.
type Schema struct {
	Table  string
	Target string // audit target type

	// Defaults are merged into create payloads for absent keys.
	Defaults Row

	// SearchColumns are ORed together for the `search` filter.
	SearchColumns []string

	// Filters maps filter keys to predicates. The `search` key is implicit.
	Filters map[string]Predicate

	// Sort is the primary ordering. created_at DESC and id tiebreaks are
	// appended unless those columns are already present.
	Sort []Order
}

// sortTerms returns the effective order-by list with stable tiebreaks. The
// trailing id term makes the ordering total, so concatenating pages yields
// every row exactly once even when rows share a created_at.
func (s Schema) sortTerms() []Order {
	out := make([]Order, 0, len(s.Sort)+2)
	out = append(out, s.Sort...)
	if !hasSortColumn(out, "created_at") {
		out = append(out, Order{Column: "created_at", Desc: true})
	}
	if !hasSortColumn(out, "id") {
		out = append(out, Order{Column: "id"})
	}
	return out
}

func hasSortColumn(terms []Order, col string) bool {
	for _, t := range terms {
		if t.Column == col {
			return true
		}
	}
	return false
}
