package build

import "github.com/lowip/swift-create-xcframework/internal/catalog"

// Produced by one (product, destination) build invocation. Never mutated
// after creation; consumed by the merge step.
type Result struct {
	Product      string              // Product the artifact belongs to.
	Destination  catalog.Destination // Destination the artifact was built for.
	Framework    string              // Path to the framework bundle.
	DebugSymbols string              // Path to the dSYM bundle, empty when absent.
}

// Accumulates build results keyed by product name.
//
// Insertion order is preserved on both axes: products appear in eligible-set
// order and each product's results in destination build order. Merge order
// therefore matches platform declaration order regardless of how long any
// individual build took.
type Groups struct {
	order     []string
	byProduct map[string][]Result
}

func newGroups() *Groups {
	return &Groups{byProduct: make(map[string][]Result)}
}

func (g *Groups) add(result Result) {
	if _, ok := g.byProduct[result.Product]; !ok {
		g.order = append(g.order, result.Product)
	}
	g.byProduct[result.Product] = append(g.byProduct[result.Product], result)
}

// Returns product names in insertion order.
func (g *Groups) Products() []string {
	return g.order
}

// Returns the ordered results for one product.
func (g *Groups) Results(product string) []Result {
	return g.byProduct[product]
}
