// Merges per-platform build artifacts into umbrella bundles.
//
// One merge runs per product, only after every platform's build phase has
// completed: group completeness is a precondition, not something checked
// by the external tool.
package merge
