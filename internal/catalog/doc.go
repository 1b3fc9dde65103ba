// Resolves what to build: the eligible product set and the flattened
// destination list for the requested platforms.
//
// Both are computed once before the first build and never mutated; the
// rest of the pipeline treats them as immutable configuration.
package catalog
