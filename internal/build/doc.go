// Drives the per-platform build phase and groups its artifacts.
//
// The external builder is invoked once per destination with the full
// eligible product set. Each invocation yields one framework (and
// optionally one dSYM) per product, collected from that destination's
// built-products directory into groups keyed by product name. Builds are
// sequential and any failure aborts the run: the umbrella bundle produced
// downstream must cover every requested platform or not exist at all.
package build
