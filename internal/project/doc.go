// Prepares the generated build description for isolated builds.
//
// The project generator produces a buildable project from the package
// manifest, but its output needs three corrections before the build
// pipeline can rely on it: the distribution configuration profile applied
// selectively to the products being distributed, re-derived header search
// paths for C targets, and (for packages that opt in) a normalized public
// header layout.
package project
