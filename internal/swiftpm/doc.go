// Loads the resolved description of a Swift package.
//
// Manifest parsing and dependency resolution belong to the package manager;
// this package shells out to it and exposes the reported products, targets,
// and platform requirements as an immutable read-only graph.
package swiftpm
