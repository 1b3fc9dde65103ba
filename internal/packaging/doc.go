// Turns merged bundles into distributable release files.
//
// Each bundle becomes a zip archive plus a SHA-256 checksum file, with an
// optional detached GPG signature, and a pointer file lists everything
// that was produced for consumption by automation.
package packaging
