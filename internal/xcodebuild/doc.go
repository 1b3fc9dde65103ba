// Knows the command-line surface of the external build tool.
//
// Build and merge invocations are assembled here and executed through the
// command runner; no other package constructs xcodebuild argument lists.
package xcodebuild
