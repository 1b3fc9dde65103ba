// Wraps external process execution behind a fakeable interface.
//
// Every subprocess this tool drives (the Swift package manager and the
// external build tool) goes through [Runner], so the build pipeline can be
// exercised in tests without spawning processes.
package command
