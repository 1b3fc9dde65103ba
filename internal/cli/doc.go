// Parses flags and configures logging for the tool.
//
// Subcommands:
//
//	create    Build every requested platform and merge into xcframeworks.
//	list      Show the package's products and resolved destinations.
//	version   Show version information.
//
// Flags override build-time defaults set via linker flags. After parsing,
// the global logger is reconfigured to reflect the final level before the
// selected command runs.
package cli
