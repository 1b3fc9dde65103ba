// Provides platform-appropriate default paths for the tool.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS. The tool name is used as the subdirectory under each base path.
package paths
