// Package version carries build metadata for the velar CLI. The
// variables are plain strings so release builds can override them via
// -ldflags.
package version

import "github.com/fatih/color"

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var nameStyle = color.New(color.FgCyan, color.Bold)

// Banner renders the product name and version for terminal output.
func Banner() string {
	return nameStyle.Sprint("velar") + " " + Version
}
