package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the ezlatexdoc CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI, without colour.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component highlighted.
// Anything that does not look like MAJOR.MINOR.PATCH is returned as is.
func Colored() string {
	core, suffix := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + suffix
}

// Line is the one-line summary printed by `ezlatexdoc version`.
func Line(colored bool) string {
	v := Version
	if colored {
		v = Colored()
	}
	var extra []string
	if GitCommit != "" {
		extra = append(extra, "commit "+GitCommit)
	}
	if BuildDate != "" {
		extra = append(extra, "built "+BuildDate)
	}
	if len(extra) == 0 {
		return fmt.Sprintf("ezlatexdoc %s", v)
	}
	return fmt.Sprintf("ezlatexdoc %s (%s)", v, strings.Join(extra, ", "))
}
