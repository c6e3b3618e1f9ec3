package app

import (
	"fmt"
	"io"
)

// Version is the build version, overridable at link time via
// -ldflags "-X github.com/webgrid/gridsmoke/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether the arguments request the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "gridsmoke %s\n", Version)
}
