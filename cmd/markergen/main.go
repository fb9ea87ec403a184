// Command markergen generates profiler marker methods for annotated structs.
//
// Typical use is from a go:generate directive in the package declaring the
// marker types:
//
//	//go:generate go run github.com/reoring/profmarker/cmd/markergen generate
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/reoring/profmarker/internal/cli"
)

func main() {
	if err := cli.BuildCLI().Execute(); err != nil {
		// Diagnostics were already printed one per line.
		if !errors.Is(err, cli.ErrDiagnostics) {
			fmt.Fprintf(os.Stderr, "markergen: %v\n", err)
		}
		os.Exit(1)
	}
}
