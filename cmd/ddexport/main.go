// ddexport - provision Datadog export directories and fetch resources.
package main

import (
	"fmt"
	"os"

	"github.com/opsmirror/ddexport/internal/cli"
	"github.com/opsmirror/ddexport/internal/version"
)

func main() {
	// Propagate version from the single source of truth (internal/version).
	cli.Version = version.Version
	cli.BuildTime = version.BuildTime

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
