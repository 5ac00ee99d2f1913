// Command mapplan is a small demonstration CLI over the processor
// dependency graph builder and the config-resolving HTTP fetcher.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:     "mapplan",
		Short:   "Build processor dependency graphs and resolve fetch URIs",
		Long:    `mapplan demonstrates the two core subsystems of a map/report print engine's planner: building a processor dependency graph from a declarative fixture, and resolving a data/file/http URI through the retrying fetcher.`,
		Version: version,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(fetchCmd)
}
