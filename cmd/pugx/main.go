package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "pugx",
		Short: "pugx - compile pug templates to JSX",
		Long: `pugx compiles indentation-based pug templates into JSX components.
Attribute names are renamed for the target framework, class sources are
merged, spreads and interpolated expressions are resolved, and repeated
children receive list keys.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newDevCommand())
	rootCmd.AddCommand(newCreateCommand())
	rootCmd.AddCommand(newCleanCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
