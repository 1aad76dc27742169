package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "flowconv",
	Short: "Lex, parse, run, format, and diagram FlowLang/FlowXML programs",
	Long: `flowconv converts Raptor-style FlowXML flowcharts to FlowLang,
FlowLang's own textual surface syntax, runs either one, and renders
both as Mermaid or Graphviz flowcharts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic output")
}

// Execute runs the root command, printing a formatted error and
// exiting non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError("%s", err)
	}
}

func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
