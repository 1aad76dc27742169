package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowconv/flowconv/pkg/flowconv"
)

var (
	dotExpr  string
	dotAsXML bool
)

var dotCmd = &cobra.Command{
	Use:   "dot [file]",
	Short: "Render a FlowLang or FlowXML program as a Graphviz DOT document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDot,
}

func init() {
	dotCmd.Flags().StringVarP(&dotExpr, "expr", "e", "", "render this source text instead of reading a file")
	dotCmd.Flags().BoolVar(&dotAsXML, "xml", false, "force FlowXML parsing instead of sniffing the input")
	rootCmd.AddCommand(dotCmd)
}

func runDot(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	source, file, err := resolveSource(path, dotExpr)
	if err != nil {
		return err
	}

	prog, err := parseProgram(source, file, dotAsXML)
	if err != nil {
		return reportParseError(err)
	}

	out, err := flowconv.GenerateGraphviz(prog)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
