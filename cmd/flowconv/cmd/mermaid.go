package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowconv/flowconv/pkg/flowconv"
)

var (
	mermaidExpr  string
	mermaidAsXML bool
)

var mermaidCmd = &cobra.Command{
	Use:   "mermaid [file]",
	Short: "Render a FlowLang or FlowXML program as a Mermaid flowchart",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMermaid,
}

func init() {
	mermaidCmd.Flags().StringVarP(&mermaidExpr, "expr", "e", "", "render this source text instead of reading a file")
	mermaidCmd.Flags().BoolVar(&mermaidAsXML, "xml", false, "force FlowXML parsing instead of sniffing the input")
	rootCmd.AddCommand(mermaidCmd)
}

func runMermaid(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	source, file, err := resolveSource(path, mermaidExpr)
	if err != nil {
		return err
	}

	prog, err := parseProgram(source, file, mermaidAsXML)
	if err != nil {
		return reportParseError(err)
	}

	out, err := flowconv.GenerateMermaid(prog)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
