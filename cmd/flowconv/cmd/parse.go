package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowconv/flowconv/internal/ast"
	"github.com/flowconv/flowconv/internal/errors"
	"github.com/flowconv/flowconv/pkg/astjson"
	"github.com/flowconv/flowconv/pkg/flowconv"
)

var (
	parseExpr   string
	parseAsXML  bool
	parseAsJSON bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a FlowLang or FlowXML program and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseExpr, "expr", "e", "", "parse this source text instead of reading a file")
	parseCmd.Flags().BoolVar(&parseAsXML, "xml", false, "force FlowXML parsing instead of sniffing the input")
	parseCmd.Flags().BoolVar(&parseAsJSON, "json", false, "print the AST as JSON instead of re-rendered FlowLang")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	source, file, err := resolveSource(path, parseExpr)
	if err != nil {
		return err
	}

	prog, err := parseProgram(source, file, parseAsXML)
	if err != nil {
		return reportParseError(err)
	}

	if parseAsJSON {
		data, err := astjson.Marshal(prog)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), data)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), flowconv.GenerateFlowLang(prog))
	return nil
}

// parseProgram picks the FlowLang or FlowXML front end. forceXML skips
// the content sniff, which only checks whether the text begins with '<'.
func parseProgram(source, file string, forceXML bool) (*ast.Program, error) {
	if forceXML || flowconv.LooksLikeFlowXML(source) {
		return flowconv.ParseFlowXML(source)
	}
	return flowconv.ParseFlowLang(source, file)
}

// reportParseError formats a ParseError the way the rest of the CLI's
// diagnostics look; FlowXML structural errors are ParseErrors too and
// are formatted without a source line. Any other error is returned
// unwrapped.
func reportParseError(err error) error {
	if perr, ok := err.(*errors.ParseError); ok {
		return fmt.Errorf("%s", perr.Format(true))
	}
	return err
}
