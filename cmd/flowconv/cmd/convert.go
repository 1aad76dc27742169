package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowconv/flowconv/pkg/astjson"
	"github.com/flowconv/flowconv/pkg/flowconv"
)

var (
	convertExpr string
	convertJSON bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a FlowXML flowchart to FlowLang source (or to its JSON AST)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertExpr, "expr", "e", "", "convert this document instead of reading a file")
	convertCmd.Flags().BoolVar(&convertJSON, "json", false, "emit the JSON AST instead of FlowLang source")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	doc, _, err := resolveSource(path, convertExpr)
	if err != nil {
		return err
	}

	prog, err := flowconv.ParseFlowXML(doc)
	if err != nil {
		return reportParseError(err)
	}

	if convertJSON {
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
