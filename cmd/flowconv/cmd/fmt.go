package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowconv/flowconv/pkg/flowconv"
)

var (
	fmtWrite bool
	fmtList  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Reformat a FlowLang source file to canonical indented form",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the formatted output back to the file")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting would change, without printing them")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, file, err := resolveSource(path, "")
	if err != nil {
		return err
	}

	prog, err := parseProgram(source, file, false)
	if err != nil {
		return reportParseError(err)
	}

	formatted := flowconv.GenerateFlowLang(prog)
	changed := formatted != source

	switch {
	case fmtList:
		if changed {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
	case fmtWrite:
		if changed {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
	default:
		fmt.Fprint(cmd.OutOrStdout(), formatted)
	}
	return nil
}
