package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowconv/flowconv/internal/interp"
	"github.com/flowconv/flowconv/pkg/flowconv"
)

var (
	runExpr     string
	runAsXML    bool
	runDumpVars bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a FlowLang or FlowXML program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runExpr, "expr", "e", "", "run this source text instead of reading a file")
	runCmd.Flags().BoolVar(&runAsXML, "xml", false, "force FlowXML parsing instead of sniffing the input")
	runCmd.Flags().BoolVar(&runDumpVars, "dump-vars", false, "print final variable bindings after the program finishes")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	source, file, err := resolveSource(path, runExpr)
	if err != nil {
		return err
	}

	prog, err := parseProgram(source, file, runAsXML)
	if err != nil {
		return reportParseError(err)
	}

	stdin := bufio.NewReader(os.Stdin)
	input := func(prompt string) (string, error) {
		if prompt != "" {
			fmt.Fprint(cmd.OutOrStdout(), prompt, " ")
		}
		line, err := stdin.ReadString('\n')
		return trimNewline(line), err
	}
	output := func(text string) {
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}

	store, err := flowconv.Run(prog, input, output)
	if err != nil {
		if rerr, ok := err.(*interp.RuntimeError); ok {
			return fmt.Errorf("runtime error at %d:%d: %s", rerr.Pos.Line, rerr.Pos.Column, rerr.Message)
		}
		return err
	}

	if runDumpVars {
		for name, v := range store {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, v.Display())
		}
	}
	return nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
