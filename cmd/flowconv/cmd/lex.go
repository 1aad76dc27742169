package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowconv/flowconv/internal/lexer"
)

var (
	lexExpr      string
	lexShowPos   bool
	lexOnlyKinds bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a FlowLang source file and print its tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	lexCmd.Flags().StringVarP(&lexExpr, "expr", "e", "", "lex this source text instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "pos", true, "show line:column for each token")
	lexCmd.Flags().BoolVar(&lexOnlyKinds, "kinds-only", false, "print only token kinds, not literal text")
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	source, file, err := resolveSource(path, lexExpr)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "lexing %s (%d bytes)\n", describeSource(file), len(source))
	}

	for _, tok := range lexer.New(source).Tokenize() {
		printToken(cmd, tok)
	}
	return nil
}

func printToken(cmd *cobra.Command, tok lexer.Token) {
	if lexOnlyKinds {
		fmt.Fprintln(cmd.OutOrStdout(), tok.Type)
		return
	}
	if lexShowPos {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %q @%d:%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] %q\n", tok.Type, tok.Literal)
}

func describeSource(file string) string {
	if file == "" {
		return "<inline>"
	}
	return file
}
