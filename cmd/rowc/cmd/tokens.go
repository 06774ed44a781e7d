package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/rowlang/lexer"
	"github.com/metaphox/rowlang/render"
)

func newTokensCmd(o *options) *cobra.Command {
	var flat bool
	c := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream",
		Long: `Prints every token as Kind(lexeme)@line.

By default blank lines are dropped and each output line holds the tokens of
one source line. With --flat every source line, blank ones included, ends in
an EndOfLine token.

Examples:
  rowc tokens main.rl
  echo "s = 0 + 1" | rowc tokens -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			lines, src, err := o.compiler.TokenizeNamed(name)
			if err != nil {
				return o.printSourceError(cmd, err, name, src)
			}
			if !flat {
				fmt.Fprint(cmd.OutOrStdout(), render.Lines(lines))
				return nil
			}
			tokens, err := lexer.Tokenize(src)
			if err != nil {
				return o.printSourceError(cmd, err, name, src)
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Tokens(tokens))
			return nil
		},
	}
	c.Flags().BoolVar(&flat, "flat", false, "flat stream with EndOfLine tokens")
	return c
}
