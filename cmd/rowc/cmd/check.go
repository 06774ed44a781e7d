package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Parse files and report errors",
		Long: `Parses each FILE and stops at the first error.

Examples:
  rowc check main.rl lib.rl`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				prog, src, err := o.compiler.CompileNamed(name)
				if err != nil {
					return o.printSourceError(cmd, err, name, src)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d statements\n",
					o.style(okStyle, "ok"), name, len(prog.Statements))
			}
			return nil
		},
	}
}
