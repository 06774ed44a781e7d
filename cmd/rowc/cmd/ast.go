package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/rowlang/render"
)

func newASTCmd(o *options) *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:   "ast FILE",
		Short: "Print the syntax tree",
		Long: `Parses FILE and prints its syntax tree.

Formats:
  text  - indented tree
  yaml  - YAML document

The default format comes from output.format in the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = o.cfg.Output.Format
			}
			name := args[0]
			prog, src, err := o.compiler.CompileNamed(name)
			if err != nil {
				return o.printSourceError(cmd, err, name, src)
			}
			switch format {
			case "text":
				fmt.Fprint(cmd.OutOrStdout(), render.Program(prog))
			case "yaml":
				out, err := render.YAML(prog)
				if err != nil {
					return o.printError(cmd, err)
				}
				if _, err := cmd.OutOrStdout().Write(out); err != nil {
					return o.printError(cmd, err)
				}
			default:
				return o.printError(cmd, fmt.Errorf("unknown format %q (want text or yaml)", format))
			}
			return nil
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "", "output format: text or yaml")
	return c
}
