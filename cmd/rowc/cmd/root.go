package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/metaphox/rowlang/compiler"
	"github.com/metaphox/rowlang/internal/config"
	"github.com/metaphox/rowlang/internal/logging"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// options is the state shared by all subcommands of one invocation.
type options struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg      *config.Config
	compiler *compiler.Compiler
}

// Execute runs the rowc command line.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "rowc",
		Short: "Front end for the row language",
		Long: `rowc tokenizes and parses row programs and prints their debug forms.

Commands:
  tokens   - print the token stream, one source line per output line
  ast      - print the syntax tree (text or yaml)
  check    - parse and report the first error, if any

FILE may be - to read standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log at debug level")
	root.PersistentFlags().BoolVar(&o.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newTokensCmd(o),
		newASTCmd(o),
		newCheckCmd(o),
		newVersionCmd(),
	)
	return root
}

// setup loads the config, applies flag overrides and builds the compiler.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return o.printError(cmd, err)
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	if o.noColor {
		cfg.Output.Color = false
	}
	o.cfg = cfg

	log := logging.New(logging.Config{
		Name:   "rowc",
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	o.compiler = compiler.New(
		compiler.WithLogger(log),
		compiler.WithSources(compiler.FileSource{Stdin: cmd.InOrStdin()}),
	)
	return nil
}

func (o *options) colored() bool {
	if o.noColor {
		return false
	}
	return o.cfg == nil || o.cfg.Output.Color
}

func (o *options) style(s lipgloss.Style, text string) string {
	if !o.colored() {
		return text
	}
	return s.Render(text)
}

// printError writes err to stderr and returns it so the process exits
// non-zero.
func (o *options) printError(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), o.style(errorStyle, "error: "+err.Error()))
	return err
}

// printSourceError writes a lexer or parser error with a source snippet.
// The first line of the report is styled as an error.
func (o *options) printSourceError(cmd *cobra.Command, err error, name, src string) error {
	report := compiler.FormatError(err, name, src)
	head, rest, _ := strings.Cut(report, "\n")
	fmt.Fprintln(cmd.ErrOrStderr(), o.style(errorStyle, head))
	if rest != "" {
		fmt.Fprint(cmd.ErrOrStderr(), rest)
	}
	return err
}
