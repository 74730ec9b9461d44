package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mithrel/mdserve/internal/config"
	"github.com/mithrel/mdserve/internal/logging"
	"github.com/mithrel/mdserve/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// Command annotations read by the root pre-run.
const (
	annotSkipApp = "mdserve/skip-app"
	annotLogTo   = "mdserve/log-to"
)

// session carries the wired App from the pre-run to the error boundary.
type session struct {
	app *wire.App
}

// finish applies the top-level error policy: any error escaping a command
// is logged with its type and message, the logger is flushed, and the error
// is returned unchanged.
func (s *session) finish(err error) error {
	if s.app == nil {
		return err
	}
	if err != nil {
		typ := fmt.Sprintf("%T", rootCause(err))
		s.app.Log.Error(fmt.Sprintf("Unknown exception of type: %s - %v", typ, err),
			zap.String("error_type", typ))
	}
	_ = s.app.Close()
	return err
}

// rootCause peels fmt.Errorf("...: %w") layers and returns the first error
// that carries its own type, e.g. *fs.PathError rather than the
// syscall.Errno inside it.
func rootCause(err error) error {
	for err != nil {
		if fmt.Sprintf("%T", err) != "*fmt.wrapError" {
			return err
		}
		err = errors.Unwrap(err)
	}
	return err
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// Run builds a fresh command tree, executes args, and applies the error policy.
func Run(ctx context.Context, args []string, out, errOut io.Writer) error {
	s := &session{}
	cmd := newRootCmd(s)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return s.finish(cmd.ExecuteContext(ctx))
}

// NewRootCmd constructs the Cobra root command, e.g. for doc generation.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{})
}

func newRootCmd(s *session) *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "mdserve [markdown-file]",
		Short: "Render a markdown file with mermaid diagrams in a browser window",
		Long: "mdserve reads one markdown file, splits out ```mermaid diagram blocks,\n" +
			"and serves the result to a local browser window. Running mdserve without\n" +
			"a subcommand is the same as 'mdserve serve'.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		Annotations:   map[string]string{annotLogTo: "stdout"},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotSkipApp] == "true" {
				return nil
			}
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			if err := bindConfigFlags(cmd, v); err != nil {
				return err
			}
			if err := config.CheckConfigValidity(v); err != nil {
				return err
			}

			var console io.Writer = cmd.ErrOrStderr()
			if cmd.Annotations[annotLogTo] == "stdout" {
				console = cmd.OutOrStdout()
			}
			app, err := wire.BuildApp(cmd.Context(), v, func(o *logging.Options) {
				o.Console = zapcore.Lock(zapcore.AddSync(console))
			})
			if err != nil {
				return err
			}
			s.app = app
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, app))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")
	pf.StringP("markdown-file", "f", "", "path to markdown file to be rendered")
	pf.String("log-level", "INFO", "log level ["+strings.Join(logging.Levels, ", ")+"]")
	pf.String("log-file-path", "./logs/", "log file directory")
	_ = cmd.RegisterFlagCompletionFunc("log-level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return logging.Levels, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkPersistentFlagFilename("markdown-file", "md", "markdown")
	addServeFlags(cmd)

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newSegmentsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}

// markdownFile resolves the document path from --markdown-file or the single
// positional argument.
func markdownFile(cmd *cobra.Command, args []string) (string, error) {
	flagVal, _ := cmd.Flags().GetString("markdown-file")
	switch {
	case flagVal != "" && len(args) > 0 && args[0] != flagVal:
		return "", fmt.Errorf("markdown file given twice: --markdown-file %s and argument %s", flagVal, args[0])
	case flagVal != "":
		return flagVal, nil
	case len(args) > 0:
		return args[0], nil
	default:
		return "", fmt.Errorf("--markdown-file is required")
	}
}
