package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	"github.com/shini4i/render-watcher/internal/server"
)

const (
	ExitOK       = 0
	ExitError    = 1
	ExitTimedOut = 2
	ExitCanceled = 130
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// exitError carries a specific process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// Options customise how the root command builds its dependencies.
type Options struct {
	Out        io.Writer
	Err        io.Writer
	LoadConfig func() (*config.ServerConfig, error)
	NewRuntime func(*config.ServerConfig) (*Runtime, error)
}

type app struct {
	options  Options
	output   string
	logLevel string
	runtime  *Runtime
}

// NewRootCommand builds the render-watcher command tree.
func NewRootCommand(options Options) *cobra.Command {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Err == nil {
		options.Err = os.Stderr
	}
	if options.LoadConfig == nil {
		options.LoadConfig = config.NewServerConfig
	}
	if options.NewRuntime == nil {
		options.NewRuntime = NewRuntime
	}

	a := &app{options: options}

	root := &cobra.Command{
		Use:   "render-watcher",
		Short: "Trigger and watch Render deploys",
		Long: fmt.Sprintf(`%s

Triggers deploys of a Render service, follows them until they finish
and keeps a history of every watched deploy.

Run '%s' to serve the same operations over HTTP.`,
			bold("render-watcher"), yellow("render-watcher server")),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateOutput(a.output)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(options.Out)
	root.SetErr(options.Err)
	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputText, "Output format: text, json or yaml")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level, overrides LOG_LEVEL")

	root.AddCommand(
		a.statusCommand(),
		a.redeployCommand(),
		a.watchCommand(),
		a.logsCommand(),
		a.envCommand(),
		a.databasesCommand(),
		a.sessionsCommand(),
		a.migrateCommand(),
		a.serverCommand(),
		a.clientCommand(),
		versionCommand(),
	)

	return root
}

// loadConfig parses the environment and configures logging.
func (a *app) loadConfig() (*config.ServerConfig, error) {
	cfg, err := a.options.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("couldn't load configuration: %w", err)
	}

	logLevel := cfg.LogLevel
	if a.logLevel != "" {
		logLevel = a.logLevel
	}
	server.InitLogs(logLevel, cfg.LogFormat)

	return cfg, nil
}

// runtimeFor lazily builds the components shared by the service-scoped commands.
func (a *app) runtimeFor() (*Runtime, error) {
	if a.runtime != nil {
		return a.runtime, nil
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.ValidateServiceTarget(); err != nil {
		return nil, err
	}

	runtime, err := a.options.NewRuntime(cfg)
	if err != nil {
		return nil, err
	}

	a.runtime = runtime
	return runtime, nil
}

func (a *app) printer(cmd *cobra.Command) printer {
	return printer{out: cmd.OutOrStdout(), format: a.output}
}

// ExitCode maps an error returned by the command tree to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	return ExitError
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(Options{})
	err := root.ExecuteContext(ctx)
	if err != nil {
		var exitErr *exitError
		// result errors were already reported by the command
		if !errors.As(err, &exitErr) {
			_, _ = fmt.Fprintf(root.ErrOrStderr(), "%s %s\n", red("Error:"), err)
		}
	}

	return ExitCode(err)
}
