package root

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/httpclient"
	"github.com/docker/gemini-console/pkg/logging"
	"github.com/docker/gemini-console/pkg/paths"
	"github.com/docker/gemini-console/pkg/userconfig"
)

const (
	serverEnv     = "GEMINI_CONSOLE_SERVER"
	defaultServer = "http://localhost:8080"
)

type rootFlags struct {
	debugMode   bool
	logFilePath string
	server      string
	logFile     io.Closer
}

func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "gemini-console",
		Short: "gemini-console - terminal chat for the enhanced assistant",
		Long:  "gemini-console is a terminal client for the enhanced assistant backend",
		Example: `  gemini-console
  gemini-console --server http://localhost:9000
  gemini-console send "Summarize the uploaded files"
  gemini-console files upload ./docs`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			flags.startLogging(cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			flags.stopLogging()
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.logFilePath, "log-file", "", "Path to debug log file (default: ~/.gemini-console/gemini-console.debug.log; only used with --debug)")
	cmd.PersistentFlags().StringVar(&flags.server, "server", "", "Backend base URL (default: $"+serverEnv+", the config file, or "+defaultServer+")")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd(&flags))
	cmd.AddCommand(newSendCmd(&flags))
	cmd.AddCommand(newSessionsCmd(&flags))
	cmd.AddCommand(newFilesCmd(&flags))

	return cmd
}

func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.SetArgs(defaultToRun(rootCmd, args))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return processErr(ctx, err, stderr, rootCmd)
	}
	return nil
}

// defaultToRun starts the chat when args name no subcommand. Words that are
// not subcommands are taken as flag values. Help flags are left alone.
func defaultToRun(rootCmd *cobra.Command, args []string) []string {
	for _, arg := range args {
		switch {
		case arg == "--":
			return append([]string{"run"}, args...)
		case arg == "--help" || arg == "-h":
			return args
		case isSubcommand(rootCmd, arg):
			return args
		}
	}

	return append([]string{"run"}, args...)
}

// isSubcommand reports whether name matches a registered subcommand or alias.
func isSubcommand(cmd *cobra.Command, name string) bool {
	switch name {
	case "help", "completion", "__complete", "__completeNoDesc":
		return true
	}
	for _, sub := range cmd.Commands() {
		if sub.Name() == name || sub.HasAlias(name) {
			return true
		}
	}
	return false
}

// processErr prints usage errors. Failures wrapped in RuntimeError were
// already reported by the command.
func processErr(ctx context.Context, err error, stderr io.Writer, rootCmd *cobra.Command) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if _, ok := errors.AsType[RuntimeError](err); ok {
		return err
	}

	fmt.Fprintf(stderr, "%v\n\n", err)
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown command ") || strings.HasPrefix(msg, "accepts ") {
		_ = rootCmd.Usage()
	}
	return err
}

// startLogging sends slog output to the debug log file. When the file
// cannot be opened, debug output goes to stderr instead.
func (f *rootFlags) startLogging(stderr io.Writer) {
	path := cmp.Or(strings.TrimSpace(f.logFilePath), paths.DefaultLogFile())

	logFile, err := logging.Setup(f.debugMode, path)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		slog.Warn("Failed to open log file", "path", path, "error", err)
		return
	}
	f.logFile = logFile
}

func (f *rootFlags) stopLogging() {
	if f.logFile == nil {
		return
	}
	if err := f.logFile.Close(); err != nil {
		slog.Error("Failed to close log file", "error", err)
	}
	f.logFile = nil
}

// resolveServer picks the backend address: flag, then environment, then
// config file, then the default.
func resolveServer(flagValue, envValue string, cfg *userconfig.Config) string {
	var fromConfig string
	if cfg != nil {
		fromConfig = cfg.Server
	}
	return cmp.Or(strings.TrimSpace(flagValue), strings.TrimSpace(envValue), fromConfig, defaultServer)
}

// loadConfig reads the user config. A broken file is logged and ignored.
func loadConfig() *userconfig.Config {
	cfg, err := userconfig.Load()
	if err != nil {
		slog.Warn("Ignoring unreadable user config", "path", userconfig.Path(), "error", err)
		return &userconfig.Config{}
	}
	return cfg
}

// newClient builds the backend client for the resolved server address.
func (f *rootFlags) newClient(cfg *userconfig.Config) (*api.Client, error) {
	server := resolveServer(f.server, os.Getenv(serverEnv), cfg)
	if err := userconfig.ValidateServerURL(server); err != nil {
		return nil, err
	}
	slog.Debug("Using backend", "server", server)
	return api.NewClient(server, api.WithHTTPClient(httpclient.NewHTTPClient()))
}

// RuntimeError marks a failure the command has already printed.
type RuntimeError struct {
	Err error
}

func (e RuntimeError) Error() string {
	return e.Err.Error()
}

func (e RuntimeError) Unwrap() error {
	return e.Err
}
