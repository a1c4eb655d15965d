package root

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/docker/gemini-console/pkg/history"
	"github.com/docker/gemini-console/pkg/state"
	"github.com/docker/gemini-console/pkg/tui"
	"github.com/docker/gemini-console/pkg/tui/styles"
	"github.com/docker/gemini-console/pkg/userconfig"
)

type runFlags struct {
	workingDir string
	exportDir  string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive chat",
		Long:  `Open the full-screen chat interface connected to the backend`,
		Example: `  gemini-console run
  gemini-console run --working-dir ~/src/project`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, root, flags)
		},
	}

	cmd.Flags().StringVar(&flags.workingDir, "working-dir", "", "Directory the quick upload picker starts in (default: current directory)")
	cmd.Flags().StringVar(&flags.exportDir, "export-dir", "", "Directory chat exports are written to (default: settings.export_dir or the current directory)")

	return cmd
}

func runTUI(cmd *cobra.Command, root *rootFlags, flags runFlags) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg := loadConfig()
	client, err := root.newClient(cfg)
	if err != nil {
		return err
	}

	workingDir := flags.workingDir
	if workingDir == "" {
		if workingDir, err = os.Getwd(); err != nil {
			return err
		}
	}
	if abs, err := filepath.Abs(workingDir); err == nil {
		workingDir = abs
	}

	settings := cfg.GetSettings()
	styles.ApplyTheme(settings.DarkMode)

	configPath := userconfig.Path()
	opts := []tui.Option{
		tui.WithConfig(cfg, configPath),
		tui.WithExportDir(cmp.Or(flags.exportDir, settings.ExportDir)),
		tui.WithWorkingDir(workingDir),
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err == nil {
		if ch, err := userconfig.Watch(ctx, configPath); err != nil {
			slog.Debug("Not watching user config", "error", err)
		} else {
			opts = append(opts, tui.WithSettingsWatch(ch))
		}
	}

	if h, err := history.New(history.DefaultPath()); err != nil {
		slog.Warn("Input history unavailable", "error", err)
	} else {
		opts = append(opts, tui.WithHistory(h))
	}

	slog.Debug("Starting TUI", "server", client.BaseURL(), "working_dir", workingDir)

	m := tui.New(ctx, client, state.New(settings.DarkMode), opts...)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
