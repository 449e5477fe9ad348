package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/itemed/internal/config"
	"github.com/idilsaglam/itemed/internal/items"
	"github.com/idilsaglam/itemed/internal/store"
	"github.com/idilsaglam/itemed/internal/tui"
	"github.com/idilsaglam/itemed/internal/ui"
)

// App carries root flags and what PersistentPreRunE derives from them.
type App struct {
	ConfigPath string
	Theme      string
	NoColor    bool
	Color      bool
	LogFile    string
	LogLevel   string

	cfg     config.Config
	logger  *slog.Logger
	logSink io.Closer
}

func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *App) {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "itemed",
		Short:         "Edit a list of items with a fixed set of parameters",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  itemed

  # Scriptable commands
  itemed ls
  itemed add --set 1=Брюки --set 3=Slim
  itemed set 1 3 Slim
  itemed rm 1700000000000
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (YAML, or JSON with comments); defaults to $"+config.EnvVar)
	cmd.PersistentFlags().StringVar(&app.Theme, "theme", "", "Color theme (classic|neon|mono); overrides the config")
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable colors")
	cmd.PersistentFlags().BoolVar(&app.Color, "color", false, "Force colors even when not writing to a terminal")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("ITEMED_LOG_FILE", ""), "Write structured logs to this file")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error); overrides the config")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newParamsCmd(app))

	closeLogAfterRun(cmd, app)
	return cmd, app
}

// closeLogAfterRun wraps every RunE so the log file is closed on error
// returns too; cobra skips post-run hooks when RunE fails.
func closeLogAfterRun(cmd *cobra.Command, app *App) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if cerr := app.closeLog(); err == nil {
					err = cerr
				}
			}()
			return run(cmd, args)
		}
	}
	for _, c := range cmd.Commands() {
		closeLogAfterRun(c, app)
	}
}

func (app *App) closeLog() error {
	if app.logSink == nil {
		return nil
	}
	return app.logSink.Close()
}

func (app *App) setup() error {
	cfg, err := config.Load(config.Resolve(app.ConfigPath))
	if err != nil {
		return err
	}
	if app.Theme != "" {
		cfg.Theme = app.Theme
	}
	if app.LogFile != "" {
		cfg.Log.File = app.LogFile
	}
	if app.LogLevel != "" {
		cfg.Log.Level = app.LogLevel
	}
	app.cfg = cfg

	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(app.Color, app.NoColor)

	logger, sink, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	app.logger, app.logSink = logger, sink
	return nil
}

// session is an item store hydrated from the configured backend.
type session struct {
	items   *items.Store
	backend store.Backend
}

func openSession(ctx context.Context, app *App) (*session, error) {
	schema, err := app.cfg.Schema()
	if err != nil {
		return nil, err
	}
	seed, err := app.cfg.InitialItems()
	if err != nil {
		return nil, err
	}
	backend, err := store.Open(ctx, app.cfg.Backend)
	if err != nil {
		return nil, err
	}
	loaded, err := store.LoadOrSeed(ctx, backend, seed)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	s := items.New(schema)
	s.Load(loaded)
	app.logger.Debug("session opened", "backend", app.cfg.Backend.Kind, "items", s.Len())
	return &session{items: s, backend: backend}, nil
}

func (s *session) Close() error { return s.backend.Close() }

func runTUI(ctx context.Context, app *App) error {
	sess, err := openSession(ctx, app)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()
	return tui.Run(sess.items, sess.backend, app.logger)
}

func newLogger(cfg config.Log) (*slog.Logger, io.Closer, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
