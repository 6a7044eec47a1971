// Package cli implements the todo-journal command tree.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/auth"
	"github.com/hy4ri/todo-journal/internal/config"
	"github.com/hy4ri/todo-journal/internal/logging"
	"github.com/hy4ri/todo-journal/internal/settings"
	"github.com/hy4ri/todo-journal/internal/tui"
	"github.com/hy4ri/todo-journal/internal/view"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "0.1.0"

// App holds the global flags and everything built from them. Dependencies
// are created on first use so `version` or `init` work without a config.
type App struct {
	ConfigPath string
	APIURL     string
	StateDB    string

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
	settings *settings.Store
	client   *api.Client
	auth     *auth.Manager
	session  *config.Session
	now      func() time.Time
}

func NewRootCmd() *cobra.Command {
	app := &App{now: time.Now}

	cmd := &cobra.Command{
		Use:           "todo-journal",
		Short:         "Todos and a daily journal in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo-journal

  # Log in once, then script away
  todo-journal login --email me@example.com
  todo-journal list --filter OPEN --sort DUE_ASC
  todo-journal add "Steuererklärung" --due +3 --category Privat
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.Close()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config file (default: ~/.config/todo-journal/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.APIURL, "api", "", "Service base URL (overrides api.base_url and "+config.EnvAPIURL+")")
	cmd.PersistentFlags().StringVar(&app.StateDB, "state", "", "SQLite file holding the view state (overrides state_db)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newJournalCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runTUI(app *App) error {
	session, err := app.requireSession()
	if err != nil {
		return err
	}
	cfg, err := app.config()
	if err != nil {
		return err
	}
	ctrl, err := app.controller()
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Service:    app.client,
		Controller: ctrl,
		Settings:   app.settings,
		Logger:     app.log(),
		User:       session.User.DisplayName(),
		VimMode:    cfg.UI.VimMode,
		NotifyDue:  cfg.UI.NotifyDue,
		Theme:      cfg.UI.Theme,
	})
}

// config loads the configuration once and applies the global flags.
func (a *App) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	var cfg *config.Config
	var err error
	if a.ConfigPath != "" {
		cfg, err = config.LoadFile(a.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if v := strings.TrimSpace(a.APIURL); v != "" {
		cfg.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(a.StateDB); v != "" {
		cfg.StateDB = v
	}
	a.cfg = cfg
	return cfg, nil
}

// log returns the configured logger. Failing to open the log file is not
// fatal; logging is then disabled.
func (a *App) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	cfg, err := a.config()
	if err == nil {
		a.logger, a.closeLog, err = logging.New(cfg.Log)
	}
	if err != nil || a.logger == nil {
		a.logger, a.closeLog, _ = logging.New(config.LogConfig{})
	}
	return a.logger
}

func (a *App) openSettings() (*settings.Store, error) {
	if a.settings != nil {
		return a.settings, nil
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	s, err := settings.Open(cfg.StateDB)
	if err != nil {
		return nil, err
	}
	a.settings = s
	return s, nil
}

func (a *App) apiClient() (*api.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	c := api.NewClient(cfg.API.BaseURL, "")
	c.SetHTTPClient(&http.Client{Timeout: cfg.API.Timeout})
	a.client = c
	return c, nil
}

func (a *App) authManager() (*auth.Manager, error) {
	if a.auth != nil {
		return a.auth, nil
	}
	c, err := a.apiClient()
	if err != nil {
		return nil, err
	}
	a.auth = auth.NewManager(c, nil)
	return a.auth, nil
}

// requireSession authorizes the API client with the stored session.
func (a *App) requireSession() (*config.Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	m, err := a.authManager()
	if err != nil {
		return nil, err
	}
	s, err := m.Restore()
	if err != nil {
		return nil, err
	}
	a.session = s
	return s, nil
}

// controller builds the view controller over the persisted state.
func (a *App) controller() (*view.Controller, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	slots, err := a.openSettings()
	if err != nil {
		return nil, err
	}
	store := view.Load(slots, a.log())
	ctrl := view.NewController(store, view.NewSorterForLocale(cfg.UI.Locale))
	ctrl.SetClock(a.now)
	return ctrl, nil
}

// Close releases the settings database and the log file.
func (a *App) Close() error {
	var errs []error
	if a.settings != nil {
		errs = append(errs, a.settings.Close())
		a.settings = nil
	}
	if a.closeLog != nil {
		errs = append(errs, a.closeLog())
		a.closeLog = nil
	}
	return errors.Join(errs...)
}

// warn reports a problem that does not fail the command.
func warn(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
}
