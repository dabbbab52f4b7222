package app

import (
	"context"
	"fmt"

	"github.com/rosterhq/roster/internal/api"
	"github.com/rosterhq/roster/internal/config"
	"github.com/rosterhq/roster/internal/controller"
	"github.com/rosterhq/roster/internal/prefs"
	"github.com/rosterhq/roster/internal/ui"
)

// Options configure the roster TUI application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/roster/prefs.toml
	ServerURL  string // overrides the configured API URL when set
}

// Run boots the roster TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath, config.EnvTUI)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	apiURL := cfg.APIURL
	if opts.ServerURL != "" {
		apiURL = opts.ServerURL
	}

	client, err := api.NewClient(apiURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	ctrl := controller.New(client)

	uiOpts := ui.Options{
		Context:       ctx,
		Controller:    ctrl,
		ThemeName:     userPrefs.Theme,
		PrefsPath:     opts.PrefsPath,
		ConfirmDelete: userPrefs.ConfirmDelete,
	}
	return ui.Run(uiOpts)
}
