package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/pluqqy/stash-cli/pkg/categories"
	"github.com/pluqqy/stash-cli/pkg/explore"
	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/lists"
	"github.com/pluqqy/stash-cli/pkg/models"
	"github.com/pluqqy/stash-cli/pkg/store"
)

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	// ConfigPath overrides the settings file (--config)
	ConfigPath string
	Settings   *models.Settings
	Logger     *log.Logger
	validated  bool
}

// NewCommandContext creates a new command context
func NewCommandContext(configPath string, logger *log.Logger) *CommandContext {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &CommandContext{
		ProjectPath: files.StashDir,
		ConfigPath:  configPath,
		Logger:      logger,
	}
}

// ValidateProject ensures the stash is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return fmt.Errorf("no .stash directory found. Run 'stash init' first")
	}

	c.validated = true
	return nil
}

// LoadSettings reads settings once. An invalid settings file is an error.
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}

	settings, err := files.ReadSettings(c.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	c.Settings = settings
	return settings, nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	settings, err := c.LoadSettings()
	if err != nil {
		c.Logger.Warn("using default settings", "err", err)
		settings = models.DefaultSettings()
		c.Settings = settings
	}
	return settings
}

// ListOptions returns the options every list controller is built with
func (c *CommandContext) ListOptions() lists.Options {
	return lists.Options{
		Settings: c.LoadSettingsWithDefault(),
		Logger:   c.Logger,
	}
}

// OpenStore opens the store selected by settings
func (c *CommandContext) OpenStore() (store.Store, error) {
	settings, err := c.LoadSettings()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(settings, c.Logger.WithPrefix("store"))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

// LoadSnapshot opens the store, loads every record and closes it again
func (c *CommandContext) LoadSnapshot(ctx context.Context) (*store.Snapshot, error) {
	st, err := c.OpenStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()

	snap, err := store.LoadSnapshot(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return snap, nil
}

// Explore returns a client for the public catalogue. Callers must Close it.
func (c *CommandContext) Explore() *explore.Client {
	settings := c.LoadSettingsWithDefault()
	return explore.New(settings.Explore, explore.WithLogger(c.Logger.WithPrefix("explore")))
}

// Categories loads the category registry
func (c *CommandContext) Categories() (*categories.Registry, error) {
	return categories.NewRegistry()
}
