package models

import "time"

// Settings represents the application configuration
type Settings struct {
	Storage StorageSettings         `koanf:"storage" toml:"storage"`
	Explore ExploreSettings         `koanf:"explore" toml:"explore"`
	UI      UISettings              `koanf:"ui" toml:"ui"`
	Lists   map[string]ListSettings `koanf:"lists" toml:"lists" validate:"dive"`
}

// StorageSettings selects the record store backend
type StorageSettings struct {
	Driver string `koanf:"driver" toml:"driver" validate:"oneof=files sqlite"`
	// Path is the sqlite database file, relative to the stash directory
	Path string `koanf:"path" toml:"path"`
}

// ExploreSettings configures the public collection catalogue
type ExploreSettings struct {
	Endpoint          string        `koanf:"endpoint" toml:"endpoint" validate:"omitempty,url"`
	RequestsPerSecond float64       `koanf:"requests_per_second" toml:"requests_per_second" validate:"gte=0"`
	Timeout           time.Duration `koanf:"timeout" toml:"timeout"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowPreview bool `koanf:"show_preview" toml:"show_preview"`
}

// ListSettings overrides the default sort of one list
type ListSettings struct {
	Sort  string `koanf:"sort" toml:"sort"`
	Order string `koanf:"order" toml:"order" validate:"omitempty,oneof=asc desc"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Storage: StorageSettings{
			Driver: "files",
			Path:   "stash.db",
		},
		Explore: ExploreSettings{
			Endpoint:          "",
			RequestsPerSecond: 2,
			Timeout:           15 * time.Second,
		},
		UI: UISettings{
			ShowPreview: true,
		},
		Lists: map[string]ListSettings{},
	}
}

// ApplyDefaults fills zero values with defaults
func (s *Settings) ApplyDefaults() {
	defaults := DefaultSettings()
	if s.Storage.Driver == "" {
		s.Storage.Driver = defaults.Storage.Driver
	}
	if s.Storage.Path == "" {
		s.Storage.Path = defaults.Storage.Path
	}
	if s.Explore.RequestsPerSecond == 0 {
		s.Explore.RequestsPerSecond = defaults.Explore.RequestsPerSecond
	}
	if s.Explore.Timeout == 0 {
		s.Explore.Timeout = defaults.Explore.Timeout
	}
	if s.Lists == nil {
		s.Lists = map[string]ListSettings{}
	}
}
