package files

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"

	"github.com/pluqqy/stash-cli/pkg/models"
)

// DefaultSettingsTOML is written by 'stash init'
const DefaultSettingsTOML = `# Stash settings

[storage]
# files keeps one YAML file per record; sqlite keeps everything in one database
driver = "files"
path = "stash.db"

[explore]
# endpoint of the public collection catalogue, empty disables Explore
endpoint = ""
requests_per_second = 2
timeout = "15s"

[ui]
show_preview = true

# Per-list default sort, for example:
# [lists.items]
# sort = "name"
# order = "asc"
`

// SettingsPath returns the settings file inside the stash directory
func SettingsPath() string {
	return filepath.Join(StashDir, SettingsFile)
}

// ReadSettings loads settings from path, or from the stash settings file
// when path is empty. A missing stash settings file yields the defaults; a
// missing explicit path is an error.
func ReadSettings(path string) (*models.Settings, error) {
	explicit := path != ""
	if !explicit {
		path = SettingsPath()
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return models.DefaultSettings(), nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, oops.
				Code("CONFIG_INVALID").
				With("path", path).
				Hint("Create the file or pass a valid --config path").
				Errorf("settings file %q does not exist", path)
		}
		return nil, oops.Wrapf(err, "checking settings file %q", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("path", path).
			Hint("Fix the TOML syntax in your settings file").
			Wrapf(err, "loading settings from %q", path)
	}

	settings := &models.Settings{}
	if err := k.Unmarshal("", settings); err != nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("path", path).
			Hint("Fix the settings structure to match the documented keys").
			Wrapf(err, "decoding settings from %q", path)
	}

	settings.ApplyDefaults()

	if err := models.Validator().Struct(settings); err != nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("path", path).
			Hint("Check storage.driver, explore.endpoint and list sort orders").
			Wrapf(err, "validating settings from %q", path)
	}

	return settings, nil
}

// WriteDefaultSettings creates the settings file unless it already exists.
// It reports whether a file was written.
func WriteDefaultSettings() (bool, error) {
	path := SettingsPath()
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := WriteFileAtomic(path, []byte(DefaultSettingsTOML)); err != nil {
		return false, oops.Code("CONFIG_INVALID").Wrapf(err, "writing default settings")
	}
	return true, nil
}
