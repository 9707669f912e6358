package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// StashDir is the root of the local stash. It is a variable so tests can
// point it at a temporary directory.
var StashDir = ".stash"

const (
	CollectionsDir = "collections"
	ItemsDir       = "items"
	WishListDir    = "wishlist"
	CacheDir       = "cache"
	LogsDir        = "logs"
	ExportsDir     = "exports"
	SettingsFile   = "settings.toml"
	CategoriesFile = "categories.yaml"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// InitProjectStructure creates the stash directory layout
func InitProjectStructure() error {
	dirs := []string{
		StashDir,
		filepath.Join(StashDir, CollectionsDir),
		filepath.Join(StashDir, ItemsDir),
		filepath.Join(StashDir, WishListDir),
		filepath.Join(StashDir, CacheDir),
		filepath.Join(StashDir, LogsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists reports whether the stash directory has been initialised
func Exists() bool {
	info, err := os.Stat(StashDir)
	return err == nil && info.IsDir()
}

// Path joins elements onto the stash directory
func Path(elem ...string) string {
	return filepath.Join(append([]string{StashDir}, elem...)...)
}

// validateID rejects ids that would escape the record directory
func validateID(id string) error {
	if !validID.MatchString(id) {
		return oops.
			Code("VALIDATION_FAILED").
			With("id", id).
			Hint("Record ids may only contain letters, digits, '-' and '_'").
			Errorf("invalid record id %q", id)
	}
	return nil
}

func recordPath(dir, id string) string {
	return filepath.Join(StashDir, dir, id+".yaml")
}

// readRecord loads one YAML record
func readRecord[T any](dir, kind, id string) (*T, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(recordPath(dir, id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oops.
				Code("NOT_FOUND").
				With("kind", kind).
				With("id", id).
				Hint(fmt.Sprintf("Run 'stash list %s' to see available ids", dir)).
				Errorf("%s %q not found", kind, id)
		}
		return nil, oops.Code("STORE_FAILED").Wrapf(err, "reading %s %q", kind, id)
	}

	var record T
	if err := yaml.Unmarshal(content, &record); err != nil {
		return nil, oops.
			Code("STORE_FAILED").
			With("path", recordPath(dir, id)).
			Wrapf(err, "parsing %s YAML %q", kind, id)
	}

	return &record, nil
}

// writeRecord stores one YAML record atomically
func writeRecord[T any](dir, kind, id string, record *T) error {
	if err := validateID(id); err != nil {
		return err
	}

	content, err := yaml.Marshal(record)
	if err != nil {
		return oops.Code("STORE_FAILED").Wrapf(err, "marshalling %s %q", kind, id)
	}

	if err := WriteFileAtomic(recordPath(dir, id), content); err != nil {
		return oops.Code("STORE_FAILED").With("kind", kind).Wrapf(err, "writing %s %q", kind, id)
	}
	return nil
}

// listRecords loads every record in dir, sorted by file name. Files that
// fail to parse are skipped and reported through skipped.
func listRecords[T any](dir, kind string) (records []T, skipped []string, err error) {
	entries, err := os.ReadDir(filepath.Join(StashDir, dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil, nil
		}
		return nil, nil, oops.Code("STORE_FAILED").Wrapf(err, "listing %s records", kind)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	records = make([]T, 0, len(names))
	for _, name := range names {
		record, err := readRecord[T](dir, kind, strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			skipped = append(skipped, name)
			continue
		}
		records = append(records, *record)
	}

	return records, skipped, nil
}

func deleteRecord(dir, kind, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	if err := os.Remove(recordPath(dir, id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return oops.Code("NOT_FOUND").With("kind", kind).With("id", id).Errorf("%s %q not found", kind, id)
		}
		return oops.Code("STORE_FAILED").Wrapf(err, "deleting %s %q", kind, id)
	}
	return nil
}

// WriteFileAtomic writes content to a temporary file next to path and
// renames it into place
func WriteFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// WriteFile writes content to a file outside the stash (for exports)
func WriteFile(path string, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
