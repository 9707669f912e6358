// Package categories manages the category registry and counts how often
// each category is used across collections, items and the wish list.
package categories

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// Registry manages the category registry of a stash
type Registry struct {
	mu       sync.RWMutex
	registry *models.CategoryRegistry
	path     string
}

// NewRegistry loads the registry, starting empty when none exists yet
func NewRegistry() (*Registry, error) {
	r := &Registry{
		path: filepath.Join(files.StashDir, files.CategoriesFile),
	}

	if err := r.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.registry = &models.CategoryRegistry{Categories: []models.Category{}}
			return r, nil
		}
		return nil, fmt.Errorf("failed to load category registry: %w", err)
	}

	return r, nil
}

// Load reads the registry from disk
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}

	var registry models.CategoryRegistry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return oops.
			Code("STORE_FAILED").
			With("path", r.path).
			Wrapf(err, "parsing category registry")
	}

	r.registry = &registry
	return nil
}

// Save writes the registry to disk
func (r *Registry) Save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := yaml.Marshal(r.registry)
	if err != nil {
		return fmt.Errorf("failed to marshal category registry: %w", err)
	}

	if err := files.WriteFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("failed to save category registry: %w", err)
	}
	return nil
}

// Get retrieves category metadata by name
func (r *Registry) Get(name string) (models.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := models.NormalizeCategory(name)
	for _, c := range r.registry.Categories {
		if models.NormalizeCategory(c.Name) == normalized {
			return c, true
		}
	}
	return models.Category{}, false
}

// Add adds or updates a category
func (r *Registry) Add(category models.Category) error {
	if err := models.ValidateCategory(category.Name); err != nil {
		return oops.
			Code("VALIDATION_FAILED").
			With("category", category.Name).
			Wrapf(err, "invalid category name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	category.Name = models.NormalizeCategory(category.Name)
	for i, existing := range r.registry.Categories {
		if models.NormalizeCategory(existing.Name) == category.Name {
			r.registry.Categories[i] = category
			return nil
		}
	}

	r.registry.Categories = append(r.registry.Categories, category)
	return nil
}

// Remove deletes a category from the registry. Records keep their category.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	normalized := models.NormalizeCategory(name)
	kept := make([]models.Category, 0, len(r.registry.Categories))
	found := false
	for _, c := range r.registry.Categories {
		if models.NormalizeCategory(c.Name) == normalized {
			found = true
			continue
		}
		kept = append(kept, c)
	}

	if !found {
		return oops.Code("NOT_FOUND").With("category", name).Errorf("category %q not found in registry", name)
	}

	r.registry.Categories = kept
	return nil
}

// List returns every registered category sorted by name
func (r *Registry) List() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Category, len(r.registry.Categories))
	copy(out, r.registry.Categories)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Color returns the display color of a category
func (r *Registry) Color(name string) string {
	c, _ := r.Get(name)
	return models.CategoryColor(models.NormalizeCategory(name), c.Color)
}

// Register adds any of names not yet in the registry with an automatic
// color and saves when something changed. Invalid names are skipped.
func (r *Registry) Register(names ...string) ([]string, error) {
	var added []string
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, exists := r.Get(name); exists {
			continue
		}
		normalized := models.NormalizeCategory(name)
		if err := r.Add(models.Category{Name: normalized, Color: models.CategoryColor(normalized, "")}); err != nil {
			continue
		}
		added = append(added, normalized)
	}

	if len(added) == 0 {
		return nil, nil
	}
	return added, r.Save()
}
