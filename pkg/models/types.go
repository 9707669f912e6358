package models

import (
	"strings"
	"time"
)

// Collection is a named, ordered group of items owned by one user
type Collection struct {
	ID          string    `yaml:"id" json:"id" validate:"required"`
	Name        string    `yaml:"name" json:"name" validate:"required,max=120"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty" validate:"max=2000"`
	Category    string    `yaml:"category,omitempty" json:"category,omitempty" validate:"omitempty,category"`
	Tags        []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
	Public      bool      `yaml:"public" json:"public"`
	Owner       string    `yaml:"owner,omitempty" json:"owner,omitempty"`
	// ItemIDs is the owner's custom order of the collection's items
	ItemIDs   []string  `yaml:"item_ids,omitempty" json:"itemIds,omitempty"`
	CreatedAt time.Time `yaml:"created_at" json:"createdAt"`
	UpdatedAt time.Time `yaml:"updated_at" json:"updatedAt"`
}

// Item is a single catalogued object
type Item struct {
	ID            string    `yaml:"id" json:"id" validate:"required"`
	Name          string    `yaml:"name" json:"name" validate:"required,max=120"`
	Description   string    `yaml:"description,omitempty" json:"description,omitempty" validate:"max=2000"`
	Category      string    `yaml:"category,omitempty" json:"category,omitempty" validate:"omitempty,category"`
	Tags          []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
	Rating        int       `yaml:"rating,omitempty" json:"rating,omitempty" validate:"min=0,max=5"`
	Favorite      bool      `yaml:"favorite" json:"favorite"`
	ImageURL      string    `yaml:"image_url,omitempty" json:"imageUrl,omitempty" validate:"omitempty,url"`
	CollectionIDs []string  `yaml:"collection_ids,omitempty" json:"collectionIds,omitempty"`
	AcquiredAt    time.Time `yaml:"acquired_at,omitempty" json:"acquiredAt,omitempty"`
	CreatedAt     time.Time `yaml:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `yaml:"updated_at" json:"updatedAt"`
}

// WishItem is an entry on the wish list
type WishItem struct {
	ID        string    `yaml:"id" json:"id" validate:"required"`
	Name      string    `yaml:"name" json:"name" validate:"required,max=120"`
	Notes     string    `yaml:"notes,omitempty" json:"notes,omitempty" validate:"max=2000"`
	Category  string    `yaml:"category,omitempty" json:"category,omitempty" validate:"omitempty,category"`
	Priority  Priority  `yaml:"priority,omitempty" json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Price     float64   `yaml:"price,omitempty" json:"price,omitempty" validate:"min=0"`
	URL       string    `yaml:"url,omitempty" json:"url,omitempty" validate:"omitempty,url"`
	Purchased bool      `yaml:"purchased" json:"purchased"`
	CreatedAt time.Time `yaml:"created_at" json:"createdAt"`
	UpdatedAt time.Time `yaml:"updated_at" json:"updatedAt"`
}

// Priority ranks wish list entries
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorityRanks = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
}

// Rank returns the ordinal of a priority; unset or unknown priorities rank 0
func (p Priority) Rank() int {
	return priorityRanks[p]
}

// ParsePriority converts user input to a Priority. The second return value
// is false when the input names no known priority.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := priorityRanks[p]; ok {
		return p, true
	}
	return "", false
}

// HasItems reports whether the collection holds at least one item
func (c Collection) HasItems() bool {
	return len(c.ItemIDs) > 0
}

// HasImage reports whether the item has an image attached
func (i Item) HasImage() bool {
	return i.ImageURL != ""
}

// InCollection reports whether the item belongs to any collection
func (i Item) InCollection() bool {
	return len(i.CollectionIDs) > 0
}
