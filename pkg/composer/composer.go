// Package composer renders list results as Markdown documents for export
// and the clipboard.
package composer

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/stash-cli/pkg/files"
	"github.com/pluqqy/stash-cli/pkg/lists"
	"github.com/pluqqy/stash-cli/pkg/models"
)

// WrapWidth is the column descriptions are wrapped at
const WrapWidth = 80

const dateFormat = "2006-01-02"

// document accumulates Markdown sections
type document struct {
	b strings.Builder
}

func newDocument(title string, count int, noun string) *document {
	d := &document{}
	d.b.WriteString(fmt.Sprintf("# %s\n\n", title))
	d.b.WriteString(fmt.Sprintf("_%d %s_\n\n", count, plural(count, noun)))
	return d
}

func (d *document) heading(format string, args ...any) {
	d.b.WriteString("## " + fmt.Sprintf(format, args...) + "\n\n")
}

// field writes a bullet, skipping empty values
func (d *document) field(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	d.b.WriteString(fmt.Sprintf("- **%s:** %s\n", label, value))
}

func (d *document) paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	d.b.WriteString("\n" + wordwrap.String(text, WrapWidth) + "\n")
}

func (d *document) endSection() {
	d.b.WriteString("\n")
}

func (d *document) String() string {
	return strings.TrimRight(d.b.String(), "\n") + "\n"
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func stars(rating int) string {
	if rating <= 0 {
		return ""
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", max(0, 5-rating))
}

// ComposeCollections renders collections in the given order
func ComposeCollections(title string, collections []models.Collection) string {
	d := newDocument(title, len(collections), "collection")
	for _, c := range collections {
		d.heading("%s", c.Name)
		d.field("Category", c.Category)
		d.field("Items", fmt.Sprint(len(c.ItemIDs)))
		d.field("Public", yesNo(c.Public))
		d.field("Owner", c.Owner)
		d.field("Tags", strings.Join(c.Tags, ", "))
		d.field("Updated", formatDate(c.UpdatedAt))
		d.paragraph(c.Description)
		d.endSection()
	}
	return d.String()
}

func writeItem(d *document, item models.Item) {
	d.field("Category", item.Category)
	d.field("Rating", stars(item.Rating))
	if item.Favorite {
		d.field("Favorite", "yes")
	}
	d.field("Tags", strings.Join(item.Tags, ", "))
	d.field("Acquired", formatDate(item.AcquiredAt))
	d.field("Image", item.ImageURL)
	d.paragraph(item.Description)
	d.endSection()
}

// ComposeItems renders items in the given order
func ComposeItems(title string, items []models.Item) string {
	d := newDocument(title, len(items), "item")
	for _, item := range items {
		d.heading("%s", item.Name)
		writeItem(d, item)
	}
	return d.String()
}

// ComposeCollection renders the items of one collection, numbered in the
// order given
func ComposeCollection(collection models.Collection, items []lists.PositionedItem) string {
	d := newDocument(collection.Name, len(items), "item")
	d.paragraph(collection.Description)
	if strings.TrimSpace(collection.Description) != "" {
		d.endSection()
	}
	for i, p := range items {
		d.heading("%d. %s", i+1, p.Name)
		writeItem(d, p.Item)
	}
	return d.String()
}

// ComposeWishList renders wish list entries in the given order
func ComposeWishList(title string, wishes []models.WishItem) string {
	d := newDocument(title, len(wishes), "wish")
	for _, w := range wishes {
		name := w.Name
		if w.Purchased {
			name = "~~" + name + "~~"
		}
		d.heading("%s", name)
		d.field("Priority", string(w.Priority))
		if w.Price > 0 {
			d.field("Price", fmt.Sprintf("%.2f", w.Price))
		}
		d.field("Category", w.Category)
		d.field("Link", w.URL)
		d.paragraph(w.Notes)
		d.endSection()
	}
	return d.String()
}

// WriteMarkdown writes a composed document, defaulting the file name to the
// slug of title
func WriteMarkdown(content, outputPath, title string) (string, error) {
	if outputPath == "" {
		outputPath = files.Slugify(title) + ".md"
	}

	if err := files.WriteFile(outputPath, content); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	return outputPath, nil
}
