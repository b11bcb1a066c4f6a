// Package catalog loads the static fabric and style catalog.
// The catalog is read once at startup and never mutated afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/gosimple/slug"
	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/logger"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yml
var defaultCatalog []byte

// Catalog holds the ordered fabric and style entries.
type Catalog struct {
	fabrics []design.CatalogItem
	styles  []design.CatalogItem
}

type file struct {
	Fabrics []design.CatalogItem `yaml:"fabrics"`
	Styles  []design.CatalogItem `yaml:"styles"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		// The embedded file is part of the binary.
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog override from path, or returns the embedded catalog
// when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	logger.Info("Loaded catalog from %s: %d fabrics, %d styles", path, len(c.fabrics), len(c.styles))
	return c, nil
}

// Parse decodes a YAML catalog. Entries without an id get one derived from
// their name; duplicate ids and nameless entries are rejected.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	fabrics, err := normalize("fabric", f.Fabrics)
	if err != nil {
		return nil, err
	}
	styles, err := normalize("style", f.Styles)
	if err != nil {
		return nil, err
	}

	return &Catalog{fabrics: fabrics, styles: styles}, nil
}

func normalize(kind string, items []design.CatalogItem) ([]design.CatalogItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no %s entries", kind)
	}

	seen := make(map[string]bool, len(items))
	out := make([]design.CatalogItem, 0, len(items))
	for i, item := range items {
		if item.DisplayName == "" {
			return nil, fmt.Errorf("%s %d has no name", kind, i)
		}
		if item.ID == "" {
			item.ID = slug.Make(item.DisplayName)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("duplicate %s id %q", kind, item.ID)
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out, nil
}

// Fabrics returns a copy of the fabric entries in display order.
func (c *Catalog) Fabrics() []design.CatalogItem {
	return append([]design.CatalogItem(nil), c.fabrics...)
}

// Styles returns a copy of the style entries in display order.
func (c *Catalog) Styles() []design.CatalogItem {
	return append([]design.CatalogItem(nil), c.styles...)
}

// Fabric looks up a fabric by id.
func (c *Catalog) Fabric(id string) (design.CatalogItem, bool) {
	return find(c.fabrics, id)
}

// Style looks up a style by id.
func (c *Catalog) Style(id string) (design.CatalogItem, bool) {
	return find(c.styles, id)
}

func find(items []design.CatalogItem, id string) (design.CatalogItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return design.CatalogItem{}, false
}
