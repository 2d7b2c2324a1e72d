// Package locale resolves display strings for graph nodes.
package locale

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrMissingTranslation = errors.New("missing translation")

// Localizer returns the display string of one field of one node.
type Localizer interface {
	Get(id, field string) (string, error)
}

// Table holds the translations of one language: id -> field -> text.
type Table map[string]map[string]string

// Static is a single-table localizer.
type Static Table

func (s Static) Get(id, field string) (string, error) {
	if v, ok := s[id][field]; ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s.%s", ErrMissingTranslation, id, field)
}

// IdentityLocalizer answers every lookup with the id itself.
type IdentityLocalizer struct{}

func (IdentityLocalizer) Get(id, _ string) (string, error) { return id, nil }

type Catalog struct {
	fallback string
	tables   map[string]Table
}

func NewCatalog(fallback string) *Catalog {
	return &Catalog{fallback: fallback, tables: map[string]Table{}}
}

func (c *Catalog) Add(lang string, t Table) {
	c.tables[lang] = t
}

// Resolve names the table For(lang) reads first: lang itself when the
// catalog has it, the fallback language otherwise.
func (c *Catalog) Resolve(lang string) string {
	if _, ok := c.tables[lang]; ok {
		return lang
	}
	return c.fallback
}

func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.tables))
	for l := range c.tables {
		out = append(out, l)
	}
	return out
}

// For returns a localizer for lang that falls back to the catalog's fallback
// language. An unknown or empty lang uses the fallback only.
func (c *Catalog) For(lang string) Localizer {
	return chain{c.tables[lang], c.tables[c.fallback]}
}

type chain []Table

func (ch chain) Get(id, field string) (string, error) {
	for _, t := range ch {
		if v, ok := t[id][field]; ok {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s.%s", ErrMissingTranslation, id, field)
}

// LoadDir reads every <lang>.json, <lang>.yaml and <lang>.yml file in dir.
func LoadDir(dir, fallback string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read locale dir: %w", err)
	}

	c := NewCatalog(fallback)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		lang := strings.TrimSuffix(e.Name(), ext)

		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}

		var t Table
		switch strings.ToLower(ext) {
		case ".json":
			err = json.Unmarshal(b, &t)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(b, &t)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", e.Name(), err)
		}
		c.Add(lang, t)
	}

	if _, ok := c.tables[fallback]; !ok {
		return nil, fmt.Errorf("locale dir %s has no table for fallback language %q", dir, fallback)
	}
	return c, nil
}
