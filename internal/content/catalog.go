package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Concept struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Details string `yaml:"details"`
}

type ActionItem struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

type Module struct {
	ID          int          `yaml:"id"`
	Title       string       `yaml:"title"`
	Duration    string       `yaml:"duration"`
	Description string       `yaml:"description"`
	Overview    string       `yaml:"overview"`
	Concepts    []Concept    `yaml:"concepts"`
	ActionItems []ActionItem `yaml:"action_items"`
}

// Catalog is the read-only course content. It is built once and never mutated.
type Catalog struct {
	modules []Module
	items   map[string]itemRef
}

type itemRef struct {
	module int // index into modules
	item   int
}

type catalogFile struct {
	Modules []Module `yaml:"modules"`
}

// Default parses the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from disk. An empty path falls back to Default.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{modules: f.Modules, items: map[string]itemRef{}}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	if len(c.modules) == 0 {
		return errors.New("catalog has no modules")
	}
	seenModules := map[int]bool{}
	for mi, m := range c.modules {
		if seenModules[m.ID] {
			return fmt.Errorf("duplicate module id %d", m.ID)
		}
		seenModules[m.ID] = true
		if strings.TrimSpace(m.Title) == "" {
			return fmt.Errorf("module %d has no title", m.ID)
		}
		for ci, concept := range m.Concepts {
			if strings.TrimSpace(concept.Title) == "" {
				return fmt.Errorf("module %d concept %d has no title", m.ID, ci+1)
			}
		}
		for ii, it := range m.ActionItems {
			if strings.TrimSpace(it.ID) == "" {
				return fmt.Errorf("module %d action item %d has no id", m.ID, ii+1)
			}
			// Completion state is keyed by item id, so ids must be unique catalog-wide.
			if _, dup := c.items[it.ID]; dup {
				return fmt.Errorf("duplicate action item id %q", it.ID)
			}
			c.items[it.ID] = itemRef{module: mi, item: ii}
		}
	}
	return nil
}

// Modules returns the modules in catalog order. The slice must not be modified.
func (c *Catalog) Modules() []Module { return c.modules }

func (c *Catalog) Module(id int) (*Module, bool) {
	for i := range c.modules {
		if c.modules[i].ID == id {
			return &c.modules[i], true
		}
	}
	return nil, false
}

// ActionItemCount is the number of checklist items across all modules.
func (c *Catalog) ActionItemCount() int { return len(c.items) }

// ActionItem looks up an item by id and reports the module that owns it.
func (c *Catalog) ActionItem(id string) (ActionItem, *Module, bool) {
	ref, ok := c.items[id]
	if !ok {
		return ActionItem{}, nil, false
	}
	m := &c.modules[ref.module]
	return m.ActionItems[ref.item], m, true
}
