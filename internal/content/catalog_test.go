package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	require.Len(t, c.Modules(), 7)
	require.Equal(t, 25, c.ActionItemCount())

	m, ok := c.Module(1)
	require.True(t, ok)
	require.Equal(t, "Market Strategy & Mindset", m.Title)
	require.Len(t, m.Concepts, 4)
	require.Equal(t, "The Visual Search Engine Shift", m.Concepts[0].Title)

	item, owner, ok := c.ActionItem("m4-2")
	require.True(t, ok)
	require.Equal(t, 4, owner.ID)
	require.Contains(t, item.Text, "Notary Intake Forms")

	_, _, ok = c.ActionItem("m9-9")
	require.False(t, ok)
	_, ok = c.Module(42)
	require.False(t, ok)
}

func TestParseRejectsDuplicateActionItems(t *testing.T) {
	data := []byte(`
modules:
  - id: 1
    title: One
    action_items:
      - id: a
        text: first
  - id: 2
    title: Two
    action_items:
      - id: a
        text: again
`)
	_, err := Parse(data)
	require.ErrorContains(t, err, `duplicate action item id "a"`)
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := map[string]string{
		"empty":           `modules: []`,
		"duplicate id":    "modules:\n  - id: 1\n    title: A\n  - id: 1\n    title: B\n",
		"missing title":   "modules:\n  - id: 1\n",
		"blank item id":   "modules:\n  - id: 1\n    title: A\n    action_items:\n      - text: x\n",
		"not yaml at all": "modules: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			require.Error(t, err)
		})
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modules:\n  - id: 3\n    title: Solo\n    action_items:\n      - id: s-1\n        text: do it\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.ActionItemCount())

	c, err = Load("")
	require.NoError(t, err)
	require.Equal(t, 25, c.ActionItemCount())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
