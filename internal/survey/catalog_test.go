package survey

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kaanoztekin99/3d-object-generation/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadCatalogDefault(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	q, ok := c.Lookup("q1")
	require.True(t, ok)
	assert.Contains(t, q.ItemA, "midi3d")
	assert.Contains(t, q.ItemB, "partCrafter")
}

func TestLoadCatalogFromYAML(t *testing.T) {
	path := writeCatalog(t, `
questions:
  - id: chair
    text: Which chair looks right?
    item_a: assets/models/chair_a.glb
    item_b: assets/models/chair_b.glb
    image: assets/images/chair.png
  - id: lamp
    text: Which lamp looks right?
    item_a: assets/models/lamp_a.glb
    item_b: assets/models/lamp_b.glb
`)
	c, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "chair", c.Questions[0].ID)
	assert.Equal(t, "assets/models/lamp_b.glb", c.Questions[1].ItemB)

	_, ok := c.Lookup("table")
	assert.False(t, ok)
}

func TestLoadCatalogRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"empty", "questions: []\n", util.ErrEmptyCatalog},
		{"duplicate", `
questions:
  - {id: q1, item_a: a.glb, item_b: b.glb}
  - {id: q1, item_a: c.glb, item_b: d.glb}
`, util.ErrDuplicateQuestion},
		{"separator in id", `
questions:
  - {id: q_1, item_a: a.glb, item_b: b.glb}
`, util.ErrInvalidQuestion},
		{"missing model", `
questions:
  - {id: q1, item_a: a.glb}
`, util.ErrInvalidQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(writeCatalog(t, tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
