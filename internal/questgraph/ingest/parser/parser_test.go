package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questmap/questmap-backend/internal/questgraph/domain"
)

const datasetJSON = `{
  "nodes": [
    {"id": "q1", "type": "quest", "requirements": "", "categoryId": 1, "achCatId": 2, "levels": [1, 50]},
    {"id": "a1", "type": "achievement", "requirements": "", "categoryId": 3, "dispCatId": 4, "order": 1, "level": 50}
  ],
  "edges": [{"from": "q1", "to": "a1", "type": "FINISHED"}],
  "achievementCategories": [],
  "questCategories": [],
  "almanax": [],
  "titles": []
}`

const datasetYAML = `
nodes:
  - id: q1
    type: quest
    categoryId: 1
    achCatId: 2
    levels: [1, 50]
  - id: a1
    type: achievement
    categoryId: 3
    dispCatId: 4
    order: 1
    level: 50
edges:
  - {from: q1, to: a1, type: FINISHED}
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		g, fp, err := Load(writeFile(t, "data.json", datasetJSON))
		require.NoError(t, err)
		assert.Len(t, g.Nodes, 2)
		assert.Equal(t, Fingerprint([]byte(datasetJSON)), fp)
		assert.Len(t, fp, 64)
	})

	t.Run("yaml", func(t *testing.T) {
		g, _, err := Load(writeFile(t, "data.yml", datasetYAML))
		require.NoError(t, err)
		require.Len(t, g.Nodes, 2)
		assert.Equal(t, [2]int{1, 50}, g.Nodes[0].(*domain.Quest).Levels)
		assert.Equal(t, []domain.Edge{{From: "q1", To: "a1", Kind: domain.RelFinished}}, g.Edges)
	})

	t.Run("json and yaml agree", func(t *testing.T) {
		a, err := ParseJSONBytes([]byte(datasetJSON))
		require.NoError(t, err)
		b, err := ParseYAMLBytes([]byte(datasetYAML))
		require.NoError(t, err)
		assert.Equal(t, a.Nodes, b.Nodes)
		assert.Equal(t, a.Edges, b.Edges)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, _, err := Load(writeFile(t, "data.toml", datasetJSON))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseJSONBytes([]byte(`{"nodes": 3}`))
		assert.Error(t, err)
	})
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint([]byte("abc")), Fingerprint([]byte("abc")))
	assert.NotEqual(t, Fingerprint([]byte("abc")), Fingerprint([]byte("abd")))
}
