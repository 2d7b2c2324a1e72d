package questgraph

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questmap/questmap-backend/internal/questgraph/domain"
	"github.com/questmap/questmap-backend/internal/questgraph/graph/export"
	"github.com/questmap/questmap-backend/internal/questgraph/locale"
	"github.com/questmap/questmap-backend/internal/questgraph/service"
)

const dataset = `{
  "nodes": [
    {"id": "A", "type": "quest", "achCatId": 1, "levels": [1, 10]},
    {"id": "B", "type": "quest", "achCatId": 1, "levels": [10, 20]},
    {"id": "C", "type": "achievement", "dispCatId": 2, "level": 20}
  ],
  "edges": [
    {"from": "A", "to": "B", "type": "FINISHED"},
    {"from": "B", "to": "C", "type": "IN_PROGRESS"}
  ],
  "titles": [3]
}`

func setupRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))

	cat := locale.NewCatalog("en")
	cat.Add("en", locale.Table{"A": {"name": "Alpha"}, "B": {"name": "Beta"}})
	cat.Add("fr", locale.Table{"A": {"name": "Alphä"}})

	svc, err := service.New(service.Options{DataPath: path, Catalog: cat})
	require.NoError(t, err)

	r := gin.New()
	h := New(svc, "en", nil)
	h.Register(r.Group("/api/v1"))
	h.RegisterAdmin(r.Group("/api/v1/admin"))
	return r, path
}

func do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestFullGraph(t *testing.T) {
	r, _ := setupRouter(t)

	rr := do(r, http.MethodGet, "/api/v1/graph")
	require.Equal(t, http.StatusOK, rr.Code)

	var g domain.Graph
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	assert.Len(t, g.Nodes, 3)
	assert.Equal(t, []int{3}, g.Titles)
}

func TestGetNode(t *testing.T) {
	r, _ := setupRouter(t)

	rr := do(r, http.MethodGet, "/api/v1/nodes/C")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"type":"achievement","id":"C","requirements":"","categoryId":0,"dispCatId":2,"order":0,"level":20}`, rr.Body.String())

	rr = do(r, http.MethodGet, "/api/v1/nodes/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPredecessors(t *testing.T) {
	r, _ := setupRouter(t)

	t.Run("json", func(t *testing.T) {
		rr := do(r, http.MethodGet, "/api/v1/nodes/B/predecessors")
		require.Equal(t, http.StatusOK, rr.Code)

		var g domain.Graph
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
		require.Len(t, g.Nodes, 2)
		assert.Equal(t, "A", g.Nodes[0].Identifier())
		assert.Equal(t, []domain.Edge{{From: "A", To: "B", Kind: domain.RelFinished}}, g.Edges)
		assert.Equal(t, []int{3}, g.Titles)
	})

	t.Run("unknown id is an empty graph", func(t *testing.T) {
		rr := do(r, http.MethodGet, "/api/v1/nodes/ZZZ/predecessors")
		require.Equal(t, http.StatusOK, rr.Code)

		var g domain.Graph
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
		assert.Empty(t, g.Nodes)
		assert.Empty(t, g.Edges)
	})

	t.Run("yaml", func(t *testing.T) {
		rr := do(r, http.MethodGet, "/api/v1/nodes/B/predecessors?format=yaml")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "application/yaml"))
		assert.Contains(t, rr.Body.String(), "type: quest")
	})

	t.Run("dot", func(t *testing.T) {
		rr := do(r, http.MethodGet, "/api/v1/nodes/B/predecessors?format=dot&lang=fr")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"A" [label="Alphä"`)
	})

	t.Run("dot with missing name", func(t *testing.T) {
		rr := do(r, http.MethodGet, "/api/v1/nodes/C/predecessors?format=dot")
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("bad format", func(t *testing.T) {
		rr := do(r, http.MethodGet, "/api/v1/nodes/B/predecessors?format=xml")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestElements(t *testing.T) {
	r, _ := setupRouter(t)

	rr := do(r, http.MethodGet, "/api/v1/nodes/B/elements?lang=fr")
	require.Equal(t, http.StatusOK, rr.Code)

	var els export.Elements
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &els))
	require.Len(t, els.Nodes, 2)
	assert.Equal(t, "Alphä", els.Nodes[0].Data.Name)
	assert.Equal(t, "Beta", els.Nodes[1].Data.Name)
	assert.Equal(t, "A-B", els.Edges[0].ID)

	rr = do(r, http.MethodGet, "/api/v1/graph/elements")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, "C has no name")
}

func TestReload(t *testing.T) {
	r, path := setupRouter(t)

	rr := do(r, http.MethodPost, "/api/v1/admin/reload")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp ReloadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Reloaded)
	firstLoad := resp.LoadedAt
	assert.False(t, firstLoad.IsZero())

	require.NoError(t, os.WriteFile(path, []byte(`{"nodes":[{"id":"A","type":"quest"}]}`), 0o644))
	rr = do(r, http.MethodPost, "/api/v1/admin/reload")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Reloaded)
	assert.False(t, resp.LoadedAt.Before(firstLoad))

	rr = do(r, http.MethodGet, "/api/v1/graph")
	var g domain.Graph
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	assert.Len(t, g.Nodes, 1)

	require.NoError(t, os.WriteFile(path, []byte(`nope`), 0o644))
	rr = do(r, http.MethodPost, "/api/v1/admin/reload")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
