package graph

import "github.com/questmap/questmap-backend/internal/questgraph/domain"

// Index is a read-only view over a graph with the lookups the filter needs.
// It is safe for concurrent use once built.
type Index struct {
	g     *domain.Graph
	nodes map[string]domain.Node
	// reverse adjacency: to -> distinct from ids
	in map[string][]string
}

func NewIndex(g *domain.Graph) *Index {
	idx := &Index{
		g:     g,
		nodes: make(map[string]domain.Node, len(g.Nodes)),
		in:    map[string][]string{},
	}
	for _, n := range g.Nodes {
		idx.nodes[n.Identifier()] = n
	}

	seen := map[[2]string]struct{}{}
	for _, e := range g.Edges {
		k := [2]string{e.From, e.To}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		idx.in[e.To] = append(idx.in[e.To], e.From)
	}
	return idx
}

func (idx *Index) Graph() *domain.Graph { return idx.g }

func (idx *Index) Node(id string) (domain.Node, bool) {
	n, ok := idx.nodes[id]
	return n, ok
}

// Predecessors returns targetID and every id reachable from it by walking
// edges backwards. targetID is always a member, known node or not.
func (idx *Index) Predecessors(targetID string) map[string]struct{} {
	reachable := map[string]struct{}{targetID: {}}
	queue := []string{targetID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, from := range idx.in[cur] {
			if _, ok := reachable[from]; ok {
				continue
			}
			reachable[from] = struct{}{}
			queue = append(queue, from)
		}
	}
	return reachable
}
