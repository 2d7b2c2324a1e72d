// Package graph derives subgraphs from a loaded quest graph.
package graph

import (
	"slices"

	"github.com/questmap/questmap-backend/internal/questgraph/domain"
)

// OnlyPredecessors returns the subgraph induced by targetID and all of its
// transitive predecessors. Nodes and edges keep their input order; an edge
// survives only when both endpoints do. Category, almanax and title data is
// copied through. The input graph is never modified or aliased.
func OnlyPredecessors(g *domain.Graph, targetID string) *domain.Graph {
	return NewIndex(g).OnlyPredecessors(targetID)
}

func (idx *Index) OnlyPredecessors(targetID string) *domain.Graph {
	keep := idx.Predecessors(targetID)
	g := idx.g

	out := &domain.Graph{
		Nodes:                 make(domain.NodeList, 0, len(keep)),
		Edges:                 make([]domain.Edge, 0),
		AchievementCategories: slices.Clone(g.AchievementCategories),
		QuestCategories:       slices.Clone(g.QuestCategories),
		Almanax:               slices.Clone(g.Almanax),
		Titles:                slices.Clone(g.Titles),
	}
	for _, n := range g.Nodes {
		if _, ok := keep[n.Identifier()]; ok {
			out.Nodes = append(out.Nodes, n.Clone())
		}
	}
	for _, e := range g.Edges {
		_, fromOK := keep[e.From]
		_, toOK := keep[e.To]
		if fromOK && toOK {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}
