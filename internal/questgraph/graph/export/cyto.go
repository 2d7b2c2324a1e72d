package export

import (
	"fmt"

	"github.com/questmap/questmap-backend/internal/questgraph/domain"
	"github.com/questmap/questmap-backend/internal/questgraph/locale"
)

// Elements is a Cytoscape elements definition.
type Elements struct {
	Nodes []CytoNode `json:"nodes" yaml:"nodes"`
	Edges []CytoEdge `json:"edges" yaml:"edges"`
}

type CytoNode struct {
	Data CytoNodeData `json:"data" yaml:"data"`
}

type CytoNodeData struct {
	ID    string          `json:"id" yaml:"id"`
	Type  domain.NodeKind `json:"type" yaml:"type"`
	Name  string          `json:"name" yaml:"name"`
	Group int             `json:"group" yaml:"group"`
}

// CytoEdge carries "<from>-<to>" outside of data. Parallel edges of different
// kinds share it, so it is not handed to Cytoscape as the element id.
type CytoEdge struct {
	ID   string       `json:"id" yaml:"id"`
	Data CytoEdgeData `json:"data" yaml:"data"`
}

type CytoEdgeData struct {
	Source string              `json:"source" yaml:"source"`
	Target string              `json:"target" yaml:"target"`
	Type   domain.RelationKind `json:"type" yaml:"type"`
}

// ToCyto maps every node and edge of g, in order, to Cytoscape elements.
// Node names come from loc; the first lookup failure aborts the projection.
func ToCyto(g *domain.Graph, loc locale.Localizer) (*Elements, error) {
	out := &Elements{
		Nodes: make([]CytoNode, 0, len(g.Nodes)),
		Edges: make([]CytoEdge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		name, err := loc.Get(n.Identifier(), "name")
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.Identifier(), err)
		}
		out.Nodes = append(out.Nodes, CytoNode{Data: CytoNodeData{
			ID:    n.Identifier(),
			Type:  n.Kind(),
			Name:  name,
			Group: n.GroupID(),
		}})
	}
	for _, e := range g.Edges {
		out.Edges = append(out.Edges, CytoEdge{
			ID:   e.From + "-" + e.To,
			Data: CytoEdgeData{Source: e.From, Target: e.To, Type: e.Kind},
		})
	}
	return out, nil
}
