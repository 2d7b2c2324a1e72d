package export

import (
	"fmt"
	"strings"

	"github.com/questmap/questmap-backend/internal/questgraph/domain"
	"github.com/questmap/questmap-backend/internal/questgraph/locale"
)

func ToDOT(g *domain.Graph, title string, loc locale.Localizer) (string, error) {
	var b strings.Builder
	b.WriteString("digraph G {\n  rankdir=LR;\n  node [shape=box, style=rounded];\n")
	if title != "" {
		b.WriteString(fmt.Sprintf(`  labelloc="t"; label=%q; fontname="Helvetica";`, title))
		b.WriteString("\n")
	}

	for _, n := range g.Nodes {
		name, err := loc.Get(n.Identifier(), "name")
		if err != nil {
			return "", fmt.Errorf("node %s: %w", n.Identifier(), err)
		}
		var style string
		switch n.(type) {
		case *domain.Quest:
			style = `shape=box,style="rounded,filled",fillcolor="#eef6ff"`
		case *domain.Achievement:
			style = `shape=ellipse,style="filled",fillcolor="#fff3cd"`
		}
		b.WriteString(fmt.Sprintf("  %q [label=%q, %s];\n", n.Identifier(), name, style))
	}

	for i, e := range g.Edges {
		b.WriteString(fmt.Sprintf("  %q -> %q [label=%q, tooltip=\"edge#%d\"];\n",
			e.From, e.To, string(e.Kind), i))
	}

	b.WriteString("}\n")
	return b.String(), nil
}

func WriteDOT(path, dot string) error {
	return writeFile(path, []byte(dot))
}
