package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/questmap/questmap-backend/internal/questgraph/domain"
	"github.com/questmap/questmap-backend/internal/questgraph/ingest/parser"
)

func runStats(cmd *cobra.Command, _ []string) error {
	g, fp, err := parser.Load(dataPath)
	if err != nil {
		return err
	}

	nodes := map[domain.NodeKind]int{}
	for _, n := range g.Nodes {
		nodes[n.Kind()]++
	}
	edges := map[domain.RelationKind]int{}
	for _, e := range g.Edges {
		edges[e.Kind]++
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "fingerprint: %s\n", fp)
	fmt.Fprintf(out, "nodes: %d (quest %d, achievement %d)\n",
		len(g.Nodes), nodes[domain.NodeQuest], nodes[domain.NodeAchievement])
	fmt.Fprintf(out, "edges: %d\n", len(g.Edges))

	kinds := make([]string, 0, len(edges))
	for k := range edges {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(out, "  %s: %d\n", k, edges[domain.RelationKind(k)])
	}
	return nil
}
