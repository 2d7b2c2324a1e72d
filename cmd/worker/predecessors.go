package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/questmap/questmap-backend/internal/questgraph/domain"
	"github.com/questmap/questmap-backend/internal/questgraph/graph"
	"github.com/questmap/questmap-backend/internal/questgraph/graph/export"
	"github.com/questmap/questmap-backend/internal/questgraph/ingest/parser"
	"github.com/questmap/questmap-backend/internal/questgraph/locale"
)

func loadLocalizer(stderr io.Writer) (locale.Localizer, error) {
	if localeDir == "" {
		if lang != defaultLang {
			fmt.Fprintf(stderr, "warning: --lang %s has no effect without --locale-dir; using ids as names\n", lang)
		}
		return locale.IdentityLocalizer{}, nil
	}
	c, err := locale.LoadDir(localeDir, defaultLang)
	if err != nil {
		return nil, err
	}
	return c.For(lang), nil
}

// view returns what format encodes: the graph itself, its Cytoscape elements
// or DOT text.
func view(g *domain.Graph, title, format string, stderr io.Writer) (any, error) {
	switch format {
	case "json", "yaml":
		return g, nil
	case "dot", "cyto":
		loc, err := loadLocalizer(stderr)
		if err != nil {
			return nil, err
		}
		if format == "dot" {
			return export.ToDOT(g, title, loc)
		}
		return export.ToCyto(g, loc)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func encode(v any, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return export.EncodeYAML(v)
	case "dot":
		return []byte(v.(string)), nil
	}
	return json.MarshalIndent(v, "", "  ")
}

func save(path string, v any, format string) error {
	switch format {
	case "yaml":
		return export.WriteYAML(path, v)
	case "dot":
		return export.WriteDOT(path, v.(string))
	}
	return export.WriteJSON(path, v)
}

func runPredecessors(cmd *cobra.Command, args []string) error {
	g, err := parser.ParseFile(dataPath)
	if err != nil {
		return err
	}
	id := args[0]
	sub := graph.OnlyPredecessors(g, id)

	v, err := view(sub, id, outFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if outPath == "" {
		b, err := encode(v, outFormat)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(b, '\n'))
		return err
	}
	if err := save(outPath, v, outFormat); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d nodes, %d edges)\n", outPath, len(sub.Nodes), len(sub.Edges))
	return nil
}
