package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/questmap/questmap-backend/internal/questgraph/domain"
)

func ParseYAMLBytes(b []byte) (*domain.Graph, error) {
	var g domain.Graph
	if err := yaml.Unmarshal(b, &g); err != nil {
		return nil, fmt.Errorf("decode yaml dataset: %w", err)
	}
	return &g, nil
}
