package parser

import (
	"encoding/json"
	"fmt"

	"github.com/questmap/questmap-backend/internal/questgraph/domain"
)

func ParseJSONBytes(b []byte) (*domain.Graph, error) {
	var g domain.Graph
	if err := json.Unmarshal(b, &g); err != nil {
		return nil, fmt.Errorf("decode json dataset: %w", err)
	}
	return &g, nil
}
