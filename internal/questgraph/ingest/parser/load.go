package parser

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lukechampine.com/blake3"

	"github.com/questmap/questmap-backend/internal/questgraph/domain"
)

// Fingerprint identifies a dataset by content. Two files with the same bytes
// share a fingerprint regardless of path or mtime.
func Fingerprint(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// ParseBytes decodes b according to the file extension of name.
func ParseBytes(name string, b []byte) (*domain.Graph, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return ParseJSONBytes(b)
	case ".yaml", ".yml":
		return ParseYAMLBytes(b)
	}
	return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(name))
}

func ParseFile(path string) (*domain.Graph, error) {
	g, _, err := Load(path)
	return g, err
}

// Load reads and decodes the dataset at path and returns it with its
// fingerprint.
func Load(path string) (*domain.Graph, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read dataset: %w", err)
	}
	g, err := ParseBytes(path, b)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return g, Fingerprint(b), nil
}
