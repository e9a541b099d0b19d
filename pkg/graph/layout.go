package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates edge kinds and id presence so malformed documents fail at the
// boundary instead of deep inside a renderer.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	for i, n := range l.Nodes {
		if n.ID == "" {
			return Layout{}, fmt.Errorf("node %d: missing id", i)
		}
	}
	for i, e := range l.Edges {
		switch e.Kind {
		case EdgeKindSpouse, EdgeKindParentChild, EdgeKindDistribution:
		default:
			return Layout{}, fmt.Errorf("edge %d: unknown kind %q", i, e.Kind)
		}
		if len(e.Points) < 2 {
			return Layout{}, fmt.Errorf("edge %s: polyline needs at least two points", e.ID)
		}
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
