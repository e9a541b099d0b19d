package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Tree Serialization API
// =============================================================================

// MarshalTree serializes a Tree to pretty-printed JSON bytes.
func MarshalTree(t Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTreeTo(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalTree deserializes JSON bytes to a Tree.
func UnmarshalTree(data []byte) (Tree, error) {
	return readTreeFrom(bytes.NewReader(data))
}

// WriteTreeFile writes a Tree to a JSON file.
// The file is created with 0644 permissions.
func WriteTreeFile(t Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTreeTo(t, f)
}

// WriteTree writes a Tree as JSON to an io.Writer.
// Use MarshalTree for in-memory serialization or WriteTreeFile for files.
func WriteTree(t Tree, w io.Writer) error {
	return writeTreeTo(t, w)
}

// ReadTreeFile reads a JSON file and returns the decoded Tree.
func ReadTreeFile(path string) (Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tree{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readTreeFrom(f)
}

// ReadTree decodes a JSON tree from an io.Reader.
// Use ReadTreeFile for files or pass bytes.NewReader for in-memory data.
func ReadTree(r io.Reader) (Tree, error) {
	return readTreeFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTreeTo(t Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readTreeFrom(r io.Reader) (Tree, error) {
	var t Tree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Tree{}, fmt.Errorf("decode: %w", err)
	}
	for i, p := range t.Persons {
		if p.ID == "" {
			return Tree{}, fmt.Errorf("person %d: missing id", i)
		}
	}
	return t, nil
}
