// Package cache provides the byte-oriented cache behind the layout pipeline.
//
// The engine itself is pure and never caches; callers that want to skip
// recomputation (CLI runs, the HTTP API) wrap it in a pipeline that stores
// serialized trees, layouts, and rendered artifacts under content-derived
// keys. Backends: file-based for the CLI, Redis for server deployments, and
// a null cache for tests and opt-out.
package cache

import (
	"context"
	"time"
)

// Default TTLs per content class. Layouts and artifacts are derived purely
// from their key material, so they only expire to bound storage, not for
// correctness.
const (
	// TTLTree is how long imported tree documents stay cached.
	TTLTree = 24 * time.Hour

	// TTLLayout is how long computed layouts stay cached.
	TTLLayout = 30 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (SVG, DOT) stay cached.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with TTL support.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; an expired or missing key is (nil, false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts carries every layout option that affects output. Two
// computations with equal tree hash and equal opts produce identical
// layouts, so they may share a cache entry.
type LayoutKeyOpts struct {
	HorizontalSpacing    float64
	VerticalSpacing      float64
	NodeWidth            float64
	NodeHeight           float64
	SpouseGap            float64
	ChildOrder           string
	ShowGenerationLabels bool
}

// ArtifactKeyOpts carries every render option that affects artifact bytes.
type ArtifactKeyOpts struct {
	Format string // "svg", "dot", "json"
	Scale  float64
}

// Keyer derives cache keys from content hashes and options. Keys must be
// stable across processes and versions of the same key schema.
type Keyer interface {
	// TreeKey generates a key for imported tree documents.
	TreeKey(treeHash string) string

	// LayoutKey generates a key for computed layouts.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for rendered artifacts.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// keyVersion is bumped whenever the serialized formats change shape, which
// invalidates every previously written entry.
const keyVersion = "v1"

// DefaultKeyer derives keys by hashing the key material with the schema
// version mixed in.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TreeKey generates a key for imported tree documents.
func (k *DefaultKeyer) TreeKey(treeHash string) string {
	return hashKey("tree:"+keyVersion, treeHash)
}

// LayoutKey generates a key for computed layouts.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout:"+keyVersion, treeHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+keyVersion, layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
