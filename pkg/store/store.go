// Package store persists tree documents for the API server.
//
// The interface supports two backends:
//   - memory: In-memory storage for development and testing
//   - mongo: MongoDB-backed storage for production deployments
//
// Stored documents are the serialization-format trees from pkg/graph; the
// store never interprets relationships, it only keeps documents addressable
// by id. Validation happens when a layout is requested, not on save, so
// users can store work-in-progress trees that do not resolve yet.
package store

import (
	"context"
	"time"

	"github.com/pedigraph/pedigraph/pkg/graph"
)

// TreeInfo is the listing view of a stored tree: identity and shape, but
// not the person records themselves.
type TreeInfo struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name,omitempty" bson:"name,omitempty"`
	PersonCount int       `json:"person_count" bson:"person_count"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// TreeStore stores and retrieves tree documents.
// Implementations must be safe for concurrent use.
type TreeStore interface {
	// Save stores a tree, assigning a fresh id when the document carries
	// none, and returns the stored document. Saving an existing id
	// replaces the previous version.
	Save(ctx context.Context, t graph.Tree) (graph.Tree, error)

	// Get retrieves a tree by id. A missing id yields an error with code
	// errors.ErrCodeTreeNotFound.
	Get(ctx context.Context, id string) (graph.Tree, error)

	// List returns summaries of all stored trees, ordered by id.
	List(ctx context.Context) ([]TreeInfo, error)

	// Delete removes a tree by id. A missing id yields an error with code
	// errors.ErrCodeTreeNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
