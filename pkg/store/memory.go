package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pedigraph/pedigraph/pkg/errors"
	"github.com/pedigraph/pedigraph/pkg/graph"
	"github.com/pedigraph/pedigraph/pkg/observability"
)

// MemoryStore is an in-memory TreeStore for development and testing.
// Documents are copied on the way in and out, so callers cannot alias
// stored state.
type MemoryStore struct {
	mu    sync.RWMutex
	trees map[string]memoryRecord
	now   func() time.Time
}

type memoryRecord struct {
	tree      graph.Tree
	createdAt time.Time
	updatedAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trees: make(map[string]memoryRecord),
		now:   time.Now,
	}
}

// Save stores a tree, assigning a fresh uuid when the document carries none.
func (s *MemoryStore) Save(ctx context.Context, t graph.Tree) (graph.Tree, error) {
	start := time.Now()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := errors.ValidateTreeID(t.ID); err != nil {
		observability.Store().OnStoreWrite(ctx, t.ID, time.Since(start), err)
		return graph.Tree{}, err
	}

	s.mu.Lock()
	now := s.now()
	rec := memoryRecord{tree: copyTree(t), createdAt: now, updatedAt: now}
	if prev, ok := s.trees[t.ID]; ok {
		rec.createdAt = prev.createdAt
	}
	s.trees[t.ID] = rec
	s.mu.Unlock()

	observability.Store().OnStoreWrite(ctx, t.ID, time.Since(start), nil)
	return t, nil
}

// Get retrieves a tree by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (graph.Tree, error) {
	start := time.Now()

	s.mu.RLock()
	rec, ok := s.trees[id]
	s.mu.RUnlock()

	if !ok {
		err := errors.New(errors.ErrCodeTreeNotFound, "tree %q not found", id)
		observability.Store().OnStoreRead(ctx, id, time.Since(start), err)
		return graph.Tree{}, err
	}

	observability.Store().OnStoreRead(ctx, id, time.Since(start), nil)
	return copyTree(rec.tree), nil
}

// List returns summaries of all stored trees, ordered by id.
func (s *MemoryStore) List(ctx context.Context) ([]TreeInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]TreeInfo, 0, len(s.trees))
	for id, rec := range s.trees {
		infos = append(infos, TreeInfo{
			ID:          id,
			Name:        rec.tree.Name,
			PersonCount: len(rec.tree.Persons),
			CreatedAt:   rec.createdAt,
			UpdatedAt:   rec.updatedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

// Delete removes a tree by id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	start := time.Now()

	s.mu.Lock()
	_, ok := s.trees[id]
	delete(s.trees, id)
	s.mu.Unlock()

	if !ok {
		err := errors.New(errors.ErrCodeTreeNotFound, "tree %q not found", id)
		observability.Store().OnStoreDelete(ctx, id, time.Since(start), err)
		return err
	}

	observability.Store().OnStoreDelete(ctx, id, time.Since(start), nil)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// copyTree deep-copies a document through the engine conversion, which
// already clones every slice and metadata map.
func copyTree(t graph.Tree) graph.Tree {
	out := graph.FromEngine(t.ToEngine())
	out.ID = t.ID
	out.Name = t.Name
	return out
}

// Ensure MemoryStore implements TreeStore.
var _ TreeStore = (*MemoryStore)(nil)
