package store

import (
	"context"
	"testing"
	"time"

	"github.com/pedigraph/pedigraph/pkg/errors"
	"github.com/pedigraph/pedigraph/pkg/graph"
)

func sampleTree(id string) graph.Tree {
	return graph.Tree{
		ID:   id,
		Name: "Sample",
		Persons: []graph.Person{
			{ID: "a", Spouses: []string{"b"}},
			{ID: "b", Spouses: []string{"a"}},
			{ID: "c", Parents: []string{"a", "b"}},
		},
	}
}

func TestMemoryStore_SaveAssignsID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	saved, err := s.Save(ctx, sampleTree(""))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Save() did not assign an id")
	}

	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Sample" || len(got.Persons) != 3 {
		t.Errorf("Get() = %+v, want saved tree", got)
	}
}

func TestMemoryStore_SaveKeepsExplicitID(t *testing.T) {
	s := NewMemoryStore()
	saved, err := s.Save(context.Background(), sampleTree("family-1"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID != "family-1" {
		t.Errorf("Save() id = %q, want family-1", saved.ID)
	}
}

func TestMemoryStore_SaveRejectsBadID(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Save(context.Background(), sampleTree("has space")); err == nil {
		t.Error("Save() accepted an invalid id")
	}
}

func TestMemoryStore_SaveReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Save(ctx, sampleTree("t")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	updated := sampleTree("t")
	updated.Name = "Renamed"
	updated.Persons = updated.Persons[:1]
	if _, err := s.Save(ctx, updated); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Get(ctx, "t")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Renamed" || len(got.Persons) != 1 {
		t.Errorf("Get() after replace = %+v", got)
	}

	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(infos) != 1 {
		t.Errorf("List() = %d entries, want 1 after replace", len(infos))
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "nope")
	if got := errors.GetCode(err); got != errors.ErrCodeTreeNotFound {
		t.Errorf("error code = %q, want %q", got, errors.ErrCodeTreeNotFound)
	}
}

func TestMemoryStore_GetDetaches(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Save(ctx, sampleTree("t")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	first, _ := s.Get(ctx, "t")
	first.Persons[0].Name = "mutated"
	first.Persons[2].Parents[0] = "mutated"

	second, _ := s.Get(ctx, "t")
	if second.Persons[0].Name == "mutated" || second.Persons[2].Parents[0] == "mutated" {
		t.Error("Get() shares state between callers")
	}
}

func TestMemoryStore_List(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"b-tree", "a-tree"} {
		if _, err := s.Save(ctx, sampleTree(id)); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(infos) != 2 || infos[0].ID != "a-tree" || infos[1].ID != "b-tree" {
		t.Fatalf("List() = %+v, want ordered by id", infos)
	}
	if infos[0].PersonCount != 3 {
		t.Errorf("PersonCount = %d, want 3", infos[0].PersonCount)
	}
	if infos[0].UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestMemoryStore_ReplaceKeepsCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	if _, err := s.Save(ctx, sampleTree("t")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s.now = func() time.Time { return base.Add(time.Hour) }
	if _, err := s.Save(ctx, sampleTree("t")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	infos, _ := s.List(ctx)
	if !infos[0].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want original %v", infos[0].CreatedAt, base)
	}
	if !infos[0].UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v, want %v", infos[0].UpdatedAt, base.Add(time.Hour))
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Save(ctx, sampleTree("t")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Delete(ctx, "t"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := s.Get(ctx, "t"); errors.GetCode(err) != errors.ErrCodeTreeNotFound {
		t.Error("tree still present after delete")
	}
	if err := s.Delete(ctx, "t"); errors.GetCode(err) != errors.ErrCodeTreeNotFound {
		t.Errorf("second Delete() error = %v, want tree-not-found", err)
	}
}
