package git

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockRepository_Walk(t *testing.T) {
	commits := []Commit{
		{SHA: "b", When: time.Now(), Author: AuthorInfo{Name: "Test", Email: "test@example.com"}, Parents: []string{"a"}},
		{SHA: "a", When: time.Now(), Author: AuthorInfo{Name: "Test", Email: "test@example.com"}},
	}

	t.Run("returns commits", func(t *testing.T) {
		repo := NewMockRepository(commits, nil)

		got, err := Collect(context.Background(), repo)

		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if len(got) != len(commits) {
			t.Errorf("expected %d commits, got %d", len(commits), len(got))
		}
	})

	t.Run("returns error", func(t *testing.T) {
		expectedErr := errors.New("test error")
		repo := NewMockRepository(nil, nil)
		repo.Error = expectedErr

		_, err := Collect(context.Background(), repo)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
	})
}

func TestMockRepository_Diffs(t *testing.T) {
	child := Commit{SHA: "b", Parents: []string{"a"}}
	repo := NewMockRepository([]Commit{child}, map[string][]FileDiff{
		"b": {{OldPath: "x.go", NewPath: "x.go", Patch: []byte("+x\n")}},
	})

	patches, err := repo.Patches(context.Background(), child)
	if err != nil || len(patches) != 1 || !patches[0].HasPatch() {
		t.Fatalf("Patches() = %+v, %v", patches, err)
	}

	changes, err := repo.Changes(context.Background(), child)
	if err != nil || len(changes) != 1 || changes[0].HasPatch() {
		t.Fatalf("Changes() = %+v, %v; expected paths only", changes, err)
	}

	if _, err := repo.Changes(context.Background(), Commit{SHA: "a"}); !IsDiffComputation(err) {
		t.Fatalf("expected DiffComputationError for root commit, got %v", err)
	}
}
