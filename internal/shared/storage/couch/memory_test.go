package couch

import (
	"context"
	"testing"
)

func seedStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	ctx := context.Background()

	docs := map[string]map[string]any{
		"u1":   {"type": "user", "name": "Alice"},
		"u2":   {"type": "user", "name": "Bob"},
		"img1": {"type": "image", "userId": "u1", "fileName": "a.png", "uploadedTs": "2024-01-01T00:00:00Z"},
		"img2": {"type": "image", "userId": "u2", "fileName": "b.png", "uploadedTs": "2024-01-02T00:00:00Z"},
	}
	for id, doc := range docs {
		if _, err := store.SaveDocument(ctx, id, doc); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	return store
}

func TestMemoryImagesViewPairsRows(t *testing.T) {
	store := seedStore(t)

	result, err := store.QueryView(context.Background(), "main_design", "images", ViewParams{IncludeDocs: true})
	if err != nil {
		t.Fatalf("query view: %v", err)
	}
	if len(result.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(result.Rows))
	}

	// Each image contributes a user row followed by its image row.
	for i := 0; i < len(result.Rows); i += 2 {
		userRow, imageRow := result.Rows[i], result.Rows[i+1]
		if userRow.Doc["type"] != "user" {
			t.Fatalf("row %d doc = %v, want user", i, userRow.Doc)
		}
		if imageRow.Doc["type"] != "image" {
			t.Fatalf("row %d doc = %v, want image", i+1, imageRow.Doc)
		}
		if userRow.ID != imageRow.ID {
			t.Fatalf("pair ids differ: %s / %s", userRow.ID, imageRow.ID)
		}
	}
}

func TestMemoryImagesByIDDescending(t *testing.T) {
	store := seedStore(t)

	result, err := store.QueryView(context.Background(), "main_design", "images_by_id", ViewParams{
		Descending:  true,
		IncludeDocs: true,
		StartKey:    []any{"img2", MaxKey},
		EndKey:      []any{"img2", 0},
	})
	if err != nil {
		t.Fatalf("query view: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(result.Rows))
	}
	if result.Rows[0].Doc["type"] != "image" {
		t.Fatalf("descending order must put the image row first, got %v", result.Rows[0].Doc)
	}
	if result.Rows[1].Doc["name"] != "Bob" {
		t.Fatalf("owner doc = %v", result.Rows[1].Doc)
	}
}

func TestMemoryImagesPerUser(t *testing.T) {
	store := seedStore(t)

	result, err := store.QueryView(context.Background(), "main_design", "images_per_user", ViewParams{
		StartKey: []any{"u1", 0},
		EndKey:   []any{"u1", MaxKey},
	})
	if err != nil {
		t.Fatalf("query view: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(result.Rows))
	}
	if result.Rows[0].Value["fileName"] != "a.png" {
		t.Fatalf("value = %v", result.Rows[0].Value)
	}
}

func TestMemoryUsersView(t *testing.T) {
	store := seedStore(t)

	result, err := store.QueryView(context.Background(), "main_design", "users", ViewParams{})
	if err != nil {
		t.Fatalf("query view: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(result.Rows))
	}
	if result.Rows[0].Value["name"] != "Alice" {
		t.Fatalf("first user = %v", result.Rows[0].Value)
	}
}

func TestMemoryGetDocumentMissing(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.GetDocument(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRevisionsIncrement(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rev1, err := store.SaveDocument(ctx, "d1", map[string]any{"type": "user"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	rev2, err := store.SaveDocument(ctx, "d1", map[string]any{"type": "user", "name": "x"})
	if err != nil {
		t.Fatalf("save again: %v", err)
	}
	if rev1 == rev2 {
		t.Fatalf("revision did not advance: %s", rev1)
	}
}
