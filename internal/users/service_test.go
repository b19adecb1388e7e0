package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"photoshare-backend/internal/shared/storage/couch"
	"photoshare-backend/internal/shared/storage/object"
	"photoshare-backend/internal/shared/storage/object/local"
)

func newService(t *testing.T) (*Service, *couch.MemoryStore) {
	t.Helper()
	store := couch.NewMemoryStore()
	gateway := object.NewGateway(local.New(t.TempDir()), time.Second)
	return NewService(&CouchRepo{DB: store}, gateway), store
}

func TestEnsureCreatesUser(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	record, err := svc.Ensure(ctx, "google:123", "Alice")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if record["id"] != "google:123" {
		t.Fatalf("id = %v", record["id"])
	}
	if record["type"] != "user" {
		t.Fatalf("type = %v", record["type"])
	}
	if record["name"] != "Alice" {
		t.Fatalf("name = %v", record["name"])
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Ensure(ctx, "u1", "Alice"); err != nil {
		t.Fatalf("first ensure: %v", err)
	}

	// The second call must not overwrite the stored name.
	record, err := svc.Ensure(ctx, "u1", "Someone Else")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if record["name"] != "Alice" {
		t.Fatalf("name = %v, want Alice", record["name"])
	}
}

func TestEnsureRejectsEmptyID(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.Ensure(context.Background(), "  ", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEnsureSurvivesContainerFailure(t *testing.T) {
	store := couch.NewMemoryStore()
	// A gateway without a backing store fails every container call.
	svc := NewService(&CouchRepo{DB: store}, object.NewGateway(nil, time.Second))

	record, err := svc.Ensure(context.Background(), "u1", "Alice")
	if err != nil {
		t.Fatalf("ensure must not fail on container provisioning: %v", err)
	}
	if record["id"] != "u1" {
		t.Fatalf("record = %v", record)
	}
}

func TestGetMissingUser(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetRejectsNonUserDoc(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	if _, err := store.SaveDocument(ctx, "img1", map[string]any{"type": "image"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Get(ctx, "img1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("image doc must read as absent, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, id := range []string{"u1", "u2"} {
		if _, err := svc.Ensure(ctx, id, "name-"+id); err != nil {
			t.Fatalf("ensure %s: %v", id, err)
		}
	}

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	for _, record := range records {
		if record["id"] == nil || record["type"] != "user" {
			t.Fatalf("record = %v", record)
		}
	}
}
