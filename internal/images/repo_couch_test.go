package images

import (
	"context"
	"errors"
	"testing"

	"photoshare-backend/internal/shared/storage/couch"
)

// stubStore returns canned view results; it stands in for the database.
type stubStore struct {
	result couch.ViewResult
	err    error
	params couch.ViewParams
	view   string
}

func (s *stubStore) GetDocument(ctx context.Context, id string) (map[string]any, error) {
	return nil, couch.ErrNotFound
}

func (s *stubStore) SaveDocument(ctx context.Context, id string, doc map[string]any) (string, error) {
	return "1-stub", nil
}

func (s *stubStore) QueryView(ctx context.Context, design, view string, params couch.ViewParams) (couch.ViewResult, error) {
	s.view = view
	s.params = params
	if s.err != nil {
		return couch.ViewResult{}, s.err
	}
	return s.result, nil
}

func descendingPair(imageID, userID string) []couch.ViewRow {
	return []couch.ViewRow{
		{ID: imageID, Doc: map[string]any{
			"_id":      imageID,
			"type":     "image",
			"fileName": "a.png",
			"userId":   userID,
		}},
		{ID: imageID, Doc: map[string]any{
			"_id":  userID,
			"type": "user",
		}},
	}
}

func TestReadImageByIDSingleMatch(t *testing.T) {
	store := &stubStore{result: couch.ViewResult{Rows: descendingPair("img1", "u1")}}
	repo := &CouchRepo{DB: store, Shaper: Shaper{PublicBase: testPublicBase}}

	record, found := repo.ReadImageByID(context.Background(), "img1")
	if !found {
		t.Fatalf("expected a record")
	}
	if record["id"] != "img1" {
		t.Fatalf("id = %v, want img1", record["id"])
	}
	if record["url"] != testPublicBase+"/u1/a.png" {
		t.Fatalf("url = %v", record["url"])
	}
	if _, ok := record["userId"]; ok {
		t.Fatalf("record still carries userId")
	}

	if store.view != "images_by_id" {
		t.Fatalf("queried view %s", store.view)
	}
	if !store.params.Descending || !store.params.IncludeDocs {
		t.Fatalf("query params = %+v", store.params)
	}
	start, ok := store.params.StartKey.([]any)
	if !ok || len(start) != 2 || start[0] != "img1" {
		t.Fatalf("startkey = %v", store.params.StartKey)
	}
	end, ok := store.params.EndKey.([]any)
	if !ok || len(end) != 2 || end[0] != "img1" || end[1] != 0 {
		t.Fatalf("endkey = %v", store.params.EndKey)
	}
}

func TestReadImageByIDZeroRows(t *testing.T) {
	store := &stubStore{result: couch.ViewResult{}}
	repo := &CouchRepo{DB: store, Shaper: Shaper{PublicBase: testPublicBase}}

	if _, found := repo.ReadImageByID(context.Background(), "missing"); found {
		t.Fatalf("expected absent for zero rows")
	}
}

func TestReadImageByIDDuplicateRows(t *testing.T) {
	rows := append(descendingPair("img1", "u1"), descendingPair("img1", "u1")...)
	store := &stubStore{result: couch.ViewResult{Rows: rows}}
	repo := &CouchRepo{DB: store, Shaper: Shaper{PublicBase: testPublicBase}}

	// More than one matching pair collapses to absent, same as zero.
	if _, found := repo.ReadImageByID(context.Background(), "img1"); found {
		t.Fatalf("expected absent for duplicate rows")
	}
}

func TestReadImageByIDQueryFailure(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	repo := &CouchRepo{DB: store, Shaper: Shaper{PublicBase: testPublicBase}}

	if _, found := repo.ReadImageByID(context.Background(), "img1"); found {
		t.Fatalf("expected absent on query failure")
	}
}

func TestReadImageByIDMalformedPair(t *testing.T) {
	rows := descendingPair("img1", "u1")[:1]
	store := &stubStore{result: couch.ViewResult{Rows: rows}}
	repo := &CouchRepo{DB: store, Shaper: Shaper{PublicBase: testPublicBase}}

	if _, found := repo.ReadImageByID(context.Background(), "img1"); found {
		t.Fatalf("expected absent for odd row count")
	}
}

func TestListImagesByUser(t *testing.T) {
	store := &stubStore{result: couch.ViewResult{Rows: []couch.ViewRow{
		{ID: "img1", Value: map[string]any{"_id": "img1", "fileName": "a.png", "type": "image"}},
		{ID: "img2", Value: map[string]any{"_id": "img2", "fileName": "b.png", "type": "image"}},
	}}}
	repo := &CouchRepo{DB: store, Shaper: Shaper{PublicBase: testPublicBase}}

	records, err := repo.ListImagesByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, record := range records {
		if record["userId"] != "u1" {
			t.Fatalf("userId = %v, want u1", record["userId"])
		}
	}
	if store.view != "images_per_user" {
		t.Fatalf("queried view %s", store.view)
	}
}
