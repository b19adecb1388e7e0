package images

import (
	"errors"
	"fmt"
	"testing"

	"photoshare-backend/internal/shared/storage/couch"
)

const testPublicBase = "https://dal.objectstorage.example.com/v1/AUTH_proj"

func pairedRows(n int) []couch.ViewRow {
	var rows []couch.ViewRow
	for i := 0; i < n; i++ {
		userID := fmt.Sprintf("u%d", i)
		imageID := fmt.Sprintf("img%d", i)
		rows = append(rows,
			couch.ViewRow{ID: imageID, Doc: map[string]any{
				"_id":  userID,
				"_rev": "1-a",
				"type": "user",
				"name": "User " + userID,
			}},
			couch.ViewRow{ID: imageID, Doc: map[string]any{
				"_id":         imageID,
				"_rev":        "1-b",
				"type":        "image",
				"fileName":    fmt.Sprintf("photo%d.png", i),
				"contentType": "image/png",
				"userId":      userID,
				"deviceId":    "d1",
				"uploadedTs":  "2026-08-01T00:00:00Z",
				"_attachments": map[string]any{
					"photo": map[string]any{"stub": true},
				},
			}},
		)
	}
	return rows
}

func TestShapePairedRows(t *testing.T) {
	shaper := Shaper{PublicBase: testPublicBase}

	for _, n := range []int{0, 1, 3} {
		rows := pairedRows(n)
		records, err := shaper.ShapePairedRows(rows)
		if err != nil {
			t.Fatalf("shape %d pairs: %v", n, err)
		}
		if len(records) != n {
			t.Fatalf("expected %d records, got %d", n, len(records))
		}
		for i, record := range records {
			if _, ok := record["userId"]; ok {
				t.Fatalf("record %d still carries userId", i)
			}
			if _, ok := record["_attachments"]; ok {
				t.Fatalf("record %d still carries attachment metadata", i)
			}
			wantURL := fmt.Sprintf("%s/u%d/photo%d.png", testPublicBase, i, i)
			if record["url"] != wantURL {
				t.Fatalf("record %d url = %v, want %s", i, record["url"], wantURL)
			}
			user, ok := record["user"].(map[string]any)
			if !ok {
				t.Fatalf("record %d missing embedded user", i)
			}
			if user["id"] != fmt.Sprintf("u%d", i) {
				t.Fatalf("record %d embedded user id = %v", i, user["id"])
			}
		}
	}
}

func TestShapePairedRowsOddCount(t *testing.T) {
	shaper := Shaper{PublicBase: testPublicBase}

	rows := pairedRows(2)[:3]
	if _, err := shaper.ShapePairedRows(rows); !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument for odd row count, got %v", err)
	}
}

func TestShapePairedRowsOutOfOrder(t *testing.T) {
	shaper := Shaper{PublicBase: testPublicBase}

	rows := pairedRows(1)
	rows[0], rows[1] = rows[1], rows[0]
	if _, err := shaper.ShapePairedRows(rows); !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument for inverted pair, got %v", err)
	}
}

func TestShapeImageRecordMissingFileName(t *testing.T) {
	shaper := Shaper{PublicBase: testPublicBase}

	imageDoc := map[string]any{"_id": "img1", "type": "image"}
	userDoc := map[string]any{"_id": "u1", "type": "user"}
	if _, err := shaper.ShapeImageRecord(imageDoc, userDoc, "u1"); !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument for missing fileName, got %v", err)
	}
}

func TestShapeImageRecordForUser(t *testing.T) {
	shaper := Shaper{PublicBase: testPublicBase}

	record, err := shaper.ShapeImageRecordForUser(map[string]any{
		"_id":      "img1",
		"_rev":     "2-c",
		"fileName": "a.png",
		"type":     "image",
	}, "u1")
	if err != nil {
		t.Fatalf("shape for user: %v", err)
	}
	if record["id"] != "img1" {
		t.Fatalf("id = %v, want img1", record["id"])
	}
	if record["userId"] != "u1" {
		t.Fatalf("userId = %v, want u1", record["userId"])
	}
	if record["url"] != testPublicBase+"/u1/a.png" {
		t.Fatalf("url = %v", record["url"])
	}
	if _, ok := record["_rev"]; ok {
		t.Fatalf("record still carries _rev")
	}
}

func TestShapeUserRecords(t *testing.T) {
	rows := []couch.ViewRow{
		{ID: "u1", Value: map[string]any{"_id": "u1", "type": "user", "name": "One"}},
		{ID: "u2", Value: map[string]any{"_id": "u2", "type": "user", "name": "Two"}},
	}
	records, err := ShapeUserRecords(rows)
	if err != nil {
		t.Fatalf("shape users: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["id"] != "u1" || records[1]["id"] != "u2" {
		t.Fatalf("unexpected ids: %v, %v", records[0]["id"], records[1]["id"])
	}
}

func TestShapeUserRecordsMissingValue(t *testing.T) {
	rows := []couch.ViewRow{{ID: "u1"}}
	if _, err := ShapeUserRecords(rows); !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument for missing value, got %v", err)
	}
}

func TestWrapAsCollection(t *testing.T) {
	wrapped := WrapAsCollection(nil)
	if wrapped.Count != 0 || wrapped.Records == nil {
		t.Fatalf("nil wrap: %+v", wrapped)
	}

	wrapped = WrapAsCollection([]map[string]any{{"id": "a"}, {"id": "b"}})
	if wrapped.Count != 2 || len(wrapped.Records) != 2 {
		t.Fatalf("wrap: %+v", wrapped)
	}
}
