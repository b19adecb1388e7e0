package images

import (
	"context"

	"photoshare-backend/internal/shared/storage/couch"
	"photoshare-backend/internal/shared/telemetry"
)

const (
	designDoc         = "main_design"
	viewImages        = "images"
	viewImagesByID    = "images_by_id"
	viewImagesPerUser = "images_per_user"
)

// CouchRepo implements Repo against the document database's view contract.
// It works over any couch.Store, so the memory store serves dev and tests.
type CouchRepo struct {
	DB     couch.Store
	Shaper Shaper
}

// CreateImage stores a new image document under imageID.
func (r *CouchRepo) CreateImage(ctx context.Context, imageID string, doc map[string]any) error {
	_, err := r.DB.SaveDocument(ctx, imageID, doc)
	return err
}

// ReadImageByID issues the descending keyed range query bounded by
// [imageID, <max>] .. [imageID, 0] and expects exactly one paired record.
func (r *CouchRepo) ReadImageByID(ctx context.Context, imageID string) (map[string]any, bool) {
	result, err := r.DB.QueryView(ctx, designDoc, viewImagesByID, couch.ViewParams{
		Descending:  true,
		IncludeDocs: true,
		StartKey:    []any{imageID, couch.MaxKey},
		EndKey:      []any{imageID, 0},
	})
	if err != nil {
		telemetry.Error("images.read_by_id.query_failed", map[string]any{
			"image_id": imageID,
			"err":      err.Error(),
		})
		return nil, false
	}

	rows := result.Rows
	switch {
	case len(rows) == 0:
		return nil, false
	case len(rows) > 2:
		// More than one pair matched one id. Possibly duplicate view rows;
		// kept absent for compatibility but logged with its own kind.
		telemetry.Error("images.read_by_id.duplicate_image_rows", map[string]any{
			"image_id":  imageID,
			"row_count": len(rows),
		})
		return nil, false
	}

	// The descending query yields the image doc before its user doc;
	// restore the pairing convention before shaping.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	records, err := r.Shaper.ShapePairedRows(rows)
	if err != nil {
		telemetry.Error("images.read_by_id.malformed", map[string]any{
			"image_id": imageID,
			"err":      err.Error(),
		})
		return nil, false
	}
	if len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

// ListImages returns every image in the database, shaped from paired rows.
func (r *CouchRepo) ListImages(ctx context.Context) ([]map[string]any, error) {
	result, err := r.DB.QueryView(ctx, designDoc, viewImages, couch.ViewParams{
		IncludeDocs: true,
	})
	if err != nil {
		return nil, err
	}
	return r.Shaper.ShapePairedRows(result.Rows)
}

// ListImagesByUser returns the flattened per-user listing.
func (r *CouchRepo) ListImagesByUser(ctx context.Context, userID string) ([]map[string]any, error) {
	result, err := r.DB.QueryView(ctx, designDoc, viewImagesPerUser, couch.ViewParams{
		StartKey: []any{userID, 0},
		EndKey:   []any{userID, couch.MaxKey},
	})
	if err != nil {
		return nil, err
	}

	records := make([]map[string]any, 0, len(result.Rows))
	for _, row := range result.Rows {
		record, err := r.Shaper.ShapeImageRecordForUser(row.Value, userID)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

var _ Repo = (*CouchRepo)(nil)
