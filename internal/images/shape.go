package images

import (
	"fmt"

	"photoshare-backend/internal/shared/storage/couch"
)

// Shaper turns raw database documents into client-facing records. Its only
// state is the public object-storage base URL image URLs are derived from.
type Shaper struct {
	PublicBase string
}

// ShapeImageRecord reshapes a raw image document and its owning user
// document into one client-facing record. The url is recomputed from the
// container and file name; userId and attachment metadata never leave this
// layer.
func (s Shaper) ShapeImageRecord(imageDoc, userDoc map[string]any, containerName string) (map[string]any, error) {
	record, err := s.shapeImage(imageDoc, containerName)
	if err != nil {
		return nil, err
	}
	delete(record, FieldUserID)
	record[FieldUser] = shapeUser(userDoc)
	return record, nil
}

// ShapeImageRecordForUser reshapes a single image document on the per-user
// listing path. The container is the user's own; no pairing is involved.
func (s Shaper) ShapeImageRecordForUser(imageDoc map[string]any, userID string) (map[string]any, error) {
	record, err := s.shapeImage(imageDoc, userID)
	if err != nil {
		return nil, err
	}
	record[FieldUserID] = userID
	return record, nil
}

// ShapePairedRows decodes a view result that follows the paired-row
// convention: even length, user document followed by its image document.
// Pairing violations are data-integrity errors, not recoverable here.
func (s Shaper) ShapePairedRows(rows []couch.ViewRow) ([]map[string]any, error) {
	if len(rows)%2 != 0 {
		return nil, fmt.Errorf("%w: odd row count %d from paired view", ErrMalformedDocument, len(rows))
	}

	records := make([]map[string]any, 0, len(rows)/2)
	for i := 0; i < len(rows); i += 2 {
		userDoc := rows[i].Doc
		imageDoc := rows[i+1].Doc
		if userDoc == nil || imageDoc == nil {
			return nil, fmt.Errorf("%w: row pair %d missing included documents", ErrMalformedDocument, i/2)
		}
		if docType, _ := userDoc[FieldType].(string); docType == TypeImage {
			return nil, fmt.Errorf("%w: row pair %d out of order", ErrMalformedDocument, i/2)
		}

		container, _ := userDoc[fieldID].(string)
		record, err := s.ShapeImageRecord(imageDoc, userDoc, container)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ShapeUserRecords flattens a view result whose rows carry the record in
// their value field.
func ShapeUserRecords(rows []couch.ViewRow) ([]map[string]any, error) {
	records := make([]map[string]any, 0, len(rows))
	for i, row := range rows {
		if row.Value == nil {
			return nil, fmt.Errorf("%w: row %d has no value", ErrMalformedDocument, i)
		}
		records = append(records, shapeUser(row.Value))
	}
	return records, nil
}

// ShapeUserRecord projects one raw user document into its outward form.
func ShapeUserRecord(userDoc map[string]any) (map[string]any, error) {
	if userDoc == nil {
		return nil, fmt.Errorf("%w: user document is nil", ErrMalformedDocument)
	}
	return shapeUser(userDoc), nil
}

func (s Shaper) shapeImage(imageDoc map[string]any, containerName string) (map[string]any, error) {
	if imageDoc == nil {
		return nil, fmt.Errorf("%w: image document is nil", ErrMalformedDocument)
	}

	fileName, ok := imageDoc[FieldFileName].(string)
	if !ok || fileName == "" {
		return nil, fmt.Errorf("%w: image document has no fileName", ErrMalformedDocument)
	}

	record := make(map[string]any, len(imageDoc))
	for k, v := range imageDoc {
		record[k] = v
	}

	if id, ok := record[fieldID].(string); ok {
		record[FieldID] = id
	}
	delete(record, fieldID)
	delete(record, fieldRev)
	delete(record, fieldAttachments)

	record[FieldURL] = BuildURL(s.PublicBase, containerName, fileName)
	return record, nil
}

// shapeUser projects a raw user document into its outward form. User records
// stay opaque beyond the id rename and internal-field stripping.
func shapeUser(userDoc map[string]any) map[string]any {
	record := make(map[string]any, len(userDoc))
	for k, v := range userDoc {
		record[k] = v
	}
	if id, ok := record[fieldID].(string); ok {
		record[FieldID] = id
	}
	delete(record, fieldID)
	delete(record, fieldRev)
	delete(record, fieldAttachments)
	return record
}
