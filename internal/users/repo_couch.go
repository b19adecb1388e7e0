package users

import (
	"context"
	"errors"

	"photoshare-backend/internal/images"
	"photoshare-backend/internal/shared/storage/couch"
)

const (
	designDoc = "main_design"
	viewUsers = "users"
)

// CouchRepo implements Repo against the document database.
type CouchRepo struct {
	DB couch.Store
}

// CreateUser stores a user document under userID.
func (r *CouchRepo) CreateUser(ctx context.Context, userID string, doc map[string]any) error {
	_, err := r.DB.SaveDocument(ctx, userID, doc)
	return err
}

// UserByID fetches and shapes one user document.
func (r *CouchRepo) UserByID(ctx context.Context, userID string) (map[string]any, error) {
	doc, err := r.DB.GetDocument(ctx, userID)
	if err != nil {
		if errors.Is(err, couch.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if docType, _ := doc["type"].(string); docType != TypeUser {
		return nil, ErrNotFound
	}
	return images.ShapeUserRecord(doc)
}

// ListUsers returns every user record from the flattened users view.
func (r *CouchRepo) ListUsers(ctx context.Context) ([]map[string]any, error) {
	result, err := r.DB.QueryView(ctx, designDoc, viewUsers, couch.ViewParams{})
	if err != nil {
		return nil, err
	}
	return images.ShapeUserRecords(result.Rows)
}

var _ Repo = (*CouchRepo)(nil)
