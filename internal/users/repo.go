package users

import "context"

// Repo defines persistence operations for user documents.
type Repo interface {
	// CreateUser stores a user document under userID.
	CreateUser(ctx context.Context, userID string, doc map[string]any) error

	// UserByID returns the shaped record for one user.
	UserByID(ctx context.Context, userID string) (map[string]any, error)

	// ListUsers returns all shaped user records from the flattened view.
	ListUsers(ctx context.Context) ([]map[string]any, error)
}
