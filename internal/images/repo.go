package images

import "context"

// Repo defines persistence operations for image documents.
type Repo interface {
	// CreateImage stores a new image document.
	CreateImage(ctx context.Context, imageID string, doc map[string]any) error

	// ReadImageByID returns the shaped record for one image, or absent.
	// Query failures, zero rows and duplicate rows all collapse to absent;
	// the distinction only reaches the logs.
	ReadImageByID(ctx context.Context, imageID string) (map[string]any, bool)

	// ListImages returns all shaped image records from the paired view.
	ListImages(ctx context.Context) ([]map[string]any, error)

	// ListImagesByUser returns the shaped records owned by one user.
	ListImagesByUser(ctx context.Context, userID string) ([]map[string]any, error)
}
