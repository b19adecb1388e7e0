package couch

import "context"

// Store is the database surface repositories depend on: document reads and
// writes plus keyed view queries. Implemented by Client over HTTP and by
// MemoryStore for dev and tests.
type Store interface {
	GetDocument(ctx context.Context, id string) (map[string]any, error)
	SaveDocument(ctx context.Context, id string, doc map[string]any) (string, error)
	QueryView(ctx context.Context, design, view string, params ViewParams) (ViewResult, error)
}

var _ Store = (*Client)(nil)
