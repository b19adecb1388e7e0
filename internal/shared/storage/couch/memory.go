package couch

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore emulates the database's document and view contract in memory,
// including the paired-row convention of the image views. It backs dev runs
// and tests when no database is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
	revs map[string]int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]map[string]any),
		revs: make(map[string]int),
	}
}

// GetDocument fetches a document by ID.
func (m *MemoryStore) GetDocument(ctx context.Context, id string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDoc(doc), nil
}

// SaveDocument creates or updates a document by ID.
func (m *MemoryStore) SaveDocument(ctx context.Context, id string, doc map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := cloneDoc(doc)
	m.revs[id]++
	rev := fmt.Sprintf("%d-memory", m.revs[id])
	stored["_id"] = id
	stored["_rev"] = rev
	m.docs[id] = stored
	return rev, nil
}

// QueryView evaluates one of the known views over the stored documents.
func (m *MemoryStore) QueryView(ctx context.Context, design, view string, params ViewParams) (ViewResult, error) {
	if err := ctx.Err(); err != nil {
		return ViewResult{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch view {
	case "images":
		return m.pairedRows(m.sortedImages(), params), nil
	case "images_by_id":
		imageID := firstKeyComponent(params)
		var matched []map[string]any
		for _, img := range m.sortedImages() {
			if id, _ := img["_id"].(string); id == imageID {
				matched = append(matched, img)
			}
		}
		return m.pairedRows(matched, params), nil
	case "images_per_user":
		userID := firstKeyComponent(params)
		var rows []ViewRow
		for _, img := range m.sortedImages() {
			if owner, _ := img["userId"].(string); owner == userID {
				rows = append(rows, ViewRow{
					ID:    docID(img),
					Key:   mustKey(userID, img["uploadedTs"]),
					Value: cloneDoc(img),
				})
			}
		}
		return ViewResult{TotalRows: len(rows), Rows: rows}, nil
	case "users":
		var rows []ViewRow
		for _, doc := range m.sortedByID() {
			if docType, _ := doc["type"].(string); docType == "user" {
				rows = append(rows, ViewRow{
					ID:    docID(doc),
					Key:   mustKey(docID(doc)),
					Value: cloneDoc(doc),
				})
			}
		}
		return ViewResult{TotalRows: len(rows), Rows: rows}, nil
	default:
		return ViewResult{}, fmt.Errorf("unknown view %s/%s", design, view)
	}
}

// pairedRows emits the user-doc/image-doc alternation the image views follow.
// A descending query reverses the emitted order, as the real view engine does.
func (m *MemoryStore) pairedRows(imgs []map[string]any, params ViewParams) ViewResult {
	var rows []ViewRow
	for _, img := range imgs {
		owner, _ := img["userId"].(string)
		user, ok := m.docs[owner]
		if !ok {
			// An image without its user doc still emits a pair slot; the
			// shaper is the one that fails on it.
			user = nil
		}
		pair := []ViewRow{
			{ID: docID(img), Key: mustKey(docID(img), 0), Doc: cloneDoc(user)},
			{ID: docID(img), Key: mustKey(docID(img), 1), Doc: cloneDoc(img)},
		}
		rows = append(rows, pair...)
	}
	if params.Descending {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}
	if !params.IncludeDocs {
		for i := range rows {
			rows[i].Doc = nil
		}
	}
	return ViewResult{TotalRows: len(rows), Rows: rows}
}

func (m *MemoryStore) sortedImages() []map[string]any {
	var imgs []map[string]any
	for _, doc := range m.docs {
		if docType, _ := doc["type"].(string); docType == "image" {
			imgs = append(imgs, doc)
		}
	}
	sort.Slice(imgs, func(i, j int) bool {
		ti, _ := imgs[i]["uploadedTs"].(string)
		tj, _ := imgs[j]["uploadedTs"].(string)
		if ti != tj {
			return ti < tj
		}
		return docID(imgs[i]) < docID(imgs[j])
	})
	return imgs
}

func (m *MemoryStore) sortedByID() []map[string]any {
	var docs []map[string]any
	for _, doc := range m.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docID(docs[i]) < docID(docs[j])
	})
	return docs
}

func firstKeyComponent(params ViewParams) string {
	for _, key := range []any{params.StartKey, params.EndKey} {
		parts, ok := key.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			return s
		}
	}
	return ""
}

func docID(doc map[string]any) string {
	id, _ := doc["_id"].(string)
	return id
}

func mustKey(parts ...any) json.RawMessage {
	var v any = parts
	if len(parts) == 1 {
		v = parts[0]
	}
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}

func cloneDoc(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
