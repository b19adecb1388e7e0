package couch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// MaxKey is the view-key sentinel that sorts after every number and string,
// used as the open upper bound of keyed range queries.
var MaxKey = map[string]any{}

const defaultTimeout = 15 * time.Second

// Client issues document and view requests against a Couch-style database
// over HTTP. One client is safe for concurrent use.
type Client struct {
	baseURL  string
	database string
	username string
	password string
	http     *http.Client
}

// New constructs a client for the given database. timeout bounds every call;
// zero selects the default.
func New(baseURL, database, username, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  baseURL,
		database: database,
		username: username,
		password: password,
		http:     &http.Client{Timeout: timeout},
	}
}

// ViewRow is one row of a view result. Doc is populated only when the query
// asked for included documents.
type ViewRow struct {
	ID    string          `json:"id"`
	Key   json.RawMessage `json:"key"`
	Value map[string]any  `json:"value"`
	Doc   map[string]any  `json:"doc,omitempty"`
}

// ViewResult is the decoded body of a view query.
type ViewResult struct {
	TotalRows int       `json:"total_rows"`
	Offset    int       `json:"offset"`
	Rows      []ViewRow `json:"rows"`
}

// ViewParams control a view query. StartKey and EndKey are marshaled to JSON;
// use MaxKey as the high sentinel of a composite key.
type ViewParams struct {
	Descending  bool
	IncludeDocs bool
	StartKey    any
	EndKey      any
	Limit       int
}

// QueryView runs a view in the given design document and decodes the rows.
func (c *Client) QueryView(ctx context.Context, design, view string, params ViewParams) (ViewResult, error) {
	q := url.Values{}
	if params.Descending {
		q.Set("descending", "true")
	}
	if params.IncludeDocs {
		q.Set("include_docs", "true")
	}
	if params.StartKey != nil {
		encoded, err := json.Marshal(params.StartKey)
		if err != nil {
			return ViewResult{}, fmt.Errorf("encode startkey: %w", err)
		}
		q.Set("startkey", string(encoded))
	}
	if params.EndKey != nil {
		encoded, err := json.Marshal(params.EndKey)
		if err != nil {
			return ViewResult{}, fmt.Errorf("encode endkey: %w", err)
		}
		q.Set("endkey", string(encoded))
	}
	if params.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", params.Limit))
	}

	path := fmt.Sprintf("%s/%s/_design/%s/_view/%s", c.baseURL, c.database, design, view)
	if raw := q.Encode(); raw != "" {
		path += "?" + raw
	}

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return ViewResult{}, err
	}

	var result ViewResult
	if err := json.Unmarshal(body, &result); err != nil {
		return ViewResult{}, fmt.Errorf("decode view result: %w", err)
	}
	return result, nil
}

// GetDocument fetches a document by ID.
func (c *Client) GetDocument(ctx context.Context, id string) (map[string]any, error) {
	path := fmt.Sprintf("%s/%s/%s", c.baseURL, c.database, url.PathEscape(id))
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// SaveDocument creates or updates a document by ID and returns the new revision.
func (c *Client) SaveDocument(ctx context.Context, id string, doc map[string]any) (string, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	path := fmt.Sprintf("%s/%s/%s", c.baseURL, c.database, url.PathEscape(id))
	body, err := c.do(ctx, http.MethodPut, path, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	var resp struct {
		OK  bool   `json:"ok"`
		Rev string `json:"rev"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode save response: %w", err)
	}
	return resp.Rev, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, truncate(data, 256))
	}
	return data, nil
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
