package pipeline

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"photoshare-backend/internal/shared/metrics"
	"photoshare-backend/internal/shared/telemetry"
)

const (
	defaultSendTimeout = 30 * time.Second
	maxResponseLog     = 1024
)

// HTTPDispatcher posts dispatch messages to the pipeline's webhook endpoint.
// Each dispatch runs on its own goroutine; dispatches for different images
// may complete in any order and are silently dropped on failure.
type HTTPDispatcher struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewHTTPDispatcher constructs a dispatcher for the given endpoint. token is
// the pre-encoded Basic credential for the pipeline.
func NewHTTPDispatcher(endpoint, token string) *HTTPDispatcher {
	return &HTTPDispatcher{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: defaultSendTimeout},
	}
}

// Dispatch hands the notification to a background goroutine and returns
// immediately, before the network call starts.
func (d *HTTPDispatcher) Dispatch(imageID string) {
	metrics.IncDispatchStarted()
	go d.send(imageID)
}

func (d *HTTPDispatcher) send(imageID string) {
	start := time.Now()

	payload, err := EncodeMessage(Message{
		ImageID:      imageID,
		DispatchedAt: start.UTC().Format(time.RFC3339),
	})
	if err != nil {
		d.fail(imageID, "encode", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, d.endpoint, bytes.NewReader(payload))
	if err != nil {
		d.fail(imageID, "build_request", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if d.token != "" {
		req.Header.Set("Authorization", "Basic "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.fail(imageID, "connect", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseLog))
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.ObserveDispatchDurationMs(elapsed)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		metrics.IncDispatchFailed()
		telemetry.Error("pipeline.dispatch.failed", map[string]any{
			"image_id":    imageID,
			"status":      resp.StatusCode,
			"body":        string(body),
			"duration_ms": elapsed,
		})
		return
	}

	metrics.IncDispatchSucceeded()
	telemetry.Info("pipeline.dispatch.ok", map[string]any{
		"image_id":    imageID,
		"status":      resp.StatusCode,
		"response":    bestEffortJSON(body),
		"duration_ms": elapsed,
	})
}

func (d *HTTPDispatcher) fail(imageID, stage string, err error) {
	metrics.IncDispatchFailed()
	telemetry.Error("pipeline.dispatch.failed", map[string]any{
		"image_id": imageID,
		"stage":    stage,
		"err":      err.Error(),
	})
}

// bestEffortJSON decodes the pipeline's response body for the log line; the
// body is never parsed for control decisions.
func bestEffortJSON(body []byte) any {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return string(body)
	}
	return decoded
}

var _ Dispatcher = (*HTTPDispatcher)(nil)
