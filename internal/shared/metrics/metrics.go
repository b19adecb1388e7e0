package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	uploadAcceptedTotal   atomic.Uint64
	dispatchStartedTotal  atomic.Uint64
	dispatchSucceededTotal atomic.Uint64
	dispatchFailedTotal   atomic.Uint64

	dispatchDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncUploadAccepted increments the accepted-upload counter.
func IncUploadAccepted() {
	uploadAcceptedTotal.Add(1)
}

// IncDispatchStarted increments the pipeline-dispatch started counter.
func IncDispatchStarted() {
	dispatchStartedTotal.Add(1)
}

// IncDispatchSucceeded increments the pipeline-dispatch success counter.
func IncDispatchSucceeded() {
	dispatchSucceededTotal.Add(1)
}

// IncDispatchFailed increments the pipeline-dispatch failure counter.
func IncDispatchFailed() {
	dispatchFailedTotal.Add(1)
}

// ObserveDispatchDurationMs records a pipeline dispatch round trip in milliseconds.
func ObserveDispatchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	dispatchDuration.Observe(value)
}

// DispatchCounts returns the started/succeeded/failed dispatch counters.
func DispatchCounts() (started, succeeded, failed uint64) {
	return dispatchStartedTotal.Load(), dispatchSucceededTotal.Load(), dispatchFailedTotal.Load()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "upload_accepted_total", "Total uploads accepted", uploadAcceptedTotal.Load())
	writeCounter(&buf, "pipeline_dispatch_started_total", "Total pipeline dispatches started", dispatchStartedTotal.Load())
	writeCounter(&buf, "pipeline_dispatch_succeeded_total", "Total pipeline dispatches succeeded", dispatchSucceededTotal.Load())
	writeCounter(&buf, "pipeline_dispatch_failed_total", "Total pipeline dispatches failed", dispatchFailedTotal.Load())
	writeHistogram(&buf, "pipeline_dispatch_duration_ms", "Pipeline dispatch duration in milliseconds", dispatchDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
