package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	gapAnalysisStartedTotal   atomic.Uint64
	gapAnalysisCompletedTotal atomic.Uint64
	gapAnalysisFailedTotal    atomic.Uint64

	gapAnalysisDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000})
)

// IncGapAnalysisStarted increments the started counter.
func IncGapAnalysisStarted() {
	gapAnalysisStartedTotal.Add(1)
}

// IncGapAnalysisCompleted increments the completed counter.
func IncGapAnalysisCompleted() {
	gapAnalysisCompletedTotal.Add(1)
}

// IncGapAnalysisFailed increments the failed counter.
func IncGapAnalysisFailed() {
	gapAnalysisFailedTotal.Add(1)
}

// ObserveGapAnalysisDurationMs records a gap computation duration in milliseconds.
func ObserveGapAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	gapAnalysisDuration.Observe(value)
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
	writeCounter(&buf, "gap_analyses_started_total", "Total gap analyses started", gapAnalysisStartedTotal.Load())
	writeCounter(&buf, "gap_analyses_completed_total", "Total gap analyses completed", gapAnalysisCompletedTotal.Load())
	writeCounter(&buf, "gap_analyses_failed_total", "Total gap analyses failed", gapAnalysisFailedTotal.Load())
	writeHistogram(&buf, "gap_analysis_duration_ms", "Gap computation duration in milliseconds", gapAnalysisDuration.Snapshot())
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
	// counts are per-bucket; the renderer accumulates.
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
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
