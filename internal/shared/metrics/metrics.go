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
	recommendationsAccepted atomic.Uint64
	recommendationsRejected atomic.Uint64
	recommendationsDegraded atomic.Uint64
	coverLettersRendered    atomic.Uint64
	jobDescExtracted        atomic.Uint64
	jobDescFailed           atomic.Uint64
	jobDescCacheHits        atomic.Uint64
	applicationsCreated     atomic.Uint64
	detailsHeuristicUsed    atomic.Uint64
	eventsConsumed          atomic.Uint64
	eventsFailed            atomic.Uint64
	eventsDropped           atomic.Uint64

	llmDuration      = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
	coverLetterPages = newHistogram([]float64{1, 2, 3, 5, 10})
)

// AddRecommendations records how many candidates survived validation.
func AddRecommendations(accepted, rejected int) {
	recommendationsAccepted.Add(uint64(max(accepted, 0)))
	recommendationsRejected.Add(uint64(max(rejected, 0)))
}

// IncRecommendationsDegraded counts fallback placeholder responses.
func IncRecommendationsDegraded() { recommendationsDegraded.Add(1) }

// ObserveCoverLetter records one rendered cover letter and its page count.
func ObserveCoverLetter(pages int) {
	coverLettersRendered.Add(1)
	coverLetterPages.Observe(float64(pages))
}

// IncJobDescExtracted counts successful extractions; cached marks cache hits.
func IncJobDescExtracted(cached bool) {
	jobDescExtracted.Add(1)
	if cached {
		jobDescCacheHits.Add(1)
	}
}

// IncJobDescFailed counts failed extractions.
func IncJobDescFailed() { jobDescFailed.Add(1) }

// IncApplicationsCreated counts created application records.
func IncApplicationsCreated() { applicationsCreated.Add(1) }

// IncDetailsHeuristic counts company/title fallbacks to the text heuristic.
func IncDetailsHeuristic() { detailsHeuristicUsed.Add(1) }

// IncEventsConsumed counts application events handled by the worker.
func IncEventsConsumed() { eventsConsumed.Add(1) }

// IncEventsFailed counts events left on the queue for redelivery.
func IncEventsFailed() { eventsFailed.Add(1) }

// IncEventsDropped counts malformed events deleted without handling.
func IncEventsDropped() { eventsDropped.Add(1) }

// ObserveLLMDuration records a model call duration.
func ObserveLLMDuration(d time.Duration) {
	llmDuration.Observe(float64(d.Milliseconds()))
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
	writeCounter(&buf, "recommendations_accepted_total", "Recommendations returned after validation", recommendationsAccepted.Load())
	writeCounter(&buf, "recommendations_rejected_total", "Recommendations dropped by validation", recommendationsRejected.Load())
	writeCounter(&buf, "recommendations_degraded_total", "Optimize responses that fell back to the placeholder", recommendationsDegraded.Load())
	writeCounter(&buf, "cover_letters_rendered_total", "Cover letter PDFs rendered", coverLettersRendered.Load())
	writeCounter(&buf, "job_descriptions_extracted_total", "Job descriptions extracted from URLs", jobDescExtracted.Load())
	writeCounter(&buf, "job_description_cache_hits_total", "Job description extractions served from cache", jobDescCacheHits.Load())
	writeCounter(&buf, "job_description_failures_total", "Job description extractions that failed", jobDescFailed.Load())
	writeCounter(&buf, "applications_created_total", "Application records created", applicationsCreated.Load())
	writeCounter(&buf, "application_details_heuristic_total", "Company/title inferred by the text heuristic", detailsHeuristicUsed.Load())
	writeCounter(&buf, "application_events_consumed_total", "Application events handled by the worker", eventsConsumed.Load())
	writeCounter(&buf, "application_events_failed_total", "Application events left for redelivery", eventsFailed.Load())
	writeCounter(&buf, "application_events_dropped_total", "Malformed application events deleted", eventsDropped.Load())
	writeHistogram(&buf, "llm_call_duration_ms", "Model call duration in milliseconds", llmDuration.Snapshot())
	writeHistogram(&buf, "cover_letter_pages", "Pages per rendered cover letter", coverLetterPages.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64 // cumulative: counts[i] is observations <= buckets[i]
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
	if value < 0 {
		value = 0
	}
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
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
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
