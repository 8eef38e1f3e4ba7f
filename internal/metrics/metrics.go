package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	SourcesFetched      int64
	SourcesFailed       int64
	DuplicatesFiltered  int64
	FallbacksInvoked    int64
	EnrichmentSucceeded int64
	EnrichmentFailed    int64
	ChunksSent          int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementSourcesFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesFetched++
}

func (m *Metrics) IncrementSourcesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesFailed++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbacksInvoked++
}

func (m *Metrics) RecordEnrichment(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.EnrichmentSucceeded++
	} else {
		m.EnrichmentFailed++
	}
}

func (m *Metrics) IncrementChunksSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChunksSent++
}

// FinishRun stamps the end of a pipeline pass.
func (m *Metrics) FinishRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.LastRunTime = time.Now()
}

func (m *Metrics) SetHealthy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

// Healthy reports whether the last run finished without a delivery error.
func (m *Metrics) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.IsHealthy
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"sources_fetched":      m.SourcesFetched,
		"sources_failed":       m.SourcesFailed,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"fallbacks_invoked":    m.FallbacksInvoked,
		"enrichment_succeeded": m.EnrichmentSucceeded,
		"enrichment_failed":    m.EnrichmentFailed,
		"chunks_sent":          m.ChunksSent,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
