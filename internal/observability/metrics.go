package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/support-chatbot/internal/domain"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu                  sync.Mutex
	requestCount        map[string]int64
	errorCount          map[string]int64
	classificationCount map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:        make(map[string]int64),
		errorCount:          make(map[string]int64),
		classificationCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordClassification increments per-category counters for handled messages.
func (m *Metrics) RecordClassification(category domain.Category, method domain.ClassificationMethod, duration time.Duration) {
	if m == nil {
		return
	}
	key := string(category) + "|" + string(method)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classificationCount[key]++
}

// ClassificationCounts returns a snapshot of per-category counters.
func (m *Metrics) ClassificationCounts() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.classificationCount))
	for k, v := range m.classificationCount {
		out[k] = v
	}
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
