package observability

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MetricType is the kind of a metric series.
type MetricType int

const (
	// Counter only goes up.
	Counter MetricType = iota
	// Gauge goes up and down.
	Gauge
	// Histogram accumulates observations: Value is their sum, Count their
	// number.
	Histogram
)

// Metric is a snapshot of one series.
type Metric struct {
	Name      string            `json:"name"`
	Type      MetricType        `json:"type"`
	Value     float64           `json:"value"`
	Count     uint64            `json:"count,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// MetricsCollector receives the metrics recorded by SyncMetrics.
type MetricsCollector interface {
	IncrementCounter(name string, labels map[string]string)
	IncrementGauge(name string, labels map[string]string)
	DecrementGauge(name string, labels map[string]string)
	RecordHistogram(name string, value float64, labels map[string]string)

	GetMetrics() []Metric
	GetMetric(name string, labels map[string]string) (*Metric, bool)
}

// InMemoryMetricsCollector keeps every series in a map. It is safe for
// concurrent use.
type InMemoryMetricsCollector struct {
	mu     sync.RWMutex
	series map[string]*Metric
}

func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return &InMemoryMetricsCollector{series: make(map[string]*Metric)}
}

func (c *InMemoryMetricsCollector) IncrementCounter(name string, labels map[string]string) {
	c.update(name, Counter, labels, func(m *Metric) { m.Value++ })
}

func (c *InMemoryMetricsCollector) IncrementGauge(name string, labels map[string]string) {
	c.update(name, Gauge, labels, func(m *Metric) { m.Value++ })
}

func (c *InMemoryMetricsCollector) DecrementGauge(name string, labels map[string]string) {
	c.update(name, Gauge, labels, func(m *Metric) { m.Value-- })
}

func (c *InMemoryMetricsCollector) RecordHistogram(name string, value float64, labels map[string]string) {
	c.update(name, Histogram, labels, func(m *Metric) {
		m.Value += value
		m.Count++
	})
}

// update applies fn to the series for name and labels, creating it first if
// needed.
func (c *InMemoryMetricsCollector) update(name string, typ MetricType, labels map[string]string, fn func(*Metric)) {
	key := seriesKey(name, labels)

	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.series[key]
	if !ok {
		m = &Metric{Name: name, Type: typ, Labels: maps.Clone(labels)}
		c.series[key] = m
	}
	fn(m)
	m.Timestamp = time.Now()
}

// GetMetrics returns a copy of every series, ordered by name then labels.
func (c *InMemoryMetricsCollector) GetMetrics() []Metric {
	c.mu.RLock()
	keys := slices.Sorted(maps.Keys(c.series))
	out := make([]Metric, 0, len(keys))
	for _, k := range keys {
		out = append(out, snapshot(c.series[k]))
	}
	c.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b Metric) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// GetMetric returns a copy of one series.
func (c *InMemoryMetricsCollector) GetMetric(name string, labels map[string]string) (*Metric, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.series[seriesKey(name, labels)]
	if !ok {
		return nil, false
	}
	s := snapshot(m)
	return &s, true
}

func snapshot(m *Metric) Metric {
	s := *m
	s.Labels = maps.Clone(m.Labels)
	return s
}

// seriesKey is independent of map iteration order.
func seriesKey(name string, labels map[string]string) string {
	var b strings.Builder
	b.WriteString(name)
	for _, k := range slices.Sorted(maps.Keys(labels)) {
		b.WriteString("|" + k + "=" + labels[k])
	}
	return b.String()
}

var defaultCollector atomic.Pointer[MetricsCollector]

func init() {
	SetDefaultMetricsCollector(NewInMemoryMetricsCollector())
}

// SetDefaultMetricsCollector replaces the collector NewSyncMetrics(nil) uses.
func SetDefaultMetricsCollector(c MetricsCollector) {
	defaultCollector.Store(&c)
}

// GetDefaultMetricsCollector returns the package-level collector.
func GetDefaultMetricsCollector() MetricsCollector {
	return *defaultCollector.Load()
}

// SyncMetrics records the standard metrics of agents contending on shared
// primitives.
type SyncMetrics struct {
	collector MetricsCollector
}

// NewSyncMetrics records into collector, or into the package-level collector
// when collector is nil.
func NewSyncMetrics(collector MetricsCollector) *SyncMetrics {
	if collector == nil {
		collector = GetDefaultMetricsCollector()
	}
	return &SyncMetrics{collector: collector}
}

// RecordAcquire counts one lock or permit acquisition attempt.
func (m *SyncMetrics) RecordAcquire(primitive string, acquired bool) {
	m.collector.IncrementCounter("shmsync_acquire_total", map[string]string{
		"primitive": primitive,
		"acquired":  boolLabel(acquired),
	})
}

// RecordWaitTime observes how long an agent spent in a contended operation.
func (m *SyncMetrics) RecordWaitTime(primitive string, d time.Duration) {
	m.collector.RecordHistogram("shmsync_wait_duration_ms",
		float64(d)/float64(time.Millisecond), map[string]string{"primitive": primitive})
}

func (m *SyncMetrics) RecordAgentStarted() {
	m.collector.IncrementGauge("shmsync_active_agents", nil)
}

func (m *SyncMetrics) RecordAgentFinished(success bool) {
	m.collector.DecrementGauge("shmsync_active_agents", nil)
	m.collector.IncrementCounter("shmsync_agents_finished_total", map[string]string{
		"success": boolLabel(success),
	})
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
