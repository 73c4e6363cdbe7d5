package metrics

import (
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/angeloszaimis/host-health/internal/health"
)

const maxSamples = 1000

type Metrics struct {
	mutex       sync.RWMutex
	batches     int64
	probes      map[string]int64
	inFlight    map[string]int64
	outcomes    map[string]map[health.State]int64
	lastOutcome map[string]health.State
	durations   map[string][]time.Duration
	statusCodes map[string]map[int]int64
	startTime   time.Time
}

type Snapshot struct {
	Batches     int64                  `json:"batches"`
	TotalProbes int64                  `json:"total_probes"`
	Uptime      time.Duration          `json:"uptime"`
	Hosts       map[string]HostMetrics `json:"hosts"`
}

type HostMetrics struct {
	Probes      int64                  `json:"probes"`
	InFlight    int64                  `json:"in_flight"`
	LastOutcome health.State           `json:"last_outcome,omitempty"`
	Outcomes    map[health.State]int64 `json:"outcomes"`
	AvgDuration time.Duration          `json:"avg_duration"`
	P50Duration time.Duration          `json:"p50_duration"`
	P95Duration time.Duration          `json:"p95_duration"`
	P99Duration time.Duration          `json:"p99_duration"`
	StatusCodes map[int]int64          `json:"status_codes"`
}

// InFlight returns the number of started probes of host that have not
// completed yet. It never goes below zero.
func (m *Metrics) InFlight(host string) int64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.inFlight[host]
}

func (m *Metrics) IncrementBatches() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.batches++
}

func (m *Metrics) RecordProbeStarted(host string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.probes[host]++
	m.inFlight[host]++
}

// RecordProbeCompleted stores the outcome of a finished probe. A statusCode of
// 0 means no response was received.
func (m *Metrics) RecordProbeCompleted(host string, outcome health.State, duration time.Duration, statusCode int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.inFlight[host] > 0 {
		m.inFlight[host]--
	}

	if m.outcomes[host] == nil {
		m.outcomes[host] = make(map[health.State]int64)
	}
	m.outcomes[host][outcome]++
	m.lastOutcome[host] = outcome

	m.durations[host] = append(m.durations[host], duration)
	if len(m.durations[host]) > maxSamples {
		m.durations[host] = m.durations[host][1:]
	}

	if statusCode != 0 {
		if m.statusCodes[host] == nil {
			m.statusCodes[host] = make(map[int]int64)
		}
		m.statusCodes[host][statusCode]++
	}
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Batches: m.batches,
		Uptime:  time.Since(m.startTime),
		Hosts:   make(map[string]HostMetrics, len(m.probes)),
	}

	for host, probes := range m.probes {
		snap.TotalProbes += probes

		hm := HostMetrics{
			Probes:      probes,
			InFlight:    m.inFlight[host],
			LastOutcome: m.lastOutcome[host],
			Outcomes:    maps.Clone(m.outcomes[host]),
			StatusCodes: maps.Clone(m.statusCodes[host]),
		}

		durations := m.durations[host]
		if len(durations) > 0 {
			sorted := make([]time.Duration, len(durations))
			copy(sorted, durations)
			sort.Slice(sorted, func(i, j int) bool {
				return sorted[i] < sorted[j]
			})

			hm.AvgDuration = average(sorted)
			hm.P50Duration = percentile(sorted, 0.50)
			hm.P95Duration = percentile(sorted, 0.95)
			hm.P99Duration = percentile(sorted, 0.99)
		}

		snap.Hosts[host] = hm
	}

	return snap
}

func NewMetrics() *Metrics {
	return &Metrics{
		probes:      make(map[string]int64),
		inFlight:    make(map[string]int64),
		outcomes:    make(map[string]map[health.State]int64),
		lastOutcome: make(map[string]health.State),
		durations:   make(map[string][]time.Duration),
		statusCodes: make(map[string]map[int]int64),
		startTime:   time.Now(),
	}
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
