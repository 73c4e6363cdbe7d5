package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/host-health/internal/health"
	"github.com/angeloszaimis/host-health/internal/metrics"
)

const host = "http://192.168.68.107"

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	Describe("IncrementBatches", func() {
		It("should count batches", func() {
			m.IncrementBatches()
			m.IncrementBatches()

			Expect(m.Snapshot().Batches).To(Equal(int64(2)))
		})
	})

	Describe("RecordProbeStarted", func() {
		It("should count probes and in-flight probes per host", func() {
			m.RecordProbeStarted(host)
			m.RecordProbeStarted(host)
			m.RecordProbeStarted("http://192.168.68.109")

			snap := m.Snapshot()
			Expect(snap.TotalProbes).To(Equal(int64(3)))
			Expect(snap.Hosts[host].Probes).To(Equal(int64(2)))
			Expect(snap.Hosts[host].InFlight).To(Equal(int64(2)))
		})
	})

	Describe("RecordProbeCompleted", func() {
		It("should record outcome, duration and status code", func() {
			m.RecordProbeStarted(host)
			m.RecordProbeCompleted(host, health.Error, 100*time.Millisecond, 500)

			hm := m.Snapshot().Hosts[host]
			Expect(hm.InFlight).To(Equal(int64(0)))
			Expect(hm.LastOutcome).To(Equal(health.Error))
			Expect(hm.Outcomes[health.Error]).To(Equal(int64(1)))
			Expect(hm.AvgDuration).To(Equal(100 * time.Millisecond))
			Expect(hm.StatusCodes[500]).To(Equal(int64(1)))
		})

		It("should not record a status code when no response arrived", func() {
			m.RecordProbeStarted(host)
			m.RecordProbeCompleted(host, health.Timeout, 4*time.Second, 0)

			Expect(m.Snapshot().Hosts[host].StatusCodes).To(BeEmpty())
		})

		It("should not let in-flight go negative", func() {
			m.RecordProbeStarted(host)
			m.RecordProbeCompleted(host, health.Unknown, time.Millisecond, 0)
			m.RecordProbeCompleted(host, health.Unknown, time.Millisecond, 0)

			Expect(m.Snapshot().Hosts[host].InFlight).To(Equal(int64(0)))
		})

		It("should calculate percentiles correctly", func() {
			m.RecordProbeStarted(host)
			for i := 1; i <= 100; i++ {
				m.RecordProbeCompleted(host, health.Successful, time.Duration(i)*time.Millisecond, 200)
			}

			hm := m.Snapshot().Hosts[host]
			Expect(hm.P50Duration).To(BeNumerically("~", 50*time.Millisecond, 1*time.Millisecond))
			Expect(hm.P95Duration).To(BeNumerically("~", 95*time.Millisecond, 1*time.Millisecond))
			Expect(hm.P99Duration).To(BeNumerically("~", 99*time.Millisecond, 1*time.Millisecond))
		})

		It("should limit stored durations to 1000", func() {
			m.RecordProbeStarted(host)
			for i := 1; i <= 1500; i++ {
				m.RecordProbeCompleted(host, health.Successful, time.Duration(i)*time.Millisecond, 200)
			}

			Expect(m.Snapshot().Hosts[host].AvgDuration).To(BeNumerically(">", 500*time.Millisecond))
		})
	})

	Describe("Snapshot", func() {
		It("should handle empty metrics", func() {
			snap := m.Snapshot()
			Expect(snap.TotalProbes).To(Equal(int64(0)))
			Expect(snap.Hosts).To(BeEmpty())
		})

		It("should return independent snapshots", func() {
			m.RecordProbeStarted(host)
			m.RecordProbeCompleted(host, health.Error, time.Millisecond, 503)
			snap1 := m.Snapshot()

			m.RecordProbeStarted(host)
			m.RecordProbeCompleted(host, health.Error, time.Millisecond, 503)
			snap2 := m.Snapshot()

			Expect(snap1.Hosts[host].Outcomes[health.Error]).To(Equal(int64(1)))
			Expect(snap2.Hosts[host].Outcomes[health.Error]).To(Equal(int64(2)))
		})
	})
})
