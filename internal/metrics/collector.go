package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/angeloszaimis/host-health/internal/health"
)

type EventType string

const (
	EventBatchTriggered EventType = "batch_triggered"
	EventProbeStarted   EventType = "probe_started"
	EventProbeCompleted EventType = "probe_completed"
)

type MetricEvent struct {
	Type       EventType
	Timestamp  time.Time
	Host       string
	Duration   time.Duration
	StatusCode int
	Outcome    health.State
}

type Collector struct {
	eventCh chan MetricEvent
	metrics *Metrics
	prom    *promMetrics
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan MetricEvent, bufferSize),
		metrics: NewMetrics(),
		prom:    newPromMetrics(),
		logger:  logger,
	}
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventBatchTriggered:
		c.metrics.IncrementBatches()

	case EventProbeStarted:
		c.metrics.RecordProbeStarted(event.Host)

	case EventProbeCompleted:
		c.metrics.RecordProbeCompleted(event.Host, event.Outcome, event.Duration, event.StatusCode)

	default:
		c.logger.Debug("Dropping unknown metric event", slog.String("type", string(event.Type)))
		return
	}

	c.prom.observe(event, c.metrics.InFlight(event.Host))
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	return c.metrics.Snapshot()
}

// Emit sends event without blocking. Events are dropped when the buffer is
// full or ch is nil.
func Emit(ch chan<- MetricEvent, event MetricEvent) {
	if ch == nil {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case ch <- event:
	default:
	}
}
