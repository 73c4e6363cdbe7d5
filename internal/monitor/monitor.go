package monitor

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angeloszaimis/host-health/internal/dashboard"
	"github.com/angeloszaimis/host-health/internal/metrics"
	"github.com/angeloszaimis/host-health/internal/registry"
)

// Prober checks one host and records the outcome itself.
type Prober interface {
	Probe(ctx context.Context, host string)
}

// Monitor drives probing and rendering over one registry store and one table.
type Monitor struct {
	store  *registry.Store
	prober Prober
	table  *dashboard.Table
	events chan<- metrics.MetricEvent
	logger *slog.Logger
}

// Batch is the set of probes started by one Trigger.
type Batch struct {
	hosts []string
	done  chan struct{}
}

// Done is closed once every probe of the batch has returned.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the batch settles or ctx is done.
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Hosts lists the hosts probed by the batch.
func (b *Batch) Hosts() []string {
	return b.hosts
}

type Option func(*Monitor)

// WithEvents sends a batch_triggered event to ch on every Trigger.
func WithEvents(ch chan<- metrics.MetricEvent) Option {
	return func(m *Monitor) {
		m.events = ch
	}
}

func New(store *registry.Store, prober Prober, table *dashboard.Table, logger *slog.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		store:  store,
		prober: prober,
		table:  table,
		logger: logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Table returns the table the monitor renders into.
func (m *Monitor) Table() *dashboard.Table {
	return m.table
}

// Store returns the registry the monitor reads from.
func (m *Monitor) Store() *registry.Store {
	return m.store
}

// Trigger starts a probe for every host without waiting for any of them,
// renders the table once with whatever is currently known and logs the
// registry. Probes run until they finish or ctx is done; use the returned
// Batch to wait for them.
func (m *Monitor) Trigger(ctx context.Context) *Batch {
	hosts := m.store.Hosts()
	batch := &Batch{
		hosts: hosts,
		done:  make(chan struct{}),
	}

	metrics.Emit(m.events, metrics.MetricEvent{Type: metrics.EventBatchTriggered})

	// Probes are started before the render but held until it is done, so the
	// render never observes a probe outcome of this batch.
	rendered := make(chan struct{})

	var g errgroup.Group
	for _, host := range hosts {
		g.Go(func() error {
			<-rendered
			m.prober.Probe(ctx, host)
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(batch.done)
		m.logger.Debug("Probe batch settled", slog.Int("hosts", len(hosts)))
	}()

	m.Render()
	m.logger.Info("Triggered health checks", slog.Any("registry", m.store.Snapshot()))
	close(rendered)

	return batch
}

// Render reconciles the table with the current registry.
func (m *Monitor) Render() {
	m.table.Render(m.store.Snapshot())
}

// Run triggers a batch every interval until ctx is done. A non-positive
// interval disables it.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.Info("Periodic health checks started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Periodic health checks stopped")
			return

		case <-ticker.C:
			m.Trigger(ctx)
		}
	}
}
