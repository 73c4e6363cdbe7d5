package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/angeloszaimis/host-health/internal/health"
	"github.com/angeloszaimis/host-health/internal/metrics"
	"github.com/angeloszaimis/host-health/internal/registry"
)

const (
	// Path is appended to the host identifier to build the probe URL.
	Path = "/healthy"
	// DefaultTimeout bounds a whole probe, body included.
	DefaultTimeout = 4 * time.Second
)

// ErrInvalidResponse is logged when a host answers with a non-2xx status.
var ErrInvalidResponse = errors.New("invalid response")

// Prober sends one health request per call and records the outcome in a
// registry store.
type Prober struct {
	client  *http.Client
	store   *registry.Store
	timeout time.Duration
	events  chan<- metrics.MetricEvent
	logger  *slog.Logger
}

type Option func(*Prober)

func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		p.timeout = timeout
	}
}

func WithClient(client *http.Client) Option {
	return func(p *Prober) {
		p.client = client
	}
}

// WithEvents sends probe_started and probe_completed events to ch.
func WithEvents(ch chan<- metrics.MetricEvent) Option {
	return func(p *Prober) {
		p.events = ch
	}
}

func New(store *registry.Store, logger *slog.Logger, opts ...Option) *Prober {
	p := &Prober{
		client:  &http.Client{},
		store:   store,
		timeout: DefaultTimeout,
		logger:  logger,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe checks host and stores the result:
//   - 2xx with a JSON body: the body
//   - any other status: ERROR
//   - deadline or cancellation: TIMEOUT
//   - any other failure: UNKNOWN
func (p *Prober) Probe(ctx context.Context, host string) {
	start := time.Now()
	metrics.Emit(p.events, metrics.MetricEvent{
		Type: metrics.EventProbeStarted,
		Host: host,
	})

	value, statusCode, err := p.check(ctx, host)
	duration := time.Since(start)

	p.store.Set(host, value)

	outcome := health.Successful
	if s, ok := value.State(); ok {
		outcome = s
	}

	metrics.Emit(p.events, metrics.MetricEvent{
		Type:       metrics.EventProbeCompleted,
		Host:       host,
		Duration:   duration,
		StatusCode: statusCode,
		Outcome:    outcome,
	})

	if err != nil {
		p.logger.Warn("Health check failed",
			slog.String("host", host),
			slog.String("state", value.String()),
			slog.Int("status_code", statusCode),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return
	}

	p.logger.Info("Health check succeeded",
		slog.String("host", host),
		slog.String("payload", value.String()),
		slog.Duration("duration", duration))
}

func (p *Prober) check(ctx context.Context, host string) (health.Value, int, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+Path, nil)
	if err != nil {
		return failure(err), 0, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return failure(err), 0, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return health.StateValue(health.Error), res.StatusCode,
			fmt.Errorf("%w: %s", ErrInvalidResponse, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return failure(err), res.StatusCode, err
	}

	value, err := health.PayloadValue(body)
	if err != nil {
		return health.StateValue(health.Unknown), res.StatusCode, err
	}

	return value, res.StatusCode, nil
}

func failure(err error) health.Value {
	if isTimeout(err) {
		return health.StateValue(health.Timeout)
	}
	return health.StateValue(health.Unknown)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
