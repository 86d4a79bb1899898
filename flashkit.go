package flashkit

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/flashkit/pkg/actions"
	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/eventbus"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/metrics"
	"github.com/dmitrymomot/flashkit/pkg/notify"
	"github.com/dmitrymomot/flashkit/pkg/transport"
)

// Plugin is one installation: a notifier, the event bus feeding it and the
// bridge between the two.
type Plugin struct {
	notifier *notify.Notifier
	bus      *eventbus.Bus
	bridge   *bridge.Bridge
	metrics  *metrics.Collector
	handler  http.Handler
	logger   *slog.Logger

	uninstall sync.Once
}

type options struct {
	logger     *slog.Logger
	navigator  actions.Navigator
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	tracer     trace.Tracer
	transport  []transport.Option
}

// Option configures Install.
type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNavigator sets the navigator used for URL actions. Without one, URL
// actions fail with actions.ErrNoNavigator.
func WithNavigator(nav actions.Navigator) Option {
	return func(o *options) {
		o.navigator = nav
	}
}

// WithMetrics registers the Prometheus collectors on reg and serves them on
// the handler's /metrics route.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registerer = reg
			o.gatherer = reg
		}
	}
}

// WithTracer sets the tracer for dispatch and bridge spans. The global otel
// tracer is used otherwise.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithTransportOptions passes options to the HTTP handler.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) {
		o.transport = append(o.transport, opts...)
	}
}

// Install validates o, merges it over the defaults and wires a notifier, an
// event bus and a bridge attached to it.
func Install(o notify.Overrides, opts ...Option) (*Plugin, error) {
	if err := validate(o); err != nil {
		return nil, err
	}

	cfg := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		notifyOpts = []notify.Option{notify.WithLogger(cfg.logger)}
		regOpts    []actions.Option
		bridgeOpts = []bridge.Option{bridge.WithLogger(cfg.logger)}
		m          *metrics.Collector
	)
	if cfg.registerer != nil {
		m = metrics.New(metrics.WithRegistry(cfg.registerer))
		notifyOpts = append(notifyOpts, notify.WithRecorder(m))
		regOpts = append(regOpts, actions.WithRecorder(m))
		bridgeOpts = append(bridgeOpts, bridge.WithRecorder(m))
	}
	if cfg.tracer != nil {
		regOpts = append(regOpts, actions.WithTracer(cfg.tracer))
		bridgeOpts = append(bridgeOpts, bridge.WithTracer(cfg.tracer))
	}
	notifyOpts = append(notifyOpts, notify.WithRegistryOptions(regOpts...))

	n := notify.New(o, cfg.navigator, notifyOpts...)
	bus := eventbus.New(eventbus.WithLogger(cfg.logger))
	b := bridge.New(n, bridgeOpts...)
	b.Attach(bus)

	transportOpts := append([]transport.Option{transport.WithLogger(cfg.logger)}, cfg.transport...)
	if cfg.gatherer != nil {
		transportOpts = append(transportOpts, transport.WithGatherer(cfg.gatherer))
	}

	p := &Plugin{
		notifier: n,
		bus:      bus,
		bridge:   b,
		metrics:  m,
		handler:  transport.NewRouter(n, bus, transportOpts...),
		logger:   cfg.logger,
	}

	cfg.logger.Debug("flashkit installed",
		logger.Component("flashkit"),
		slog.Int("flash_keys", len(n.FlashKeys())),
		slog.Bool("metrics", m != nil),
	)
	return p, nil
}

func (p *Plugin) Notifier() *notify.Notifier { return p.notifier }

func (p *Plugin) Bus() *eventbus.Bus { return p.bus }

func (p *Plugin) Bridge() *bridge.Bridge { return p.bridge }

// Metrics returns the collector, or nil when WithMetrics was not given.
func (p *Plugin) Metrics() *metrics.Collector { return p.metrics }

// Handler returns the HTTP API. See package transport for the routes.
func (p *Plugin) Handler() http.Handler { return p.handler }

// Uninstall detaches the bridge, closes the bus and ends queue
// subscriptions. The queue stays readable. Safe to call more than once.
func (p *Plugin) Uninstall() {
	p.uninstall.Do(func() {
		p.bridge.Detach()
		p.bus.Close()
		p.notifier.Close()
		p.logger.Debug("flashkit uninstalled", logger.Component("flashkit"))
	})
}

func validate(o notify.Overrides) error {
	for _, k := range o.FlashKeys {
		if strings.TrimSpace(string(k)) == "" {
			return ErrInvalidFlashKey
		}
	}
	return nil
}
