package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/specialistvlad/topicprobe/internal/checker"
	"github.com/specialistvlad/topicprobe/internal/config"
	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"github.com/specialistvlad/topicprobe/internal/graph"
	"github.com/specialistvlad/topicprobe/internal/metrics"
	"github.com/specialistvlad/topicprobe/internal/registry"
)

// Option customises an App.
type Option func(*App)

// WithModules replaces the compiled-in message type packs.
func WithModules(modules ...registry.Module) Option {
	return func(a *App) { a.modules = modules }
}

// WithGraph makes the app check g instead of connecting to the configured
// introspection backend.
func WithGraph(g graph.Graph) Option {
	return func(a *App) { a.graph = g }
}

// WithClock sets the clock used for round deadlines and timestamps.
func WithClock(clk clock.Clock) Option {
	return func(a *App) { a.clock = clk }
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	model    *config.Model
	modules  []registry.Module
	registry *registry.Registry
	clock    clock.Clock

	promRegistry *prometheus.Registry
	metrics      *metrics.Metrics

	graph      graph.Graph
	httpServer *http.Server

	mu     sync.Mutex
	report *checker.Report
}

// NewApp is the constructor for the main application. It loads and validates
// the configuration and builds the message type registry. Nothing is
// connected until Run.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) (*App, error) {
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	if err != nil {
		return nil, fmt.Errorf("invalid logging configuration: %w", err)
	}
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.clock == nil {
		a.clock = clock.New()
	}

	model, err := a.loadModel(ctx, loader)
	if err != nil {
		return nil, err
	}
	a.model = model
	logger.Debug("Configuration loaded and translated into unified model.")

	reg := registry.New()
	if len(a.modules) == 0 {
		a.modules = coreModules
	}
	for _, mod := range a.modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(a.modules))

	reg.PopulateDefinitionsFromModel(model)
	logger.Debug("Registry definitions populated from config model.", "types", reg.Len())

	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")
	a.registry = reg

	a.promRegistry = prometheus.NewRegistry()
	a.promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics = metrics.New(a.promRegistry)

	return a, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded configuration model.
func (a *App) Model() *config.Model {
	return a.model
}

// Report returns the report of the last run, or nil before Run has finished
// a round.
func (a *App) Report() *checker.Report {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.report
}

func (a *App) setReport(r *checker.Report) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.report = r
}

// Gatherer exposes the app's metrics. This is primarily for testing.
func (a *App) Gatherer() prometheus.Gatherer {
	return a.promRegistry
}
