package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicprobe/internal/config"
	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"github.com/specialistvlad/topicprobe/internal/graph"
	"github.com/specialistvlad/topicprobe/internal/inmemorygraph"
	"github.com/specialistvlad/topicprobe/internal/socketiograph"
)

// loadModel reads the configuration, applies the CLI overrides and validates
// the result.
func (a *App) loadModel(ctx context.Context, loader config.Loader) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading configuration...", "config_path", a.cfg.ConfigPath)

	model, err := loader.Load(ctx, a.cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if a.cfg.RoundTimeout > 0 {
		logger.Debug("Round timeout overridden from the command line.", "round_timeout", a.cfg.RoundTimeout)
		model.Checker.RoundTimeout = a.cfg.RoundTimeout
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return model, nil
}

// connectGraph returns the graph to check and a function releasing it.
func (a *App) connectGraph(ctx context.Context) (graph.Graph, func(), error) {
	logger := ctxlog.FromContext(ctx)
	if a.graph != nil {
		logger.Debug("Using pre-configured graph.")
		return a.graph, func() {}, nil
	}

	intro := a.model.Introspection
	switch intro.Backend {
	case config.BackendSnapshot:
		g, err := inmemorygraph.FromSnapshot(a.model.Snapshot, a.clock)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build snapshot graph: %w", err)
		}
		logger.Info("Snapshot graph loaded.", "topics", snapshotTopics(a.model.Snapshot))
		return g, func() { g.Wait() }, nil

	case config.BackendSocketIO:
		logger.Info("Connecting to introspection bridge...", "url", intro.URL, "namespace", intro.Namespace)
		client, err := socketiograph.Dial(ctx, intro, a.clock)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to introspection bridge: %w", err)
		}
		logger.Info("Connected to introspection bridge.")
		return client, func() {
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close introspection bridge connection.", "error", err)
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown introspection backend %q", intro.Backend)
	}
}

func snapshotTopics(s *config.Snapshot) int {
	if s == nil {
		return 0
	}
	return len(s.Topics)
}
