package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicprobe/internal/checker"
	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// Run connects to the graph and runs the checker until it finishes or ctx is
// cancelled. The health check server, when enabled, runs alongside and is
// shut down when the checker returns.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	g, release, err := a.connectGraph(ctx)
	if err != nil {
		return err
	}
	defer release()

	chk := checker.New(g, a.registry, a.model.Checker,
		checker.WithClock(a.clock),
		checker.WithMetrics(a.metrics),
	)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	eg, egCtx := errgroup.WithContext(runCtx)

	if a.cfg.HealthcheckPort > 0 {
		serve, err := a.startHealthcheckServer(ctx)
		if err != nil {
			return err
		}
		eg.Go(serve)
		eg.Go(func() error {
			<-egCtx.Done()
			return a.closeHealthcheckServer(ctx)
		})
	} else {
		a.logger.Debug("Health check server not started: disabled")
	}

	eg.Go(func() error {
		defer stop()

		a.logger.Info("🚀 Starting topic connection check...", "session_id", chk.SessionID())
		report, err := chk.Run(egCtx)
		if report != nil {
			a.setReport(report)
			if werr := a.writeReport(ctx, report); werr != nil {
				a.logger.Error("Failed to write report.", "error", werr)
				if err == nil {
					err = werr
				}
			}
		}
		if err != nil {
			return fmt.Errorf("topic check failed: %w", err)
		}
		a.logger.Info("🏁 Topic connection check finished.",
			"stuck", len(report.Stuck),
			"dead_ends", len(report.DeadEnds),
		)
		return nil
	})

	err = eg.Wait()
	a.logger.Debug("App.Run method finished.")
	return err
}
