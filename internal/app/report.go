package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/topicprobe/internal/checker"
	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// writeReport stores r as YAML at the configured report path.
func (a *App) writeReport(ctx context.Context, r *checker.Report) error {
	if a.cfg.ReportPath == "" {
		return nil
	}

	out, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(a.cfg.ReportPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	ctxlog.FromContext(ctx).Info("Report written.", "path", a.cfg.ReportPath, "topics", len(r.Topics))
	return nil
}
