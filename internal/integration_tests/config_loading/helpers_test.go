package integration_tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/topicprobe/internal/app"
	"github.com/specialistvlad/topicprobe/internal/hcl"
	"github.com/specialistvlad/topicprobe/internal/testutil"
	"github.com/stretchr/testify/require"
)

// writeConfig lays out files (relative path -> content) in a temp directory
// and returns it.
func writeConfig(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

// runProbe loads the configuration in dir with the HCL loader and runs the
// app to completion.
func runProbe(t *testing.T, dir string, opts ...app.Option) (*app.App, *testutil.SafeBuffer, error) {
	t.Helper()
	probe, buf, err := app.SetupAppTest(t, &app.Config{ConfigPath: dir}, hcl.NewLoader(), opts...)
	if err != nil {
		return nil, buf, err
	}
	return probe, buf, probe.Run(context.Background())
}
