package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/topicprobe/internal/config"
	"github.com/specialistvlad/topicprobe/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. Logs are
// captured as JSON so tests can inspect them with testutil.Find.
func SetupAppTest(t *testing.T, cfg *Config, loader config.Loader, opts ...Option) (*App, *testutil.SafeBuffer, error) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"
	testApp, err := NewApp(logBuffer, cfg, loader, opts...)

	t.Cleanup(func() {
		if os.Getenv("TOPICPROBE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer, err
}
