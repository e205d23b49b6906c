package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Test for: settings the checker cannot work with are rejected at startup.
func TestErrorHandling_InvalidSettings_AreRejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name:    "relative topic name",
			config:  `checker { important_topics = ["control_cmd"] }`,
			wantErr: `important topic "control_cmd" must be fully qualified`,
		},
		{
			name:    "zero round timeout",
			config:  `checker { round_timeout = "0s" }`,
			wantErr: "round_timeout must be positive",
		},
		{
			name:    "negative max rounds",
			config:  `checker { max_rounds = -1 }`,
			wantErr: "max_rounds cannot be negative",
		},
		{
			name:    "unknown backend",
			config:  `introspection "dds" {}`,
			wantErr: `unknown introspection backend "dds"`,
		},
		{
			name:    "socket.io without url",
			config:  `introspection "socketio" {}`,
			wantErr: `requires url`,
		},
		{
			name:    "malformed message type",
			config:  `message_type "custom/Thing" {}`,
			wantErr: "registry validation failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			dir := writeConfig(t, map[string]string{"main.hcl": tc.config})

			// --- Act ---
			_, _, err := runProbe(t, dir)

			// --- Assert ---
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
