package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	base := Config{RememberTTL: time.Hour, PasswordScheme: "plain"}

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-d", "/tmp/pk", "-b", "file", "-m", "cas", "-l", "debug"},
			expected: &Config{DataDir: "/tmp/pk", Backend: "file", ConsistencyMode: "cas", LogLevel: "debug", RememberTTL: time.Hour, PasswordScheme: "plain"}},
		{name: "equals form", args: []string{"cmd", "-b=sqlite"},
			expected: &Config{Backend: "sqlite", RememberTTL: time.Hour, PasswordScheme: "plain"}},
		{name: "foreign flags ignored", args: []string{"cmd", "-c", "cfg.json", "-x", "-l", "info"},
			expected: &Config{LogLevel: "info", RememberTTL: time.Hour, PasswordScheme: "plain"}},
		{name: "missing value", args: []string{"cmd", "-d"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := base

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(&config) })
				assert.Empty(t, cmp.Diff(tt.expected, &config))
			} else {
				require.Panics(t, func() { parseFlags(&config) })
			}
		})
	}
}
