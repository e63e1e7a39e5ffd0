package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/profilekeeper/internal/client/config"
	"github.com/dmitrijs2005/profilekeeper/internal/client/repositories/storage"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:         t.TempDir(),
		Backend:         backend,
		ConsistencyMode: "lww",
		PasswordScheme:  "plain",
		RememberTTL:     time.Hour,
		LogLevel:        "error",
	}
}

func stubTerminalPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

func runSession(t *testing.T, cfg *config.Config, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	app, closeFn, err := Open(context.Background(), cfg, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, err)
	defer func() { require.NoError(t, closeFn()) }()

	app.Run(context.Background())
	return out.String()
}

func TestOpen_EndToEnd(t *testing.T) {
	for _, backend := range []string{"sqlite", "file"} {
		t.Run(backend, func(t *testing.T) {
			capturePrintln(t)
			stubTerminalPassword(t, "secret1")
			cfg := testConfig(t, backend)

			out := runSession(t, cfg,
				"register", "Ann", "ann@x.com", "555", "",
				"login", "ann@x.com", "y",
				"profile",
				"exit",
			)
			assert.Contains(t, out, "Registered!")
			assert.Contains(t, out, "Welcome, Ann")
			assert.Contains(t, out, "555")

			// Second run: remembered login, then logout forgets it.
			out = runSession(t, cfg, "whoami", "logout", "exit")
			assert.Contains(t, out, "Welcome back, Ann")
			assert.Contains(t, out, "ann@x.com\n")
			assert.Contains(t, out, "Logged out.")

			out = runSession(t, cfg, "whoami", "exit")
			assert.NotContains(t, out, "Welcome back")
			assert.Contains(t, out, "You are not logged in.")

			_, err := os.Stat(filepath.Join(cfg.DataDir, config.SecretFile))
			require.NoError(t, err)
		})
	}
}

func TestOpen_SQLiteFileInDataDir(t *testing.T) {
	cfg := testConfig(t, "sqlite")
	_, closeFn, err := Open(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, closeFn())

	_, err = os.Stat(filepath.Join(cfg.DataDir, storage.DatabaseFile))
	assert.NoError(t, err)
}

func TestOpen_BadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "mode", mutate: func(c *config.Config) { c.ConsistencyMode = "strict" }},
		{name: "scheme", mutate: func(c *config.Config) { c.PasswordScheme = "md5" }},
		{name: "backend", mutate: func(c *config.Config) { c.Backend = "redis" }},
		{name: "secret", mutate: func(c *config.Config) { c.RememberSecret = "not-hex" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t, "file")
			tc.mutate(cfg)
			_, _, err := Open(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{})
			require.Error(t, err)
		})
	}
}
