package config

import (
	"time"

	"github.com/dmitrijs2005/profilekeeper/internal/filex"
)

// Config holds runtime settings for the ProfileKeeper CLI.
type Config struct {
	// DataDir holds the durable storage and the remember-me key.
	DataDir string
	// Backend is the durable storage backend: "sqlite" or "file".
	Backend string
	// ConsistencyMode is "lww" (last write wins) or "cas" (compare-and-swap).
	ConsistencyMode string
	// PasswordScheme is "plain" or "argon2id".
	PasswordScheme string
	// RememberTTL is how long a remember-me login stays valid.
	RememberTTL time.Duration
	// RememberSecret is the hex HMAC key for remember-me tokens. When empty
	// a key is generated once and kept in DataDir.
	RememberSecret string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = filex.DefaultDataDir()
	c.Backend = "sqlite"
	c.ConsistencyMode = "lww"
	c.PasswordScheme = "plain"
	c.RememberTTL = 30 * 24 * time.Hour
	c.RememberSecret = ""
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
