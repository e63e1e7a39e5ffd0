package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/profilekeeper/internal/flagx"
	"github.com/dmitrijs2005/profilekeeper/internal/timex"
)

// FileConfig is the on-disk shape of the config file, JSON or YAML. Every
// field is optional; absent fields keep the value from earlier sources.
type FileConfig struct {
	DataDir         *string         `json:"data_dir" yaml:"data_dir"`
	Backend         *string         `json:"backend" yaml:"backend"`
	ConsistencyMode *string         `json:"consistency_mode" yaml:"consistency_mode"`
	PasswordScheme  *string         `json:"password_scheme" yaml:"password_scheme"`
	RememberTTL     *timex.Duration `json:"remember_ttl" yaml:"remember_ttl"`
	RememberSecret  *string         `json:"remember_secret" yaml:"remember_secret"`
	LogLevel        *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. Files ending in
// .yaml or .yml are read as YAML, anything else as JSON. Read and decode
// errors panic; a missing flag is a no-op.
func parseFile(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.Backend, fc.Backend)
	setString(&cfg.ConsistencyMode, fc.ConsistencyMode)
	setString(&cfg.PasswordScheme, fc.PasswordScheme)
	setString(&cfg.RememberSecret, fc.RememberSecret)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.RememberTTL != nil {
		cfg.RememberTTL = fc.RememberTTL.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
