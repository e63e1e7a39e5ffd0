// Package config loads runtime configuration for the ProfileKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via flags: -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   data directory (default ~/.profilekeeper)
//	-b string   storage backend: sqlite | file
//	-m string   consistency mode: lww | cas
//	-l string   log level: debug | info | warn | error
//
// # File schema
//
// Durations use timex.Duration, so "720h" and integer nanoseconds both work.
// YAML files (.yaml, .yml) use the same keys:
//
//	{
//	  "data_dir": "/home/me/.profilekeeper",
//	  "backend": "sqlite",
//	  "consistency_mode": "lww",
//	  "password_scheme": "plain",
//	  "remember_ttl": "720h",
//	  "remember_secret": "",
//	  "log_level": "warn"
//	}
//
// Note: This package does not read environment variables directly; use the
// config file or flags to configure values.
package config
