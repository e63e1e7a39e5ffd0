package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/profilekeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   data directory
//	-b string   storage backend (sqlite|file)
//	-m string   consistency mode (lww|cas)
//	-l string   log level (debug|info|warn|error)
//
// Unknown arguments are filtered out first with flagx.FilterArgs so the -c
// flag of the JSON loader does not trip this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend (sqlite|file)")
	fs.StringVar(&cfg.ConsistencyMode, "m", cfg.ConsistencyMode, "consistency mode (lww|cas)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
