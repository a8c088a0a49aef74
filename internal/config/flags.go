package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   SQLite database file
//	-s string   storage backend
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first so that subcommand names
// and their flags do not reach this FlagSet.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the SQLite database file")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (sqlite, postgres, redis, memory)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

// RemainingArgs returns os.Args[1:] without the flags consumed by LoadConfig.
func RemainingArgs() []string {
	return flagx.RemoveArgs(os.Args[1:], KnownFlags)
}
