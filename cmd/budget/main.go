package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/dmitrijs2005/budgetkeeper/internal/cli"
	"github.com/dmitrijs2005/budgetkeeper/internal/config"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/google/subcommands"
)

func main() {
	cfg := config.LoadConfig()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	name := path.Base(os.Args[0])
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	commander := subcommands.NewCommander(fs, name)
	cli.Register(commander, cfg, log)

	args := config.RemainingArgs()
	if len(args) == 0 {
		args = []string{"repl"}
	}
	_ = fs.Parse(args)

	os.Exit(int(commander.Execute(context.Background())))
}
