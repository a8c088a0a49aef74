package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/budgetkeeper/internal/config"
	"github.com/dmitrijs2005/budgetkeeper/internal/cryptox"
	"github.com/dmitrijs2005/budgetkeeper/internal/kv"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/services"
	"github.com/google/subcommands"
)

// openStore is a seam for kv.Open.
var openStore = kv.Open

// Register adds the budget subcommands to commander.
func Register(commander *subcommands.Commander, cfg *config.Config, log logging.Logger) {
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&replCmd{cfg: cfg, log: log}, "")
	commander.Register(&migrateCmd{cfg: cfg, log: log, out: os.Stdout}, "storage")
	commander.Register(&usersCmd{cfg: cfg, log: log, out: os.Stdout}, "storage")
	commander.Register(&versionCmd{out: os.Stdout}, "")
}

type replCmd struct {
	cfg *config.Config
	log logging.Logger
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start the interactive budget session (default)" }
func (*replCmd) Usage() string {
	return `repl

  Opens the configured storage and starts the interactive session. Type
  'help' at the prompt for the available commands.
`
}
func (*replCmd) SetFlags(*flag.FlagSet) {}

func (c *replCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp(ctx, c.cfg, c.log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	app.Run(ctx)
	return subcommands.ExitSuccess
}

type migrateCmd struct {
	cfg *config.Config
	log logging.Logger
	out io.Writer
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "create or upgrade the storage schema and exit" }
func (*migrateCmd) Usage() string {
	return `migrate

  Applies pending schema migrations of the sqlite and postgres backends.
  Other backends have no schema and only check connectivity.
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore(ctx, StoreOptions(c.cfg))
	if err != nil {
		c.log.Error(ctx, "migrate failed", "backend", c.cfg.Storage, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	fmt.Fprintf(c.out, "storage %q is up to date\n", c.cfg.Storage)
	return subcommands.ExitSuccess
}

type usersCmd struct {
	cfg    *config.Config
	log    logging.Logger
	out    io.Writer
	asJSON bool
}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "list registered accounts" }
func (*usersCmd) Usage() string {
	return `users [-json]

  Lists every registered account with its id, email, display name and
  creation time. Password hashes are never printed.
`
}

func (c *usersCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "print accounts as JSON")
}

type userView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

func (c *usersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore(ctx, StoreOptions(c.cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	hasher, err := cryptox.NewHasher(c.cfg.PasswordHasher)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	users, err := services.NewAccountService(store, hasher, c.log).ListUsers(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.asJSON {
		fmt.Fprint(c.out, renderMarkdown(usersMarkdown(users)))
		return subcommands.ExitSuccess
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.DisplayName(),
			CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(views); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type versionCmd struct {
	out io.Writer
}

func (*versionCmd) Name() string           { return "version" }
func (*versionCmd) Synopsis() string       { return "print build information" }
func (*versionCmd) Usage() string          { return "version\n" }
func (*versionCmd) SetFlags(*flag.FlagSet) {}

func (c *versionCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	buildinfo.PrintBuildData(c.out)
	return subcommands.ExitSuccess
}
