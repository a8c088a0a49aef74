package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"testing"

	"github.com/dmitrijs2005/budgetkeeper/internal/config"
	"github.com/dmitrijs2005/budgetkeeper/internal/kv"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Storage = kv.BackendMemory
	return cfg
}

func stubOpenStore(t *testing.T, store kv.Store, err error) *kv.Options {
	t.Helper()
	var got kv.Options
	orig := openStore
	openStore = func(_ context.Context, opts kv.Options) (kv.Store, error) {
		got = opts
		return store, err
	}
	t.Cleanup(func() { openStore = orig })
	return &got
}

func TestStoreOptions(t *testing.T) {
	cfg := testConfig()
	cfg.Storage, cfg.DBPath, cfg.RedisAddr, cfg.RedisDB = "redis", "x.db", "cache:6379", 4

	assert.Equal(t, kv.Options{
		Backend:   "redis",
		DBPath:    "x.db",
		RedisAddr: "cache:6379",
		RedisDB:   4,
	}, StoreOptions(cfg))
}

func TestNewApp(t *testing.T) {
	ctx := context.Background()

	opts := stubOpenStore(t, kv.NewMemoryStore(), nil)
	app, err := NewApp(ctx, testConfig(), logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, kv.BackendMemory, opts.Backend)
	require.NoError(t, app.Close())

	stubOpenStore(t, nil, errors.New("no disk"))
	_, err = NewApp(ctx, testConfig(), logging.NewNop())
	require.ErrorContains(t, err, "open memory storage: no disk")

	stubOpenStore(t, kv.NewMemoryStore(), nil)
	bad := testConfig()
	bad.Currency = "ZZZ"
	_, err = NewApp(ctx, bad, logging.NewNop())
	require.ErrorContains(t, err, "unknown currency")

	bad = testConfig()
	bad.PasswordHasher = "md5"
	_, err = NewApp(ctx, bad, logging.NewNop())
	require.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	status := (&versionCmd{out: &out}).Execute(context.Background(), flag.NewFlagSet("version", flag.ContinueOnError))
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "Build version:")
}

func TestMigrateCmd(t *testing.T) {
	ctx := context.Background()
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)

	stubOpenStore(t, kv.NewMemoryStore(), nil)
	var out bytes.Buffer
	status := (&migrateCmd{cfg: testConfig(), log: logging.NewNop(), out: &out}).Execute(ctx, fs)
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), `storage "memory" is up to date`)

	stubOpenStore(t, nil, errors.New("locked"))
	status = (&migrateCmd{cfg: testConfig(), log: logging.NewNop(), out: &out}).Execute(ctx, fs)
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestUsersCmd(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	app, err := newApp(testConfig(), logging.NewNop(), store, nil)
	require.NoError(t, err)
	_, err = app.accounts.CreateUser(ctx, "a@b.com", []byte("password1"), models.Profile{FirstName: "Ada"})
	require.NoError(t, err)

	stubOpenStore(t, store, nil)
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdoutIsTerminal = orig })

	var out bytes.Buffer
	cmd := &usersCmd{cfg: testConfig(), log: logging.NewNop(), out: &out}
	require.Equal(t, subcommands.ExitSuccess, cmd.Execute(ctx, flag.NewFlagSet("users", flag.ContinueOnError)))
	assert.Contains(t, out.String(), "| a@b.com | Ada |")

	out.Reset()
	cmd.asJSON = true
	require.Equal(t, subcommands.ExitSuccess, cmd.Execute(ctx, flag.NewFlagSet("users", flag.ContinueOnError)))

	var views []userView
	require.NoError(t, json.Unmarshal(out.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "a@b.com", views[0].Email)
	assert.Equal(t, "Ada", views[0].Name)
	assert.NotContains(t, out.String(), "passwordHash")
}

func TestRegister(t *testing.T) {
	fs := flag.NewFlagSet("budget", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "budget")
	Register(commander, testConfig(), logging.NewNop())

	require.NoError(t, fs.Parse([]string{"version"}))
	assert.Equal(t, subcommands.ExitSuccess, commander.Execute(context.Background()))
}
