package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/config"
	"github.com/dmitrijs2005/budgetkeeper/internal/kv"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Storage = kv.BackendMemory

	app, err := newApp(cfg, logging.NewNop(), kv.NewMemoryStore(), bufio.NewReader(strings.NewReader("")))
	require.NoError(t, err)

	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdoutIsTerminal = orig })
	return app
}

// captureOutput redirects printlnFn into a buffer for the duration of the test.
func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var b strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return b.WriteString(fmt.Sprintln(a...)) }
	t.Cleanup(func() { printlnFn = orig })
	return &b
}

// stubInputs answers text prompts and password prompts from two queues.
// An exhausted queue behaves like a closed stdin.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ *bufio.Reader, _ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// seedUser registers an account directly through the service.
func seedUser(t *testing.T, app *App, email, password string) *models.User {
	t.Helper()
	u, err := app.accounts.CreateUser(context.Background(), email, []byte(password),
		models.Profile{FirstName: "Ada", LastName: "Lovelace", DOB: models.NewDate(1990, time.May, 1)})
	require.NoError(t, err)
	return u
}

// loginAs starts a session for u without going through the prompts.
func loginAs(t *testing.T, app *App, u *models.User) {
	t.Helper()
	require.NoError(t, app.session.SetCurrentUser(context.Background(), u.ID, u.DisplayName()))
}
