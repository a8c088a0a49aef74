package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus(ctx context.Context) string {
	if !a.isLoggedIn(ctx) {
		return ""
	}
	name, err := a.session.DisplayName(ctx)
	if err != nil || name == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", name)
}

// Root greets the user, opens the remembered auth form and then hands over
// to the REPL.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Budget Keeper (type 'help' for commands)")

	if err := a.StartForm(ctx); err != nil {
		printlnFn("Error:", describe(err))
	}

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}
