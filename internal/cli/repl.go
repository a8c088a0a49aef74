package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	ToggleMode(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Totals(ctx context.Context) error
	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
}

// entryCommands are only offered while logged out.
var entryCommands = map[string]bool{
	"signup": true, "register": true, "login": true, "mode": true,
}

// protectedCommands need a session.
var protectedCommands = map[string]bool{
	"add": true, "l": true, "list": true, "delete": true,
	"totals": true, "whoami": true, "logout": true,
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
//	Not logged in:
//	  - help               show available commands
//	  - signup | register  create an account
//	  - login              authenticate
//	  - mode               switch the remembered auth form
//	  - exit | quit        leave the program
//
//	Logged in:
//	  - help               show available commands
//	  - add                record a transaction
//	  - list | l           show the ledger and totals
//	  - delete <id>        remove a transaction
//	  - totals             show income, expense and balance
//	  - whoami             show the current account
//	  - logout             end the session
//	  - exit | quit        leave the program
//
// Protected commands without a session print "please log in". Errors from
// handlers are printed inline and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("budget%s> ", statusFn()))

		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		loggedIn := a.isLoggedIn(ctx)
		switch {
		case protectedCommands[cmd] && !loggedIn:
			printlnFn("please log in")
			continue
		case entryCommands[cmd] && loggedIn:
			printlnFn("already logged in, type 'logout' first")
			continue
		}

		var err error
		switch cmd {
		case "help":
			if loggedIn {
				printlnFn("Available commands: add, (l)ist, delete <id>, totals, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, mode, exit")
			}

		case "signup", "register":
			err = a.Signup(ctx)

		case "login":
			err = a.Login(ctx)

		case "mode":
			err = a.ToggleMode(ctx)

		case "add":
			err = a.Add(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "delete":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			err = a.Delete(ctx, id)

		case "totals":
			err = a.Totals(ctx)

		case "whoami":
			err = a.Whoami(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", describe(err))
		}
		if readErr != nil {
			return
		}
	}
}

// describe turns a command error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrNoSession):
		return "please log in"
	case errors.Is(err, common.ErrValidation):
		return strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
	}
	return err.Error()
}
