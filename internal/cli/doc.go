// Package cli provides the interactive budget client and its subcommands.
//
// It wires configuration, storage and services into an App whose REPL
// replaces the two pages of a browser tracker: the entry surface (signup and
// login, shown while nobody is logged in) and the protected ledger surface
// (add, list, delete and totals). Protected commands are refused until a
// session exists.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command table and Register for the subcommands.
package cli
