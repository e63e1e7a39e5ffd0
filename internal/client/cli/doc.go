// Package cli provides the interactive ProfileKeeper command-line client.
//
// It drives an AccountService through a small REPL. Typical flow: restore a
// remembered login if there is one, then execute user commands until exit.
//
// Key features:
//   - Register / Login (optionally remembered) / Logout
//   - Show and edit the signed-in profile
//   - Set or remove an avatar image
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See App and runREPL for details.
package cli
