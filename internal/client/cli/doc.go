// Package cli provides the interactive BuffsMarket command-line client.
//
// It wires configuration, the session store, the GraphQL transport and the
// listing repository into an interactive REPL. Typical flow: restore the
// persisted session, start a background watcher that picks up logins and
// logouts performed by other instances, and execute user commands.
//
// Key features:
//   - Login / Register / Logout against the marketplace backend
//   - Browse and search listings, optionally including sold ones
//   - Create listings with image uploads, mark them sold or available
//   - Add and remove listing images
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
