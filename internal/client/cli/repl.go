package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context, search string) error
	Mine(ctx context.Context) error
	Create(ctx context.Context) error
	SetSold(ctx context.Context, id string, sold bool) error
	AddImages(ctx context.Context, id string) error
	RemoveImage(ctx context.Context, imageID string) error
	ToggleSoldFilter() error
	WhoAmI(ctx context.Context) error
	Users(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the marketplace CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             — show available commands
//	  - register         — create an account
//	  - login            — authenticate
//	  - exit | quit      — leave the program
//
//	Logged in:
//	  - help             — show available commands
//	  - list             — show all available listings
//	  - search <text>    — show listings matching text
//	  - mine             — show the current user's listings
//	  - create           — create a listing (interactive)
//	  - sold <id>        — mark a listing sold
//	  - unsold <id>      — mark a listing available again
//	  - addimg <id>      — add images to a listing (interactive)
//	  - rmimg <imageId>  — remove a listing image
//	  - includesold      — toggle whether sold listings are shown
//	  - whoami           — show the current profile
//	  - users            — list registered users
//	  - logout           — log out
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("market %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, search <text>, mine, create, sold <id>, unsold <id>, addimg <id>, rmimg <imageId>, includesold, whoami, users, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			_ = a.List(ctx, "")

		case "search":
			_ = a.List(ctx, strings.Join(args, " "))

		case "mine":
			_ = a.Mine(ctx)

		case "create":
			_ = a.Create(ctx)

		case "sold", "unsold":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			_ = a.SetSold(ctx, args[0], cmd == "sold")

		case "addimg":
			if len(args) == 0 {
				printlnFn("Usage: addimg <id>")
				continue
			}
			_ = a.AddImages(ctx, args[0])

		case "rmimg":
			if len(args) == 0 {
				printlnFn("Usage: rmimg <imageId>")
				continue
			}
			_ = a.RemoveImage(ctx, args[0])

		case "includesold":
			_ = a.ToggleSoldFilter()

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "users":
			_ = a.Users(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
