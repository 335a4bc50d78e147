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
	Login(ctx context.Context) error
	Local(ctx context.Context) error
	Setup(ctx context.Context) error
	Today(ctx context.Context) error
	Log(ctx context.Context) error
	Meals(ctx context.Context) error
	Delete(ctx context.Context) error
	Weight(ctx context.Context) error
	Goals(ctx context.Context) error
	TDEE(ctx context.Context) error
	Advice(ctx context.Context) error
	Suggest(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the NutriTrack CLI.
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
//	  - help           — show available commands
//	  - login          — connect to the spreadsheet backend
//	  - local          — work offline against the local store
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - setup          — complete or redo onboarding
//	  - today          — show today's dashboard
//	  - log            — log a meal (photo path and/or description)
//	  - meals          — list logged meals
//	  - delete         — delete a meal by id
//	  - weight         — record body weight
//	  - goals          — edit daily macro targets
//	  - tdee           — set maintenance calories
//	  - advice         — AI summary of recent habits
//	  - suggest        — AI meal suggestion for the remaining budget
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("nt> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: setup, (t)oday, log, meals, delete, weight, goals, tdee, advice, suggest, logout, exit")
			} else {
				printlnFn("Available commands: login, local, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "local":
			_ = a.Local(ctx)

		case "setup":
			_ = a.Setup(ctx)

		case "t", "today":
			_ = a.Today(ctx)

		case "log":
			_ = a.Log(ctx)

		case "meals":
			_ = a.Meals(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "weight":
			_ = a.Weight(ctx)

		case "goals":
			_ = a.Goals(ctx)

		case "tdee":
			_ = a.TDEE(ctx)

		case "advice":
			_ = a.Advice(ctx)

		case "suggest":
			_ = a.Suggest(ctx)

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
