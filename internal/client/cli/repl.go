package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
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
	Logout(ctx context.Context) error
	Recover(ctx context.Context) error
	Open(ctx context.Context, route string) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Documents(ctx context.Context, kind string) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the emprende CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
//	Always:
//	  - help               : show available commands
//	  - open <route>       : navigate, logging in first if the route is protected
//	  - status             : show route, session and token expiry
//	  - exit | quit        : leave the program
//
//	Not logged in:
//	  - login              : authenticate
//	  - forgot             : recover a forgotten password
//	  - register           : create an account
//
//	Logged in:
//	  - profile            : show the profile
//	  - editprofile        : change phone, email, address or username
//	  - documents <kind>   : download identity, certificate or signed PDF
//	  - logout             : log out
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("emp %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, editprofile, documents <identity|certificate|signed>, open <route>, status, logout, exit")
			} else {
				printlnFn("Available commands: login, forgot, register, open <route>, status, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "forgot":
			cmdErr = a.Recover(ctx)

		case "register":
			cmdErr = a.Register(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <route>")
				continue
			}
			cmdErr = a.Open(ctx, args[0])

		case "profile":
			cmdErr = a.Profile(ctx)

		case "editprofile":
			cmdErr = a.EditProfile(ctx)

		case "documents":
			if len(args) == 0 {
				printlnFn("Usage: documents <identity|certificate|signed>")
				continue
			}
			cmdErr = a.Documents(ctx, args[0])

		case "status":
			cmdErr = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
