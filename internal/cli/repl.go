package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. App satisfies it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Map(ctx context.Context) error
	Profile(ctx context.Context) error
	SetProfile(ctx context.Context) error
	Status(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, list, show, map, profile, status, exit"
	helpLoggedIn  = "Available commands: add, (l)ist, show [id], delete [id], map, profile, setprofile, status, logout, exit"
)

// runREPL reads commands until "exit", "quit", end of input or ctx is done.
//
// The first token selects the command; "show" and "delete" take an optional
// id argument and prompt for one otherwise. Handler errors are printed and
// the loop goes on. It returns nil on a normal exit and ctx.Err() when
// cancelled.
func runREPL(ctx context.Context, a execIface, statusFn func() string, next func(context.Context) (string, error), out io.Writer) error {
	for {
		fmt.Fprintf(out, "journal%s> ", statusFn())

		line, err := next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
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
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "add":
			cmdErr = a.Add(ctx)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "map":
			cmdErr = a.Map(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "setprofile":
			cmdErr = a.SetProfile(ctx)
		case "status":
			cmdErr = a.Status(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return nil
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		switch {
		case cmdErr == nil:
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(cmdErr, io.EOF):
			fmt.Fprintln(out)
			return nil
		default:
			fmt.Fprintln(out, "Error:", cmdErr)
		}
	}
}
