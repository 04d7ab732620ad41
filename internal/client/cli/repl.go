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

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	Home(ctx context.Context) error
	Archives(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Open(ctx context.Context, ref string) error
	Archive(ctx context.Context, ref string) error
	Unarchive(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
	Toggle(ctx context.Context, ref string) error

	Add(ctx context.Context) error
	Save(ctx context.Context) error
	Cancel(ctx context.Context) error

	Notifications(ctx context.Context) error
	Dismiss(ctx context.Context, ref string) error
	Lang(ctx context.Context, arg string) error
	Theme(ctx context.Context, arg string) error
	Settings(ctx context.Context) error
	Go(ctx context.Context, path string) error

	// Gate re-applies the session gate to the current route after every
	// command.
	Gate(ctx context.Context)
}

const (
	helpSignedOut = "Available commands: register, login, lang, theme, settings, notifications, exit"
	helpSignedIn  = "Available commands: home (ls), archives, search <text>, open <n|id>, " +
		"archive [n|id], unarchive [n|id], toggle [n|id], delete [n|id], add, save, cancel, go <path>, " +
		"whoami, notifications, dismiss <n>, lang [en|id], theme [dark|light], settings, logout, exit"
)

// runREPL starts a read–eval–print loop for the notes CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'; the rest of the line is the argument. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures through notifications or direct output.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("notes %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.Whoami(ctx)

		case "home", "ls":
			_ = a.Home(ctx)
		case "archives":
			_ = a.Archives(ctx)
		case "search":
			_ = a.Search(ctx, arg)
		case "open":
			_ = a.Open(ctx, arg)
		case "archive":
			_ = a.Archive(ctx, arg)
		case "unarchive":
			_ = a.Unarchive(ctx, arg)
		case "delete", "rm":
			_ = a.Delete(ctx, arg)
		case "toggle":
			_ = a.Toggle(ctx, arg)

		case "add":
			_ = a.Add(ctx)
		case "save":
			_ = a.Save(ctx)
		case "cancel":
			_ = a.Cancel(ctx)

		case "notifications":
			_ = a.Notifications(ctx)
		case "dismiss":
			_ = a.Dismiss(ctx, arg)
		case "lang":
			_ = a.Lang(ctx, arg)
		case "theme":
			_ = a.Theme(ctx, arg)
		case "settings":
			_ = a.Settings(ctx)
		case "go":
			_ = a.Go(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.Gate(ctx)

		if err != nil {
			return
		}
	}
}
