package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context, title string) error
	SetCompleted(ctx context.Context, ref string, completed bool) error
	Rename(ctx context.Context, ref, title string) error
	Delete(ctx context.Context, ref string) error
}

// runREPL reads commands from reader until EOF, "exit"/"quit" or ctx is
// done. Command errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "taskflow %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			return
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: (l)ist, add <title>, done <id>, undone <id>, rename <id> <title>, delete <id>, me, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "me":
			_ = a.Me(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			if rest == "" {
				fmt.Fprintln(w, "Usage: add <title>")
				continue
			}
			_ = a.Add(ctx, rest)

		case "done", "undone":
			if rest == "" {
				fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
				continue
			}
			_ = a.SetCompleted(ctx, rest, cmd == "done")

		case "rename":
			ref, title, _ := strings.Cut(rest, " ")
			title = strings.TrimSpace(title)
			if ref == "" || title == "" {
				fmt.Fprintln(w, "Usage: rename <id> <title>")
				continue
			}
			_ = a.Rename(ctx, ref, title)

		case "delete", "rm":
			if rest == "" {
				fmt.Fprintln(w, "Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, rest)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
