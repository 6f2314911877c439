package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Feed(ctx context.Context) error
	Refresh(ctx context.Context) error
	OpenPost(ctx context.Context, arg string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	ClosePost(ctx context.Context) error
	Share(ctx context.Context) error
	DeletePost(ctx context.Context) error
	Goto(ctx context.Context, rawURL string) error
	PressKey(ctx context.Context, name string) error
	Comments(ctx context.Context) error
	Comment(ctx context.Context) error
	Reply(ctx context.Context, arg string) error
	DeleteComment(ctx context.Context, arg string) error
	Queue(ctx context.Context) error
	RateCurrent(ctx context.Context, arg string) error
	Leaderboard(ctx context.Context) error
	Mine(ctx context.Context) error
	UploadResume(ctx context.Context, args []string) error
	Dismiss(ctx context.Context) error
}

const helpLoggedIn = `Available commands:
  feed, refresh, open N, next, prev, close, share, delete, goto URL
  esc, left, right
  comments, comment, reply N, delcomment N
  queue, rate N, leaderboard, mine, upload PATH [caption]
  whoami, logout, dismiss, exit`

const helpLoggedOut = `Available commands:
  login, register
  feed, open N, next, prev, close, share, goto URL
  comments, queue, leaderboard, dismiss, exit`

// runREPL starts a read-eval-print loop for the ResumeRoast CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers notify
// the user themselves. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintf(out, "rr %s> ", statusFn())
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

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "f", "feed":
			_ = a.Feed(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "open":
			if arg == "" {
				fmt.Fprintln(out, "Usage: open <number>")
				continue
			}
			_ = a.OpenPost(ctx, arg)

		case "n", "next":
			_ = a.Next(ctx)

		case "p", "prev":
			_ = a.Prev(ctx)

		case "close":
			_ = a.ClosePost(ctx)

		case "share":
			_ = a.Share(ctx)

		case "delete":
			_ = a.DeletePost(ctx)

		case "esc", "left", "right":
			_ = a.PressKey(ctx, cmd)

		case "goto":
			if arg == "" {
				fmt.Fprintln(out, "Usage: goto <url>")
				continue
			}
			_ = a.Goto(ctx, arg)

		case "comments":
			_ = a.Comments(ctx)

		case "comment":
			_ = a.Comment(ctx)

		case "reply":
			if arg == "" {
				fmt.Fprintln(out, "Usage: reply <number>")
				continue
			}
			_ = a.Reply(ctx, arg)

		case "delcomment":
			if arg == "" {
				fmt.Fprintln(out, "Usage: delcomment <number>")
				continue
			}
			_ = a.DeleteComment(ctx, arg)

		case "q", "queue":
			_ = a.Queue(ctx)

		case "rate":
			if arg == "" {
				fmt.Fprintln(out, "Usage: rate <score 1-5>")
				continue
			}
			_ = a.RateCurrent(ctx, arg)

		case "leaderboard":
			_ = a.Leaderboard(ctx)

		case "mine":
			_ = a.Mine(ctx)

		case "upload":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: upload <path> [caption]")
				continue
			}
			_ = a.UploadResume(ctx, args)

		case "dismiss":
			_ = a.Dismiss(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
