package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/client/client"
	"github.com/dmitrijs2005/taskflow/internal/client/config"
	"github.com/dmitrijs2005/taskflow/internal/rpc"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer

	mu        sync.Mutex
	Mode      Mode
	userEmail string
	lastList  []*rpc.Task
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewTaskFlowClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.userEmail != "" {
		s = a.userEmail + " "
	}
	s += string(a.Mode)
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

// Run starts the status watcher and the REPL; it returns when the user
// exits, stdin closes or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to TaskFlow CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// callCtx bounds a single server call by the configured request timeout.
func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// report prints err in user terms and returns it.
func (a *App) report(err error) error {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
		a.setMode(ModeOffline)
	case errors.Is(err, client.ErrUnauthorized) && a.isLoggedIn():
		fmt.Fprintln(a.out, "Session is no longer valid, please login again")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}

// resolveID maps "#n" or "n" (a position in the last listing) to a task id.
// Anything else is taken as an id.
func (a *App) resolveID(arg string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	n, err := strconv.Atoi(trimHash(arg))
	if err != nil || n < 1 || n > len(a.lastList) {
		return arg
	}
	return a.lastList[n-1].ID
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}
