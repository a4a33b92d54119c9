package cli

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/client/client"
	"github.com/dmitrijs2005/taskflow/internal/client/config"
	"github.com/dmitrijs2005/taskflow/internal/rpc"
)

// fakeClient is an in-memory client.Client.
type fakeClient struct {
	token  string
	users  map[string]string
	tasks  []*rpc.Task
	nextID int

	pingErr error
	closed  bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{users: map[string]string{}}
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) Signup(_ context.Context, email, password string) (*rpc.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, fmt.Errorf("%w: User already exists", client.ErrAlreadyExists)
	}
	f.users[email] = password
	f.token = email
	return &rpc.User{ID: "id-" + email, Email: email}, nil
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*rpc.User, error) {
	if pw, ok := f.users[email]; !ok || pw != password {
		return nil, fmt.Errorf("%w: Invalid credentials", client.ErrUnauthorized)
	}
	f.token = email
	return &rpc.User{ID: "id-" + email, Email: email}, nil
}

func (f *fakeClient) Logout()        { f.token = "" }
func (f *fakeClient) LoggedIn() bool { return f.token != "" }

func (f *fakeClient) Me(context.Context) (*rpc.User, error) {
	if f.token == "" {
		return nil, client.ErrUnauthorized
	}
	return &rpc.User{ID: "id-" + f.token, Email: f.token}, nil
}

func (f *fakeClient) ListTasks(context.Context) ([]*rpc.Task, error) {
	if f.token == "" {
		return nil, fmt.Errorf("%w: Not authenticated", client.ErrUnauthorized)
	}
	return f.tasks, nil
}

func (f *fakeClient) CreateTask(_ context.Context, title string) (*rpc.Task, error) {
	f.nextID++
	t := &rpc.Task{ID: fmt.Sprintf("t%d", f.nextID), Title: title, OwnerID: "id-" + f.token}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeClient) find(id string) *rpc.Task {
	for _, t := range f.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (f *fakeClient) UpdateTask(_ context.Context, id string, title *string, completed *bool) (*rpc.Task, error) {
	t := f.find(id)
	if t == nil {
		return nil, fmt.Errorf("%w: Task not found", client.ErrNotFound)
	}
	if title != nil {
		t.Title = *title
	}
	if completed != nil {
		t.Completed = *completed
	}
	return t, nil
}

func (f *fakeClient) DeleteTask(_ context.Context, id string) error {
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: Task not found", client.ErrNotFound)
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func newTestApp(t *testing.T, fc *fakeClient, input string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, nil)

	var out bytes.Buffer
	cfg := &config.Config{RequestTimeout: time.Second}
	return newApp(cfg, fc, strings.NewReader(input), &out), &out
}

func TestApp_RunSession(t *testing.T) {
	quiet := log.Writer()
	log.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { log.SetOutput(quiet) })

	fc := newFakeClient()
	input := strings.Join([]string{
		"register", "alice@example.com", "pw",
		"add Buy milk",
		"add Walk dog",
		"list",
		"done 1",
		"rename #2 Walk the dog",
		"list",
		"delete t1",
		"delete t1",
		"me",
		"logout",
		"list",
		"login", "alice@example.com", "wrong",
		"exit",
	}, "\n") + "\n"

	app, out := newTestApp(t, fc, input)
	app.Run(context.Background())

	s := out.String()
	for _, frag := range []string{
		"Registered as alice@example.com",
		`Added "Buy milk" (t1)`,
		`"Buy milk" is done`,
		`Renamed to "Walk the dog"`,
		"[x]",
		"Deleted t1",
		"Task not found",
		"alice@example.com (id-alice@example.com)",
		"Logged out",
		"Not authenticated",
		"Invalid credentials",
		"Bye!",
	} {
		if !strings.Contains(s, frag) {
			t.Fatalf("output missing %q:\n%s", frag, s)
		}
	}

	if !fc.closed {
		t.Fatal("client was not closed")
	}
	if len(fc.tasks) != 1 || fc.tasks[0].Title != "Walk the dog" {
		t.Fatalf("unexpected remaining tasks: %+v", fc.tasks)
	}
}

func TestApp_ModeFollowsPing(t *testing.T) {
	quiet := log.Writer()
	log.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { log.SetOutput(quiet) })

	fc := newFakeClient()
	app, _ := newTestApp(t, fc, "")

	app.checkOnline(context.Background())
	if app.Mode != ModeOnline {
		t.Fatalf("expected online, got %q", app.Mode)
	}

	fc.pingErr = client.ErrUnavailable
	app.checkOnline(context.Background())
	if app.Mode != ModeOffline {
		t.Fatalf("expected offline, got %q", app.Mode)
	}
	if got := app.getStatus(); got != "(offline)" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestSetMode_LogsOnlyOnChange(t *testing.T) {
	app := &App{}
	var buf bytes.Buffer

	old := log.Writer()
	defer log.SetOutput(old)
	log.SetOutput(&buf)

	app.setMode(ModeOnline)
	if buf.Len() == 0 {
		t.Fatal("expected log output on mode change")
	}

	buf.Reset()
	app.setMode(ModeOnline)
	if buf.Len() != 0 {
		t.Fatalf("expected no log output when mode doesn't change, got %q", buf.String())
	}
}

func TestResolveID(t *testing.T) {
	app := &App{lastList: []*rpc.Task{{ID: "a"}, {ID: "b"}}}

	tests := map[string]string{
		"1":    "a",
		"#2":   "b",
		"3":    "3",
		"0":    "0",
		"uuid": "uuid",
	}
	for in, want := range tests {
		if got := app.resolveID(in); got != want {
			t.Fatalf("resolveID(%q) = %q, want %q", in, got, want)
		}
	}
}
