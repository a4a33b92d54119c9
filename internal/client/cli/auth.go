package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskflow/internal/rpc"
)

func (a *App) readCredentials() (string, string, error) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", "", err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

func (a *App) Register(ctx context.Context) error {
	return a.authenticate(ctx, "Registered", a.client.Signup)
}

func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, "Logged in", a.client.Login)
}

func (a *App) authenticate(ctx context.Context, verb string, call func(context.Context, string, string) (*rpc.User, error)) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	user, err := call(ctx, email, password)
	if err != nil {
		return a.report(err)
	}

	a.mu.Lock()
	a.userEmail = user.Email
	a.lastList = nil
	a.mu.Unlock()

	fmt.Fprintf(a.out, "%s as %s\n", verb, user.Email)
	return nil
}

func (a *App) Logout(context.Context) error {
	a.client.Logout()

	a.mu.Lock()
	a.userEmail = ""
	a.lastList = nil
	a.mu.Unlock()

	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	user, err := a.client.Me(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "%s (%s)\n", user.Email, user.ID)
	return nil
}
