package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

func (a *App) List(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	tasks, err := a.client.ListTasks(ctx)
	if err != nil {
		return a.report(err)
	}

	a.mu.Lock()
	a.lastList = tasks
	a.mu.Unlock()

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for i, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(tw, "%d\t[%s]\t%s\t%s\t%s\n", i+1, mark, t.Title, t.ID, t.CreatedAt)
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context, title string) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	t, err := a.client.CreateTask(ctx, title)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Added %q (%s)\n", t.Title, t.ID)
	return nil
}

func (a *App) SetCompleted(ctx context.Context, ref string, completed bool) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	t, err := a.client.UpdateTask(ctx, a.resolveID(ref), nil, &completed)
	if err != nil {
		return a.report(err)
	}

	state := "open"
	if t.Completed {
		state = "done"
	}
	fmt.Fprintf(a.out, "%q is %s\n", t.Title, state)
	return nil
}

func (a *App) Rename(ctx context.Context, ref, title string) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	t, err := a.client.UpdateTask(ctx, a.resolveID(ref), &title, nil)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Renamed to %q\n", t.Title)
	return nil
}

func (a *App) Delete(ctx context.Context, ref string) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	id := a.resolveID(ref)
	if err := a.client.DeleteTask(ctx, id); err != nil {
		return a.report(err)
	}

	// positions shift after a delete
	a.mu.Lock()
	a.lastList = nil
	a.mu.Unlock()

	fmt.Fprintf(a.out, "Deleted %s\n", id)
	return nil
}
