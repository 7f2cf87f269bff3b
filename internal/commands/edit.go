package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/views"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the given fields change;
// an empty --due or --description clears that field.
type EditCmd struct {
	title       optString
	description optString
	due         optString
	status      optString
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "taskman edit [--title <text>] [--description <text>] [--due YYYY-MM-DD] [--status <status>] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.description, c.due, c.status = optString{}, optString{}, optString{}, optString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
	fs.Var(&c.due, "due", "")
	fs.Var(&c.status, "status", "")
	fs.Var(&c.status, "s", "")
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	changes := []struct {
		field string
		opt   optString
	}{
		{views.FieldTitle, c.title},
		{views.FieldDescription, c.description},
		{views.FieldDue, c.due},
		{views.FieldStatus, c.status},
	}
	changed := false
	for _, ch := range changes {
		changed = changed || ch.opt.set
	}
	if !changed {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	form := views.NewTaskForm(env.Service, env.Session, env.Log, nil)
	if !form.LoadByID(ctx, id) {
		return reportFailure(errOut, form.Err(), form.Failure())
	}
	for _, ch := range changes {
		if !ch.opt.set {
			continue
		}
		if err := form.Set(ch.field, ch.opt.value); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	if !form.Submit(ctx) {
		return reportFailure(errOut, form.Err(), form.Failure())
	}
	printOK(env, out)
	return exitcode.Success
}
