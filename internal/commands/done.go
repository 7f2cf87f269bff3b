package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/views"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "taskman done <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// The update replaces every field, so start from the stored task.
	form := views.NewTaskForm(env.Service, env.Session, env.Log, nil)
	if !form.LoadByID(ctx, id) {
		return reportFailure(errOut, form.Err(), form.Failure())
	}
	if err := form.SetStatus(string(service.StatusCompleted)); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !form.Submit(ctx) {
		return reportFailure(errOut, form.Err(), form.Failure())
	}

	printOK(env, out)
	return exitcode.Success
}
