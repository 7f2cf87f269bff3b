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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskman rm [--yes] <id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	confirm := newPrompter(env.In, errOut).Confirm
	if c.yes {
		confirm = func(string) bool { return true }
	}

	list := views.NewTaskList(env.Service, env.Session, env.Log)
	if !list.Delete(ctx, id, confirm) {
		if list.Err() == "" {
			if !env.Config.Quiet {
				fmt.Fprintln(out, "cancelled")
			}
			return exitcode.Success
		}
		return reportFailure(errOut, list.Err(), list.Failure())
	}

	printOK(env, out)
	return exitcode.Success
}
