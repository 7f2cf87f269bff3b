package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/views"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	due         string
	status      string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskman add [--description <text>] [--due YYYY-MM-DD] [--status <status>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.status, "status", string(service.StatusPending), "")
	fs.StringVar(&c.status, "s", string(service.StatusPending), "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	var created service.Task
	form := views.NewTaskForm(env.Service, env.Session, env.Log, func(t service.Task) { created = t })
	form.SetTitle(title)
	form.SetDescription(c.description)
	if err := form.SetDueDate(c.due); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	status := c.status
	if status == "" {
		status = string(service.StatusPending)
	}
	if err := form.SetStatus(status); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !form.Submit(ctx) {
		return reportFailure(errOut, form.Err(), form.Failure())
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "ok #%d\n", created.ID)
	}
	return exitcode.Success
}
