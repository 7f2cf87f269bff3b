package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/output"
	"taskman/internal/service"
	"taskman/internal/views"
)

// Output formats accepted by list --output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskman` (no args) and `taskman list`.
type ListCmd struct {
	page   int
	format string
}

// SetPage sets the page number (for testing).
func (c *ListCmd) SetPage(page int) {
	c.page = page
}

// SetFormat sets the output format (for testing).
func (c *ListCmd) SetFormat(format string) {
	c.format = format
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskman list [--page <n>] [--output text|json|yaml]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 1, "")
	fs.StringVar(&c.format, "output", FormatText, "")
	fs.StringVar(&c.format, "o", FormatText, "")
}

// taskListing is the machine-readable form of one page.
type taskListing struct {
	Page  int            `json:"page" yaml:"page"`
	Count int            `json:"count" yaml:"count"`
	Next  bool           `json:"has_next" yaml:"has_next"`
	Tasks []service.Task `json:"tasks" yaml:"tasks"`
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}
	format := c.format
	if format == "" {
		format = FormatText
	}
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		fmt.Fprintf(errOut, "error: unsupported output format: %s\n", format)
		return exitcode.UserError
	}

	list := views.NewTaskList(env.Service, env.Session, env.Log)
	list.SetPage(c.page)
	if !list.Refresh(ctx) {
		return reportFailure(errOut, list.Err(), list.Failure())
	}

	listing := taskListing{Page: list.Page(), Count: list.Count(), Next: list.HasNext(), Tasks: list.Tasks()}
	var err error
	switch format {
	case FormatJSON:
		err = output.WriteJSON(out, listing)
	case FormatYAML:
		err = output.WriteYAML(out, listing)
	default:
		if len(listing.Tasks) == 0 && env.Config.Quiet {
			return exitcode.Success
		}
		list.Render(out)
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to write output: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
