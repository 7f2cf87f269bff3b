package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskman help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintf(out, "\nCommands:\n%s", DefaultRegistry.Summary())
	return exitcode.Success
}

const helpText = `Usage:
  taskman                                            List tasks (first page)
  taskman list [common flags] [--page <n>] [--output text|json|yaml]
  taskman add [common flags] [--description <text>] [--due YYYY-MM-DD] [--status <status>] <title...>
  taskman create [common flags] ...                  Same as add
  taskman edit [common flags] [--title <text>] [--description <text>] [--due YYYY-MM-DD] [--status <status>] <id>
  taskman done [common flags] <id>
  taskman show [common flags] <id>
  taskman rm [common flags] [--yes] <id>
  taskman login [common flags] <username> [password]
  taskman register [common flags] <username> <email>
  taskman logout [common flags]
  taskman whoami [common flags]
  taskman refresh [common flags]
  taskman shell [common flags]
  taskman help
  taskman version

Statuses:
  pending, in_progress, completed, deferred, cancelled

Common flags:
  --config <dir>   Override config directory
  --api-url <url>  Override the task API base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
