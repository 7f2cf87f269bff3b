package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/session"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string     { return "taskman register [common flags] <username> <email>" }
func (c *RegisterCmd) NeedsAuth() bool   { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: username and email required")
		return exitcode.UserError
	}

	p := newPrompter(env.In, errOut)
	password, err := p.Line("Password: ")
	if err != nil {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}
	confirm, err := p.Line("Confirm password: ")
	if err != nil {
		fmt.Fprintln(errOut, "error: password confirmation required")
		return exitcode.UserError
	}

	return register(ctx, env, args[0], args[1], password, confirm, out, errOut)
}

// register runs a registration and reports it.
func register(ctx context.Context, env *Env, username, email, password, confirm string, out, errOut io.Writer) int {
	sess := env.Session
	if !sess.Register(ctx, username, email, password, confirm) {
		fmt.Fprintf(errOut, "error: %s\n", sess.Err())
		if sess.Err() == session.MsgNetwork {
			return exitcode.BackendError
		}
		return exitcode.UserError
	}
	if !env.Config.Quiet {
		fmt.Fprintln(out, "Registration successful. Please log in.")
	}
	return exitcode.Success
}
