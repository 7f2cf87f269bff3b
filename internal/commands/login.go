package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"taskman/internal/exitcode"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in to the task API" }
func (c *LoginCmd) Usage() string     { return "taskman login [common flags] <username> [password]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	sess := env.Session
	if user, ok := sess.User(); ok {
		if !env.Config.Quiet {
			fmt.Fprintf(out, "already logged in as %s\n", user.Username)
		}
		return exitcode.Success
	}
	if len(args) > 2 {
		fmt.Fprintln(errOut, "error: too many arguments")
		return exitcode.UserError
	}

	p := newPrompter(env.In, errOut)
	var username, password string
	if len(args) > 0 {
		username = args[0]
	} else {
		u, err := p.Line("Username: ")
		if err != nil {
			fmt.Fprintln(errOut, "error: username required")
			return exitcode.UserError
		}
		username = strings.TrimSpace(u)
	}
	if username == "" {
		fmt.Fprintln(errOut, "error: username required")
		return exitcode.UserError
	}
	if len(args) > 1 {
		password = args[1]
	} else {
		pw, err := p.Line("Password: ")
		if err != nil {
			fmt.Fprintln(errOut, "error: password required")
			return exitcode.UserError
		}
		password = pw
	}

	if err := env.Config.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	if !sess.Login(ctx, username, password) {
		fmt.Fprintf(errOut, "error: %s\n", sess.Err())
		return exitcode.AuthError
	}

	env.Log.Debug("login succeeded", zap.String("username", username))
	printOK(env, out)
	return exitcode.Success
}
