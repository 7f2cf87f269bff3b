package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
)

func init() {
	Register(&RefreshCmd{})
}

// RefreshCmd exchanges the stored refresh token for a new access token.
type RefreshCmd struct{}

func (c *RefreshCmd) Name() string      { return "refresh" }
func (c *RefreshCmd) Aliases() []string { return nil }
func (c *RefreshCmd) Synopsis() string  { return "Renew the access token" }
func (c *RefreshCmd) Usage() string     { return "taskman refresh [common flags]" }
func (c *RefreshCmd) NeedsAuth() bool   { return false }

func (c *RefreshCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RefreshCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	sess := env.Session
	if !sess.Refresh(ctx) {
		fmt.Fprintf(errOut, "error: %s\n", sess.Err())
		if sess.RefreshToken() == "" || !sess.Present() {
			return exitcode.AuthError
		}
		return exitcode.BackendError
	}

	printOK(env, out)
	return exitcode.Success
}
