package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskman/internal/exitcode"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the identity carried by the access token.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the logged-in user" }
func (c *WhoamiCmd) Usage() string     { return "taskman whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	user, ok := env.Session.User()
	if !ok {
		fmt.Fprintln(errOut, "error: not logged in")
		return exitcode.AuthError
	}

	fmt.Fprintln(out, user.Username)
	if user.Email != "" {
		fmt.Fprintf(out, "email:   %s\n", user.Email)
	}
	if !user.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "expires: %s\n", user.ExpiresAt.Local().Format(time.RFC3339))
	}
	return exitcode.Success
}
