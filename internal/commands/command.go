// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"go.uber.org/zap"

	"taskman/internal/config"
	"taskman/internal/service"
	"taskman/internal/session"
)

// Env carries everything a command may need.
type Env struct {
	// Config is always provided (config dir, paths, flags).
	Config *config.Config

	// Service talks to the task API.
	Service service.Service

	// Session is the loaded session store.
	Session *session.Store

	// Log is never nil.
	Log *zap.Logger

	// In is read for prompts.
	In io.Reader
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a logged-in session.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
