package commands

import (
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/views"
)

// failureCode maps a view failure to an exit code.
func failureCode(kind views.Failure) int {
	switch kind {
	case views.FailNone:
		return exitcode.Success
	case views.FailValidation, views.FailNotFound:
		return exitcode.UserError
	case views.FailAuth:
		return exitcode.AuthError
	default:
		return exitcode.BackendError
	}
}

// reportFailure prints a view error and returns its exit code.
func reportFailure(errOut io.Writer, msg string, kind views.Failure) int {
	fmt.Fprintf(errOut, "error: %s\n", msg)
	return failureCode(kind)
}

// printOK prints "ok" unless quiet.
func printOK(env *Env, out io.Writer) {
	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
}
