package commands_test

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"taskman/internal/commands"
	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/session"
)

// TestLoginCommand verifies a login stores the session on disk.
func TestLoginCommand(t *testing.T) {
	h := newHarness(t, false)

	stdout, stderr, code := h.run(t, &commands.LoginCmd{}, "alice", "password1")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	info, err := os.Stat(h.cfg.SessionPath())
	if err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %o", info.Mode().Perm())
	}

	reloaded := session.New(h.svc, session.NewFileStorage(h.cfg.SessionPath()), nil)
	if user, ok := reloaded.User(); !ok || user.Username != "alice" {
		t.Errorf("expected stored session for alice, got %+v %v", user, ok)
	}
}

func TestLoginCommand_PromptsForPassword(t *testing.T) {
	h := newHarness(t, false)
	h.input = "password1\n"

	_, stderr, code := h.run(t, &commands.LoginCmd{}, "alice")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stderr, "Password: ") {
		t.Errorf("expected password prompt, got %q", stderr)
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	h := newHarness(t, false)

	stdout, stderr, code := h.run(t, &commands.LoginCmd{}, "alice", "nope")
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: No active account found with the given credentials\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if _, err := os.Stat(h.cfg.SessionPath()); !os.IsNotExist(err) {
		t.Error("no session file expected after failed login")
	}
}

func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	h := newHarness(t, true)

	stdout, _, code := h.run(t, &commands.LoginCmd{}, "alice", "password1")
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "already logged in as alice\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if h.svc.Calls("ObtainToken") != 1 {
		t.Errorf("expected no second token request, got %d calls", h.svc.Calls("ObtainToken"))
	}
}

func TestRegisterCommand(t *testing.T) {
	h := newHarness(t, false)
	h.input = "s3cret-pass\ns3cret-pass\n"

	stdout, stderr, code := h.run(t, &commands.RegisterCmd{}, "bob", "bob@example.com")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "Registration successful. Please log in.\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if h.sess.Present() {
		t.Error("registration must not log in")
	}

	_, _, code = h.run(t, &commands.LoginCmd{}, "bob", "s3cret-pass")
	if code != exitcode.Success {
		t.Errorf("expected to log in as the new user, got %d", code)
	}
}

func TestRegisterCommand_Mismatch(t *testing.T) {
	h := newHarness(t, false)
	h.input = "s3cret-pass\nother-pass\n"

	_, stderr, code := h.run(t, &commands.RegisterCmd{}, "bob", "bob@example.com")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasSuffix(stderr, "error: Password fields didn't match.\n") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRegisterCommand_Network(t *testing.T) {
	h := newHarness(t, false)
	h.input = "a\na\n"
	h.svc.RegisterErr = fmt.Errorf("%w: refused", service.ErrTransport)

	_, _, code := h.run(t, &commands.RegisterCmd{}, "bob", "bob@example.com")
	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
}

func TestRegisterCommand_MissingArgs(t *testing.T) {
	h := newHarness(t, false)

	_, stderr, code := h.run(t, &commands.RegisterCmd{}, "bob")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: username and email required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestLogoutCommand(t *testing.T) {
	h := newHarness(t, true)

	stdout, _, code := h.run(t, &commands.LogoutCmd{})
	if code != exitcode.Success || stdout != "ok\n" {
		t.Errorf("expected ok, got %d %q", code, stdout)
	}
	if _, err := os.Stat(h.cfg.SessionPath()); !os.IsNotExist(err) {
		t.Error("session file should be removed")
	}

	stdout, _, code = h.run(t, &commands.LogoutCmd{})
	if code != exitcode.Success || stdout != "not logged in\n" {
		t.Errorf("expected not logged in, got %d %q", code, stdout)
	}
}

func TestWhoamiCommand(t *testing.T) {
	h := newHarness(t, true)

	stdout, _, code := h.run(t, &commands.WhoamiCmd{})
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "alice\nemail:   alice@example.com\nexpires: ") {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestRefreshCommand(t *testing.T) {
	h := newHarness(t, true)
	before := h.sess.AccessToken()
	h.svc.ExpireTokens()

	_, stderr, code := h.run(t, &commands.RefreshCmd{})
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if h.sess.AccessToken() == before {
		t.Error("expected a new access token")
	}

	cmd := &commands.ListCmd{}
	cmd.SetPage(1)
	if _, _, code := h.run(t, cmd); code != exitcode.Success {
		t.Errorf("expected list to work after refresh, got %d", code)
	}
}

func TestRefreshCommand_Rejected(t *testing.T) {
	h := newHarness(t, true)
	h.svc.RevokeRefreshTokens()

	_, stderr, code := h.run(t, &commands.RefreshCmd{})
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: Session expired. Please log in again.\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRefreshCommand_NotLoggedIn(t *testing.T) {
	h := newHarness(t, false)

	_, stderr, code := h.run(t, &commands.RefreshCmd{})
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: No refresh token. Please log in.\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
