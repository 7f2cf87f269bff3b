package commands_test

import (
	"flag"
	"fmt"
	"io"
	"testing"

	"taskman/internal/commands"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

// parseFlags registers cmd's flags and parses args like the dispatcher does.
func parseFlags(t *testing.T, cmd commands.Command, args ...string) []string {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs.Args()
}

func TestEditCommand(t *testing.T) {
	h := newHarness(t, true)
	task := h.svc.AddTask("alice", service.TaskDraft{Title: "old", Description: "desc", DueDate: "2025-01-01"})

	cmd := &commands.EditCmd{}
	args := parseFlags(t, cmd, "--title", "new", "--due", "", "--status", "deferred", fmt.Sprint(task.ID))

	stdout, stderr, code := h.run(t, cmd, args...)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	got := h.svc.Tasks("alice")[0]
	if got.Title != "new" || got.Status != service.StatusDeferred {
		t.Errorf("fields not updated: %+v", got)
	}
	if got.DueDate != nil {
		t.Errorf("expected due date cleared, got %q", *got.DueDate)
	}
	if got.Description == nil || *got.Description != "desc" {
		t.Error("description should be kept")
	}
}

func TestEditCommand_NothingToChange(t *testing.T) {
	h := newHarness(t, true)
	task := h.addTask("x")

	cmd := &commands.EditCmd{}
	args := parseFlags(t, cmd, fmt.Sprint(task.ID))
	_, stderr, code := h.run(t, cmd, args...)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: nothing to change\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if h.svc.Calls("GetTask") != 0 {
		t.Error("no request expected")
	}
}

func TestEditCommand_InvalidStatus(t *testing.T) {
	h := newHarness(t, true)
	task := h.addTask("x")

	cmd := &commands.EditCmd{}
	args := parseFlags(t, cmd, "--status", "done", fmt.Sprint(task.ID))
	_, stderr, code := h.run(t, cmd, args...)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid status: done\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if h.svc.Calls("UpdateTask") != 0 {
		t.Error("no update expected")
	}
}

func TestRmCommand_YesFlag(t *testing.T) {
	h := newHarness(t, true)
	task := h.addTask("x")

	cmd := &commands.RmCmd{}
	args := parseFlags(t, cmd, "--yes", fmt.Sprint(task.ID))
	_, stderr, code := h.run(t, cmd, args...)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stderr != "" {
		t.Errorf("expected no prompt, got %q", stderr)
	}
}

func TestAddCommand_FlagsDescriptionDueStatus(t *testing.T) {
	h := newHarness(t, true)

	cmd := &commands.AddCmd{}
	args := parseFlags(t, cmd, "-d", "2%", "--due", "2025-06-01", "--status", "in_progress", "Buy", "milk")
	_, stderr, code := h.run(t, cmd, args...)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}

	got := h.svc.Tasks("alice")[0]
	if *got.Description != "2%" || *got.DueDate != "2025-06-01" || got.Status != service.StatusInProgress {
		t.Errorf("unexpected task %+v", got)
	}
}

func TestAddCommand_BadDue(t *testing.T) {
	h := newHarness(t, true)

	cmd := &commands.AddCmd{}
	args := parseFlags(t, cmd, "--due", "tomorrow", "x")
	_, stderr, code := h.run(t, cmd, args...)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid due date \"tomorrow\": use YYYY-MM-DD\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestParseTaskID(t *testing.T) {
	cases := []struct {
		args    []string
		want    int64
		wantErr bool
	}{
		{[]string{"7"}, 7, false},
		{[]string{"#12"}, 12, false},
		{[]string{" 3 "}, 3, false},
		{nil, 0, true},
		{[]string{"x"}, 0, true},
		{[]string{"-1"}, 0, true},
		{[]string{"1", "2"}, 0, true},
	}
	for _, tc := range cases {
		got, err := commands.ParseTaskID(tc.args)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseTaskID(%v) error = %v, wantErr %v", tc.args, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTaskID(%v) = %d, want %d", tc.args, got, tc.want)
		}
	}
}
