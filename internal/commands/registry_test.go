package commands_test

import (
	"context"
	"flag"
	"io"
	"strings"
	"testing"

	"taskman/internal/commands"
)

type stubCmd struct {
	name    string
	aliases []string
}

func (c *stubCmd) Name() string                   { return c.name }
func (c *stubCmd) Aliases() []string              { return c.aliases }
func (c *stubCmd) Synopsis() string               { return "stub " + c.name }
func (c *stubCmd) Usage() string                  { return c.name }
func (c *stubCmd) NeedsAuth() bool                { return false }
func (c *stubCmd) RegisterFlags(fs *flag.FlagSet) {}
func (c *stubCmd) Run(ctx context.Context, env *commands.Env, args []string, out, errOut io.Writer) int {
	return 0
}

func TestRegistry(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&stubCmd{name: "rm", aliases: []string{"delete"}}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&stubCmd{name: "add"}); err != nil {
		t.Fatal(err)
	}

	if err := r.Register(&stubCmd{name: "rm"}); err == nil {
		t.Error("expected duplicate name error")
	}
	if err := r.Register(&stubCmd{name: "remove", aliases: []string{"delete"}}); err == nil {
		t.Error("expected duplicate alias error")
	}

	cmd, ok := r.Find(" DELETE ")
	if !ok || cmd.Name() != "rm" {
		t.Errorf("expected alias lookup to find rm, got %v %v", cmd, ok)
	}

	all := r.All()
	if len(all) != 2 || all[0].Name() != "add" || all[1].Name() != "rm" {
		t.Errorf("unexpected All(): %v", all)
	}

	summary := r.Summary()
	if !strings.Contains(summary, "rm (delete)") || !strings.Contains(summary, "stub add") {
		t.Errorf("unexpected summary %q", summary)
	}
}

func TestDefaultRegistry(t *testing.T) {
	for _, name := range []string{
		"list", "ls", "add", "create", "edit", "done", "show", "rm",
		"login", "register", "logout", "whoami", "refresh", "shell", "help", "version",
	} {
		if _, ok := commands.DefaultRegistry.Find(name); !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}
