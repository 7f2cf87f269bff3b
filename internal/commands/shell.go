package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskman/internal/exitcode"
	"taskman/internal/views"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd runs an interactive session over the login, register and
// dashboard pages.
type ShellCmd struct{}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return nil }
func (c *ShellCmd) Synopsis() string  { return "Interactive mode" }
func (c *ShellCmd) Usage() string     { return "taskman shell [common flags]" }
func (c *ShellCmd) NeedsAuth() bool   { return false }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if err := env.Config.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.UserError
	}

	r := &repl{
		env:   env,
		p:     newPrompter(env.In, out),
		shell: views.NewShell(env.Session),
		out:   out,
	}
	r.resetDashboard()
	return r.run(ctx)
}

type repl struct {
	env    *Env
	p      *prompter
	shell  *views.Shell
	dash   *views.Dashboard
	out    io.Writer
	opened bool
}

func (r *repl) run(ctx context.Context) int {
	for {
		if ctx.Err() != nil {
			return exitcode.Success
		}

		page := r.shell.Sync()
		switch {
		case page != views.PageDashboard:
			if r.opened {
				r.resetDashboard()
			}
		case !r.opened:
			r.opened = true
			r.dash.List.SetPage(1)
			r.dash.Open(ctx)
			r.dash.Render(r.out)
		}

		line, err := r.p.Line(r.prompt(page))
		if err != nil {
			fmt.Fprintln(r.out)
			return exitcode.Success
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := fields[0]
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

		switch cmd {
		case "quit", "exit":
			return exitcode.Success
		case "help", "?":
			fmt.Fprint(r.out, r.help(page))
			continue
		}

		switch page {
		case views.PageLogin:
			r.loginPage(ctx, cmd, fields[1:])
		case views.PageRegister:
			r.registerPage(ctx, cmd, fields[1:])
		case views.PageDashboard:
			if r.dash.Editing() {
				r.editPage(ctx, cmd, rest)
			} else {
				r.browsePage(ctx, cmd, fields[1:])
			}
		}
	}
}

// resetDashboard discards the list and any open form so the next login
// starts browsing from page 1.
func (r *repl) resetDashboard() {
	r.dash = views.NewDashboard(r.env.Service, r.env.Session, r.env.Log)
	r.opened = false
}

func (r *repl) prompt(page views.Page) string {
	if page == views.PageDashboard {
		if r.dash.Editing() {
			return "edit> "
		}
		return "tasks> "
	}
	return page.String() + "> "
}

func (r *repl) unknown(cmd string) {
	fmt.Fprintf(r.out, "unknown command: %s (try: help)\n", cmd)
}

func (r *repl) loginPage(ctx context.Context, cmd string, args []string) {
	sess := r.env.Session
	switch cmd {
	case "login":
		if len(args) == 0 || len(args) > 2 {
			fmt.Fprintln(r.out, "usage: login <username> [password]")
			return
		}
		password := ""
		if len(args) == 2 {
			password = args[1]
		} else {
			pw, err := r.p.Line("Password: ")
			if err != nil {
				return
			}
			password = pw
		}
		if !sess.Login(ctx, args[0], password) {
			fmt.Fprintf(r.out, "Error: %s\n", sess.Err())
		}
	case "register":
		r.shell.ShowRegister()
	default:
		r.unknown(cmd)
	}
}

func (r *repl) registerPage(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "register":
		if len(args) != 2 {
			fmt.Fprintln(r.out, "usage: register <username> <email>")
			return
		}
		password, err := r.p.Line("Password: ")
		if err != nil {
			return
		}
		confirm, err := r.p.Line("Confirm password: ")
		if err != nil {
			return
		}
		if register(ctx, r.env, args[0], args[1], password, confirm, r.out, r.out) == exitcode.Success {
			r.shell.ShowLogin()
		}
	case "back", "login":
		r.shell.ShowLogin()
	default:
		r.unknown(cmd)
	}
}

func (r *repl) browsePage(ctx context.Context, cmd string, args []string) {
	d := r.dash
	switch cmd {
	case "list", "ls":
		d.List.Refresh(ctx)
		d.Render(r.out)
	case "page":
		n, err := strconv.Atoi(strings.Join(args, ""))
		if err != nil || n < 1 {
			fmt.Fprintln(r.out, "usage: page <n>")
			return
		}
		r.goTo(ctx, n)
	case "next":
		if !d.List.HasNext() {
			fmt.Fprintln(r.out, "no next page")
			return
		}
		r.goTo(ctx, d.List.Page()+1)
	case "prev":
		if !d.List.HasPrev() {
			fmt.Fprintln(r.out, "no previous page")
			return
		}
		r.goTo(ctx, d.List.Page()-1)
	case "new", "add":
		d.StartCreate()
		d.Render(r.out)
	case "edit":
		id, err := ParseTaskID(args)
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return
		}
		if !d.StartEdit(id) {
			fmt.Fprintf(r.out, "Error: task #%d is not on this page\n", id)
			return
		}
		d.Render(r.out)
	case "rm", "delete":
		id, err := ParseTaskID(args)
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return
		}
		if d.Delete(ctx, id, r.p.Confirm) || d.List.Err() != "" {
			d.Render(r.out)
		}
	case "whoami":
		if user, ok := r.env.Session.User(); ok {
			fmt.Fprintf(r.out, "%s <%s>\n", user.Username, user.Email)
		}
	case "logout":
		r.env.Session.Logout()
	default:
		r.unknown(cmd)
	}
}

func (r *repl) goTo(ctx context.Context, page int) {
	r.dash.List.SetPage(page)
	r.dash.List.Refresh(ctx)
	r.dash.Render(r.out)
}

func (r *repl) editPage(ctx context.Context, cmd, rest string) {
	d := r.dash
	switch cmd {
	case views.FieldTitle, views.FieldDescription, views.FieldDue, views.FieldStatus:
		if err := d.Form.Set(cmd, rest); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
	case "show":
		d.Render(r.out)
	case "save":
		if d.Save(ctx) {
			d.Render(r.out)
			return
		}
		fmt.Fprintf(r.out, "Error: %s\n", d.Form.Err())
	case "cancel":
		d.Cancel()
		d.Render(r.out)
	default:
		r.unknown(cmd)
	}
}

func (r *repl) help(page views.Page) string {
	switch {
	case page == views.PageLogin:
		return "login <username> [password]   log in\nregister                       create an account\nquit\n"
	case page == views.PageRegister:
		return "register <username> <email>    create an account\nback                           return to login\nquit\n"
	case r.dash.Editing():
		return "title|description|due|status <value>   set a field\nshow                                    show the draft\nsave                                    save the task\ncancel                                  discard changes\nquit\n"
	default:
		return "list                 reload the current page\npage <n>, next, prev  change page\nnew                  create a task\nedit <id>            edit a task\nrm <id>              delete a task\nwhoami\nlogout\nquit\n"
	}
}
