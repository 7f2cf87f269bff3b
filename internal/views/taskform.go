package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskman/internal/output"
	"taskman/internal/service"
	"taskman/internal/session"
)

// Form field names accepted by Set.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDue         = "due"
	FieldStatus      = "status"
)

// ErrUnknownField is returned by Set for a field the form does not have.
var ErrUnknownField = errors.New("unknown field")

// Mode is whether the form creates a new task or updates an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// TaskForm edits a single task draft.
type TaskForm struct {
	svc     service.Service
	sess    *session.Store
	log     *zap.Logger
	onSaved func(service.Task)

	editing    *service.Task
	draft      service.TaskDraft
	submitting bool

	err     string
	failure Failure
}

// NewTaskForm creates a form in create mode. onSaved runs after every
// successful submit with the task the server returned.
func NewTaskForm(svc service.Service, sess *session.Store, log *zap.Logger, onSaved func(service.Task)) *TaskForm {
	if log == nil {
		log = zap.NewNop()
	}
	f := &TaskForm{svc: svc, sess: sess, log: log, onSaved: onSaved}
	f.Load(nil)
	return f
}

// Load resets the form. A nil task selects create mode with status pending;
// otherwise every field is pre-filled from task.
func (f *TaskForm) Load(task *service.Task) {
	f.clearErr()
	if task == nil {
		f.editing = nil
		f.draft = service.TaskDraft{Status: service.StatusPending}
		return
	}
	t := *task
	f.editing = &t
	f.draft = service.DraftFrom(t)
}

// LoadByID fetches a task and loads it for update.
func (f *TaskForm) LoadByID(ctx context.Context, id int64) bool {
	token := f.sess.AccessToken()
	if token == "" {
		f.fail(MsgNotAuthenticated, FailAuth)
		return false
	}

	task, err := f.svc.GetTask(ctx, token, id)
	if err != nil {
		msg, kind := explain(f.sess, err, MsgLoadFailed, false)
		f.log.Debug("load task failed", zap.Int64("id", id), zap.Error(err))
		f.fail(msg, kind)
		return false
	}
	f.Load(&task)
	return true
}

func (f *TaskForm) SetTitle(s string)       { f.draft.Title = s }
func (f *TaskForm) SetDescription(s string) { f.draft.Description = s }

// SetDueDate sets the due date. Empty clears it.
func (f *TaskForm) SetDueDate(s string) error {
	s = strings.TrimSpace(s)
	if s != "" {
		if _, err := time.Parse(service.DateLayout, s); err != nil {
			return fmt.Errorf("invalid due date %q: use YYYY-MM-DD", s)
		}
	}
	f.draft.DueDate = s
	return nil
}

// SetStatus sets the status; it must be one of service.Statuses.
func (f *TaskForm) SetStatus(s string) error {
	st, err := service.ParseStatus(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	f.draft.Status = st
	return nil
}

// Set assigns a field by name.
func (f *TaskForm) Set(field, value string) error {
	switch field {
	case FieldTitle:
		f.SetTitle(value)
	case FieldDescription:
		f.SetDescription(value)
	case FieldDue:
		return f.SetDueDate(value)
	case FieldStatus:
		return f.SetStatus(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// Submit creates or updates the task. On success the onSaved callback runs;
// the form itself never refetches anything.
func (f *TaskForm) Submit(ctx context.Context) bool {
	token := f.sess.AccessToken()
	if token == "" {
		f.sess.Logout()
		f.fail(MsgNotAuthenticated, FailAuth)
		return false
	}
	if strings.TrimSpace(f.draft.Title) == "" {
		f.fail(MsgTitleRequired, FailValidation)
		return false
	}

	f.submitting = true
	f.clearErr()
	defer func() { f.submitting = false }()

	var (
		task     service.Task
		err      error
		fallback string
	)
	if f.editing == nil {
		fallback = MsgCreateFailed
		task, err = f.svc.CreateTask(ctx, token, f.draft)
	} else {
		fallback = MsgUpdateFailed
		task, err = f.svc.UpdateTask(ctx, token, f.editing.ID, f.draft)
	}
	if err != nil {
		msg, kind := explain(f.sess, err, fallback, true)
		f.log.Debug("save task failed", zap.Error(err))
		f.fail(msg, kind)
		return false
	}

	f.log.Debug("task saved", zap.Int64("id", task.ID))
	if f.onSaved != nil {
		f.onSaved(task)
	}
	return true
}

// Cancel discards the draft without any request.
func (f *TaskForm) Cancel() {
	f.Load(nil)
}

// Mode reports whether the form creates or updates.
func (f *TaskForm) Mode() Mode {
	if f.editing == nil {
		return ModeCreate
	}
	return ModeUpdate
}

// TaskID returns the id of the task being updated.
func (f *TaskForm) TaskID() (int64, bool) {
	if f.editing == nil {
		return 0, false
	}
	return f.editing.ID, true
}

func (f *TaskForm) Draft() service.TaskDraft { return f.draft }
func (f *TaskForm) Submitting() bool         { return f.submitting }
func (f *TaskForm) Err() string              { return f.err }
func (f *TaskForm) Failure() Failure         { return f.failure }

// Render writes the form as the user sees it.
func (f *TaskForm) Render(w io.Writer) {
	if id, ok := f.TaskID(); ok {
		fmt.Fprintf(w, "Edit task #%d\n", id)
	} else {
		fmt.Fprintln(w, "New task")
	}
	output.FormatDraft(w, f.draft)
	if f.submitting {
		fmt.Fprintln(w, "Saving...")
	}
	if f.err != "" {
		fmt.Fprintf(w, "Error: %s\n", f.err)
	}
}

func (f *TaskForm) fail(msg string, kind Failure) {
	f.err = msg
	f.failure = kind
}

func (f *TaskForm) clearErr() {
	f.err = ""
	f.failure = FailNone
}
