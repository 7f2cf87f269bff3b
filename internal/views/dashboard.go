package views

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"taskman/internal/service"
	"taskman/internal/session"
)

// Dashboard composes the task list and the task form. It is either browsing
// the list or editing one task.
type Dashboard struct {
	sess *session.Store
	log  *zap.Logger

	List *TaskList
	Form *TaskForm

	editing bool
}

// NewDashboard creates a browsing dashboard.
func NewDashboard(svc service.Service, sess *session.Store, log *zap.Logger) *Dashboard {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dashboard{sess: sess, log: log}
	d.List = NewTaskList(svc, sess, log)
	d.Form = NewTaskForm(svc, sess, log, d.saved)
	return d
}

// Open loads the current page of the list.
func (d *Dashboard) Open(ctx context.Context) bool {
	return d.List.Refresh(ctx)
}

// Editing reports whether the form is open.
func (d *Dashboard) Editing() bool { return d.editing }

// StartCreate opens an empty form.
func (d *Dashboard) StartCreate() {
	d.Form.Load(nil)
	d.editing = true
}

// StartEdit opens the form on a task from the displayed list.
func (d *Dashboard) StartEdit(id int64) bool {
	task, ok := d.List.Find(id)
	if !ok {
		return false
	}
	d.Form.Load(&task)
	d.editing = true
	return true
}

// Cancel closes the form without any request.
func (d *Dashboard) Cancel() {
	d.Form.Cancel()
	d.editing = false
}

// Save submits the form. After a successful save the form is closed and the
// list is refreshed.
func (d *Dashboard) Save(ctx context.Context) bool {
	if !d.editing {
		return false
	}
	if !d.Form.Submit(ctx) {
		return false
	}
	d.List.Refresh(ctx)
	return true
}

// Delete deletes a task from the list.
func (d *Dashboard) Delete(ctx context.Context, id int64, confirm Confirm) bool {
	return d.List.Delete(ctx, id, confirm)
}

func (d *Dashboard) saved(task service.Task) {
	d.log.Debug("closing form", zap.Int64("id", task.ID))
	d.editing = false
	d.Form.Load(nil)
}

// Render writes the greeting followed by the form or the list.
func (d *Dashboard) Render(w io.Writer) {
	if user, ok := d.sess.User(); ok {
		fmt.Fprintf(w, "Welcome, %s\n\n", user.Username)
	}
	if d.editing {
		d.Form.Render(w)
		return
	}
	d.List.Render(w)
}
