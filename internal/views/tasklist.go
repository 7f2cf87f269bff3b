package views

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"taskman/internal/output"
	"taskman/internal/service"
	"taskman/internal/session"
)

// TaskList shows one page of the user's tasks.
type TaskList struct {
	svc  service.Service
	sess *session.Store
	log  *zap.Logger

	page     int
	tasks    []service.Task
	count    int
	hasNext  bool
	hasPrev  bool
	loading  bool
	deleting map[int64]bool

	err     string
	failure Failure
}

// NewTaskList creates an empty list on page 1.
func NewTaskList(svc service.Service, sess *session.Store, log *zap.Logger) *TaskList {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskList{
		svc:      svc,
		sess:     sess,
		log:      log,
		page:     1,
		deleting: make(map[int64]bool),
	}
}

// SetPage selects the page fetched by the next Refresh.
func (l *TaskList) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	l.page = page
}

// Refresh fetches the current page.
// A response that is not a paginated task list clears the list.
func (l *TaskList) Refresh(ctx context.Context) bool {
	token := l.sess.AccessToken()
	if token == "" {
		l.fail(MsgNotAuthenticated, FailAuth)
		return false
	}

	l.loading = true
	l.clearErr()
	defer func() { l.loading = false }()

	page, err := l.svc.ListTasks(ctx, token, l.page)
	if err != nil {
		msg, kind := explain(l.sess, err, MsgFetchFailed, false)
		l.log.Debug("fetch tasks failed", zap.Int("page", l.page), zap.Error(err))
		if kind == FailContract {
			l.reset()
		}
		l.fail(msg, kind)
		return false
	}

	l.tasks = page.Results
	l.count = page.Count
	l.hasNext = page.Next != nil
	l.hasPrev = page.Previous != nil
	return true
}

// Delete removes a task after confirmation. On success only that task is
// dropped from the displayed list; nothing is refetched.
func (l *TaskList) Delete(ctx context.Context, id int64, confirm Confirm) bool {
	if confirm == nil || !confirm(ConfirmDelete) {
		return false
	}
	token := l.sess.AccessToken()
	if token == "" {
		l.fail(MsgNotAuthenticated, FailAuth)
		return false
	}

	l.deleting[id] = true
	l.clearErr()
	defer delete(l.deleting, id)

	if err := l.svc.DeleteTask(ctx, token, id); err != nil {
		msg, kind := explain(l.sess, err, MsgDeleteFailed, false)
		l.log.Debug("delete task failed", zap.Int64("id", id), zap.Error(err))
		l.fail(msg, kind)
		return false
	}

	for i, t := range l.tasks {
		if t.ID == id {
			l.tasks = append(l.tasks[:i:i], l.tasks[i+1:]...)
			l.count--
			break
		}
	}
	return true
}

// Find returns the displayed task with the given id.
func (l *TaskList) Find(id int64) (service.Task, bool) {
	for _, t := range l.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Tasks returns a copy of the displayed tasks.
func (l *TaskList) Tasks() []service.Task {
	out := make([]service.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

func (l *TaskList) Page() int        { return l.page }
func (l *TaskList) Count() int       { return l.count }
func (l *TaskList) HasNext() bool    { return l.hasNext }
func (l *TaskList) HasPrev() bool    { return l.hasPrev }
func (l *TaskList) Loading() bool    { return l.loading }
func (l *TaskList) Err() string      { return l.err }
func (l *TaskList) Failure() Failure { return l.failure }

// Deleting reports whether a delete of id is in flight.
func (l *TaskList) Deleting(id int64) bool { return l.deleting[id] }

// Render writes the list as the user sees it.
func (l *TaskList) Render(w io.Writer) {
	if l.loading {
		fmt.Fprintln(w, "Loading tasks...")
		return
	}
	if l.err != "" {
		fmt.Fprintf(w, "Error: %s\n", l.err)
	}
	if len(l.tasks) == 0 {
		if l.err == "" {
			fmt.Fprintln(w, "No tasks found. Add a new task to get started!")
		}
		return
	}
	for _, t := range l.tasks {
		output.FormatTask(w, t, l.deleting[t.ID])
	}
	output.FormatPageFooter(w, l.page, l.count, l.hasPrev, l.hasNext)
}

func (l *TaskList) reset() {
	l.tasks = nil
	l.count = 0
	l.hasNext = false
	l.hasPrev = false
}

func (l *TaskList) fail(msg string, kind Failure) {
	l.err = msg
	l.failure = kind
}

func (l *TaskList) clearErr() {
	l.err = ""
	l.failure = FailNone
}
