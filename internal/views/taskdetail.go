package views

import (
	"context"
	"io"

	"go.uber.org/zap"

	"taskman/internal/output"
	"taskman/internal/service"
	"taskman/internal/session"
)

// TaskDetail shows a single task fetched by id.
type TaskDetail struct {
	svc  service.Service
	sess *session.Store
	log  *zap.Logger

	task    *service.Task
	err     string
	failure Failure
}

// NewTaskDetail returns an empty detail view.
func NewTaskDetail(svc service.Service, sess *session.Store, log *zap.Logger) *TaskDetail {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskDetail{svc: svc, sess: sess, log: log}
}

// Load fetches the task with the given id.
func (d *TaskDetail) Load(ctx context.Context, id int64) bool {
	d.task = nil
	d.err, d.failure = "", FailNone

	token := d.sess.AccessToken()
	if token == "" {
		d.err, d.failure = MsgNotAuthenticated, FailAuth
		return false
	}

	task, err := d.svc.GetTask(ctx, token, id)
	if err != nil {
		d.log.Debug("load task failed", zap.Int64("id", id), zap.Error(err))
		d.err, d.failure = explain(d.sess, err, MsgLoadFailed, false)
		return false
	}
	d.task = &task
	return true
}

// Task returns the loaded task.
func (d *TaskDetail) Task() (service.Task, bool) {
	if d.task == nil {
		return service.Task{}, false
	}
	return *d.task, true
}

func (d *TaskDetail) Err() string      { return d.err }
func (d *TaskDetail) Failure() Failure { return d.failure }

// Render writes the loaded task, or nothing.
func (d *TaskDetail) Render(w io.Writer) {
	if d.task != nil {
		output.FormatTaskDetail(w, *d.task)
	}
}
