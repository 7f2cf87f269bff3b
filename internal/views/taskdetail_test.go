package views_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"taskman/internal/testutil"
	"taskman/internal/views"
)

func TestTaskDetail(t *testing.T) {
	fake, sess := loggedIn(t)
	tasks := addTasks(fake, "Write report")

	d := views.NewTaskDetail(fake, sess, nil)
	require.True(t, d.Load(context.Background(), tasks[0].ID))

	task, ok := d.Task()
	require.True(t, ok)
	require.Equal(t, "Write report", task.Title)

	var buf bytes.Buffer
	d.Render(&buf)
	require.Contains(t, buf.String(), "#1 Write report\n")

	require.False(t, d.Load(context.Background(), 42))
	require.Equal(t, testutil.DetailNotFound, d.Err())
	require.Equal(t, views.FailNotFound, d.Failure())
	_, ok = d.Task()
	require.False(t, ok)
}
