package views_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"taskman/internal/service"
	"taskman/internal/session"
	"taskman/internal/testutil"
)

func loggedIn(t *testing.T) (*testutil.FakeService, *session.Store) {
	t.Helper()
	fake := testutil.NewFakeService()
	fake.AddUser("alice", "alice@example.com", "password1")
	sess := session.New(fake, session.NewMemoryStorage(), nil)
	require.True(t, sess.Login(context.Background(), "alice", "password1"))
	return fake, sess
}

func loggedOut(t *testing.T) (*testutil.FakeService, *session.Store) {
	t.Helper()
	fake := testutil.NewFakeService()
	fake.AddUser("alice", "alice@example.com", "password1")
	return fake, session.New(fake, session.NewMemoryStorage(), nil)
}

func addTasks(fake *testutil.FakeService, titles ...string) []service.Task {
	var out []service.Task
	for _, title := range titles {
		out = append(out, fake.AddTask("alice", service.TaskDraft{Title: title}))
	}
	return out
}

func yes(string) bool { return true }
func no(string) bool  { return false }

func str(s string) *string { return &s }
