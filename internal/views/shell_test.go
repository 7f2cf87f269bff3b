package views_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"taskman/internal/views"
)

func TestShell_StartsOnLoginWithoutSession(t *testing.T) {
	_, sess := loggedOut(t)
	sh := views.NewShell(sess)
	require.Equal(t, views.PageLogin, sh.Page())
}

func TestShell_StartsOnDashboardWithSession(t *testing.T) {
	_, sess := loggedIn(t)
	sh := views.NewShell(sess)
	require.Equal(t, views.PageDashboard, sh.Page())
}

func TestShell_RegisterNavigationSurvivesSync(t *testing.T) {
	_, sess := loggedOut(t)
	sh := views.NewShell(sess)

	require.True(t, sh.ShowRegister())
	require.Equal(t, views.PageRegister, sh.Sync())
	require.Equal(t, views.PageRegister, sh.Sync())

	require.True(t, sh.ShowLogin())
	require.Equal(t, views.PageLogin, sh.Sync())
	require.False(t, sh.ShowLogin())
}

func TestShell_FailedRegistrationStaysOnRegister(t *testing.T) {
	_, sess := loggedOut(t)
	sh := views.NewShell(sess)
	sh.ShowRegister()

	require.False(t, sess.Register(context.Background(), "alice", "bad", "x", "x"))
	require.Equal(t, views.PageRegister, sh.Sync())
}

func TestShell_LoginAndLogout(t *testing.T) {
	fake, sess := loggedOut(t)
	sh := views.NewShell(sess)

	var during views.Page
	fake.OnCall = func(string) { during = sh.Sync() }

	require.True(t, sess.Login(context.Background(), "alice", "password1"))
	require.Equal(t, views.PageLogin, during)
	require.Equal(t, views.PageDashboard, sh.Sync())

	sess.Logout()
	require.Equal(t, views.PageLogin, sh.Sync())
	require.False(t, sh.ShowLogin())
}

func TestShell_ExpiredSessionReturnsToLogin(t *testing.T) {
	fake, sess := loggedIn(t)
	sh := views.NewShell(sess)

	fake.ExpireTokens()
	list := views.NewTaskList(fake, sess, nil)
	require.False(t, list.Refresh(context.Background()))
	require.Equal(t, views.PageLogin, sh.Sync())
}

func TestPageString(t *testing.T) {
	require.Equal(t, "login", views.PageLogin.String())
	require.Equal(t, "register", views.PageRegister.String())
	require.Equal(t, "dashboard", views.PageDashboard.String())
}
