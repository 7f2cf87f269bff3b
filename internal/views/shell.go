package views

import "taskman/internal/session"

// Page is a top-level screen.
type Page int

const (
	PageLogin Page = iota
	PageRegister
	PageDashboard
)

func (p Page) String() string {
	switch p {
	case PageLogin:
		return "login"
	case PageRegister:
		return "register"
	case PageDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Shell picks the page to show from the session state.
//
// Sync only reacts when session presence or the loading flag changed since
// the previous sync, so moving between login and register by hand is kept.
type Shell struct {
	sess *session.Store
	page Page

	synced      bool
	lastPresent bool
	lastLoading bool
}

// NewShell creates a shell already synced to sess.
func NewShell(sess *session.Store) *Shell {
	s := &Shell{sess: sess}
	s.Sync()
	return s
}

// Sync applies the session state and returns the current page.
// Absent and not loading shows login; present and not loading shows the
// dashboard; anything else keeps the current page.
func (s *Shell) Sync() Page {
	present, loading := s.sess.Present(), s.sess.Loading()
	if s.synced && present == s.lastPresent && loading == s.lastLoading {
		return s.page
	}
	s.synced = true
	s.lastPresent = present
	s.lastLoading = loading

	switch {
	case !present && !loading:
		s.page = PageLogin
	case present && !loading:
		s.page = PageDashboard
	}
	return s.page
}

// Page returns the current page.
func (s *Shell) Page() Page { return s.page }

// ShowRegister switches from login to register.
func (s *Shell) ShowRegister() bool {
	if s.page != PageLogin {
		return false
	}
	s.page = PageRegister
	return true
}

// ShowLogin switches from register to login.
func (s *Shell) ShowLogin() bool {
	if s.page != PageRegister {
		return false
	}
	s.page = PageLogin
	return true
}
