// Package session holds the client's authentication state: the bearer token
// pair, the identity decoded from the access token, and the mutators that
// talk to the authentication endpoints.
package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"taskman/internal/logger"
	"taskman/internal/service"
)

// Display messages set by the store.
const (
	MsgNetwork        = "Network error or server unavailable."
	MsgLoginFailed    = "Login failed."
	MsgRegisterFailed = "Registration failed."
	MsgRefreshFailed  = "Token refresh failed."
	MsgNoRefreshToken = "No refresh token. Please log in."
	MsgSessionExpired = "Session expired. Please log in again."
	MsgBadAccessToken = "Received an unreadable access token."
	MsgSaveFailed     = "Could not save the session."
)

// Authenticator is the part of the API the store talks to.
type Authenticator interface {
	ObtainToken(ctx context.Context, username, password string) (service.TokenPair, error)
	RefreshToken(ctx context.Context, refresh string) (string, error)
	Register(ctx context.Context, reg service.Registration) error
}

// Store is the single owner of session state. Its methods are the only way
// the state changes. It is not safe for concurrent use.
type Store struct {
	auth    Authenticator
	storage Storage
	log     *zap.Logger

	accessToken  string
	refreshToken string
	user         *User

	loading bool
	err     string
}

// New creates a store and restores any token pair found in storage.
// A stored access token that cannot be decoded leaves the session absent.
func New(auth Authenticator, storage Storage, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{auth: auth, storage: storage, log: log}

	s.refreshToken, _ = storage.Get(KeyRefreshToken)
	access, _ := storage.Get(KeyAccessToken)
	s.setAccessToken(access)
	return s
}

// setAccessToken is the only place the access token changes. It re-derives
// the user and logs out when the token cannot be decoded.
func (s *Store) setAccessToken(token string) bool {
	s.accessToken = token
	if token == "" {
		s.user = nil
		return true
	}

	user, err := DecodeClaims(token)
	if err != nil {
		s.log.Warn("discarding undecodable access token", zap.Error(err))
		s.Logout()
		return false
	}
	s.user = &user
	return true
}

func (s *Store) begin() {
	s.loading = true
	s.err = ""
}

func (s *Store) end() {
	s.loading = false
}

// Login exchanges credentials for a token pair and persists it.
// It reports failure through Err and never returns an error.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	s.begin()
	defer s.end()

	log := s.log.With(zap.String("username", username))

	pair, err := s.auth.ObtainToken(ctx, username, password)
	if err != nil {
		log.Debug("login failed", zap.Error(err))
		s.err = detailMessage(err, MsgLoginFailed)
		return false
	}

	if err := s.persist(pair.Access, pair.Refresh); err != nil {
		log.Warn("persist session", zap.Error(err))
		s.Logout()
		s.err = MsgSaveFailed
		return false
	}
	s.refreshToken = pair.Refresh
	if !s.setAccessToken(pair.Access) {
		s.err = MsgBadAccessToken
		return false
	}

	log.Debug("logged in")
	return true
}

// Register creates an account. It does not log in.
func (s *Store) Register(ctx context.Context, username, email, password, confirm string) bool {
	s.begin()
	defer s.end()

	err := s.auth.Register(ctx, service.Registration{
		Username:  username,
		Email:     email,
		Password:  password,
		Password2: confirm,
	})
	if err != nil {
		s.log.Debug("registration failed",
			zap.String("username", username),
			zap.String("email", logger.Email(email)),
			zap.Error(err),
		)
		var apiErr *service.APIError
		switch {
		case errors.As(err, &apiErr):
			if msg := apiErr.Joined(); msg != "" {
				s.err = msg
			} else {
				s.err = MsgRegisterFailed
			}
		case errors.Is(err, service.ErrTransport):
			s.err = MsgNetwork
		default:
			s.err = MsgRegisterFailed
		}
		return false
	}
	return true
}

// Refresh exchanges the refresh token for a new access token.
// It only runs when asked to; a 401 elsewhere never triggers it.
func (s *Store) Refresh(ctx context.Context) bool {
	if s.refreshToken == "" {
		s.err = MsgNoRefreshToken
		return false
	}

	s.begin()
	defer s.end()

	access, err := s.auth.RefreshToken(ctx, s.refreshToken)
	if err != nil {
		s.log.Debug("token refresh failed", zap.Error(err))
		if errors.Is(err, service.ErrUnauthorized) {
			s.Logout()
			s.err = MsgSessionExpired
			return false
		}
		s.err = detailMessage(err, MsgRefreshFailed)
		return false
	}

	if err := s.storage.Set(KeyAccessToken, access); err != nil {
		s.log.Warn("persist session", zap.Error(err))
		s.Logout()
		s.err = MsgSaveFailed
		return false
	}
	if !s.setAccessToken(access) {
		s.err = MsgBadAccessToken
		return false
	}
	return true
}

// Logout clears memory and durable state and any error. It is idempotent.
func (s *Store) Logout() {
	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil
	s.err = ""

	for _, key := range []string{KeyAccessToken, KeyRefreshToken} {
		if err := s.storage.Remove(key); err != nil {
			s.log.Warn("clear stored token", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *Store) persist(access, refresh string) error {
	if err := s.storage.Set(KeyAccessToken, access); err != nil {
		return err
	}
	return s.storage.Set(KeyRefreshToken, refresh)
}

// detailMessage picks the server's detail for a rejection, fallback for
// other rejections, and the network message for transport failures.
func detailMessage(err error, fallback string) string {
	var apiErr *service.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fallback
	case errors.Is(err, service.ErrTransport):
		return MsgNetwork
	default:
		return fallback
	}
}

// User returns the logged-in identity.
func (s *Store) User() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Present reports whether a usable session exists.
func (s *Store) Present() bool { return s.user != nil }

// AccessToken returns the current access token or "".
func (s *Store) AccessToken() string { return s.accessToken }

// RefreshToken returns the current refresh token or "".
func (s *Store) RefreshToken() string { return s.refreshToken }

// Loading reports whether one of the store's own requests is in flight.
func (s *Store) Loading() bool { return s.loading }

// Err returns the last failure message, or "".
func (s *Store) Err() string { return s.err }
