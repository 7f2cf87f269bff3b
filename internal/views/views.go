// Package views holds the presentation state of the client: the task list,
// the task form, the dashboard that composes them and the page shell.
//
// Views translate service errors into a display message and a Failure kind.
// No error value crosses the view boundary.
package views

import (
	"errors"
	"net/http"

	"taskman/internal/service"
	"taskman/internal/session"
)

// Failure classifies the last error a view recorded.
type Failure int

const (
	FailNone Failure = iota
	FailValidation
	FailAuth
	FailNotFound
	FailTransport
	FailContract
	FailServer
)

// Display messages.
const (
	MsgNotAuthenticated = "Not authenticated. Please log in."
	MsgSessionExpired   = session.MsgSessionExpired
	MsgNetwork          = session.MsgNetwork
	MsgContract         = "Received unexpected data format from server."
	MsgFetchFailed      = "Failed to fetch tasks."
	MsgLoadFailed       = "Failed to load task."
	MsgDeleteFailed     = "Failed to delete task."
	MsgCreateFailed     = "Failed to create task."
	MsgUpdateFailed     = "Failed to update task."
	MsgTitleRequired    = "Title is required."

	// ConfirmDelete is the question asked before a task is deleted.
	ConfirmDelete = "Are you sure you want to delete this task?"
)

// Confirm asks the user a yes/no question.
type Confirm func(prompt string) bool

// explain turns a service error into a display message.
// A 401 logs the session out. joinFields prefers the joined field messages
// of a validation failure over the detail.
func explain(sess *session.Store, err error, fallback string, joinFields bool) (string, Failure) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		sess.Logout()
		return MsgSessionExpired, FailAuth
	case errors.Is(err, service.ErrContract):
		return MsgContract, FailContract
	case errors.Is(err, service.ErrTransport):
		return MsgNetwork, FailTransport
	}

	var apiErr *service.APIError
	if !errors.As(err, &apiErr) {
		return fallback, FailServer
	}

	kind := FailServer
	switch apiErr.Status {
	case http.StatusBadRequest:
		kind = FailValidation
	case http.StatusForbidden:
		kind = FailAuth
	case http.StatusNotFound:
		kind = FailNotFound
	}

	switch {
	case joinFields && apiErr.Joined() != "":
		return apiErr.Joined(), kind
	case apiErr.Detail != "":
		return apiErr.Detail, kind
	default:
		return fallback, kind
	}
}
