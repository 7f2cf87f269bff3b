package service

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches any APIError carrying status 401.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrContract indicates a response whose shape is not what the API promises.
	ErrContract = errors.New("unexpected response format")

	// ErrTransport wraps network and decoding failures.
	ErrTransport = errors.New("transport error")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status int

	// Detail is the top-level "detail" message, if any.
	Detail string

	// Messages holds every message in the body, in the order the server sent them.
	Messages []string
}

func (e *APIError) Error() string {
	if msg := e.Joined(); msg != "" {
		return msg
	}
	return http.StatusText(e.Status)
}

// Is reports a 401 as ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Joined returns all messages joined by a single space.
func (e *APIError) Joined() string {
	return strings.Join(e.Messages, " ")
}
