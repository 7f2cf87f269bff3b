// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for the remote task API.
// Commands and views never talk HTTP directly.
type Service interface {
	// ObtainToken exchanges credentials for a token pair.
	ObtainToken(ctx context.Context, username, password string) (TokenPair, error)

	// RefreshToken exchanges a refresh token for a new access token.
	RefreshToken(ctx context.Context, refresh string) (string, error)

	// Register creates an account. It does not authenticate.
	Register(ctx context.Context, reg Registration) error

	// ListTasks returns one page of the caller's tasks.
	// page is 1-based.
	ListTasks(ctx context.Context, accessToken string, page int) (Page, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, accessToken string, id int64) (Task, error)

	// CreateTask creates a task and returns it with server-assigned fields.
	CreateTask(ctx context.Context, accessToken string, draft TaskDraft) (Task, error)

	// UpdateTask replaces the editable fields of a task.
	UpdateTask(ctx context.Context, accessToken string, id int64, draft TaskDraft) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, accessToken string, id int64) error
}
