// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusDeferred   Status = "deferred"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusDeferred,
	StatusCancelled,
}

// ParseStatus validates s against the enumerated set.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status: %s", s)
}

// Task is a task as returned by the API.
// The server assigns ID, User and the timestamps.
type Task struct {
	ID          int64     `json:"id" yaml:"id"`
	User        string    `json:"user" yaml:"user"`
	Title       string    `json:"title" yaml:"title"`
	Description *string   `json:"description" yaml:"description"`
	DueDate     *string   `json:"due_date" yaml:"due_date"`
	Status      Status    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// TaskDraft holds the fields a client may submit on create or update.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     string // YYYY-MM-DD or empty
	Status      Status
}

// DraftFrom converts a stored task into a draft; nil optionals become "".
func DraftFrom(t Task) TaskDraft {
	d := TaskDraft{Title: t.Title, Status: t.Status}
	if t.Description != nil {
		d.Description = *t.Description
	}
	if t.DueDate != nil {
		d.DueDate = *t.DueDate
	}
	return d
}

// MarshalJSON encodes the draft in the API's wire format.
// An empty due date is sent as null.
func (d TaskDraft) MarshalJSON() ([]byte, error) {
	var due *string
	if d.DueDate != "" {
		v := d.DueDate
		due = &v
	}
	return json.Marshal(struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		DueDate     *string `json:"due_date"`
		Status      Status  `json:"status"`
	}{d.Title, d.Description, due, d.Status})
}

// Page is the paginated envelope returned by the task collection endpoint.
type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Task  `json:"results"`
}

// TokenPair is the access/refresh token pair issued on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Registration is the payload for creating an account.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}
