// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskman/internal/service"
)

// PageSize is the number of tasks per page, as served by the real API.
const PageSize = 10

// Server messages reproduced by the fake.
const (
	DetailBadCredentials = "No active account found with the given credentials"
	DetailTokenInvalid   = "Given token not valid for any token type"
	DetailNotFound       = "No Task matches the given query."
	DetailInvalidPage    = "Invalid page."
	DetailNoCredentials  = "Authentication credentials were not provided."
)

var fakeSecret = []byte("fake-signing-key")

// TokenClaims is the payload of tokens the fake issues.
type TokenClaims struct {
	TokenType string `json:"token_type"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

type fakeUser struct {
	email    string
	password string
}

// FakeService is an in-memory implementation of service.Service for testing.
// It issues signed JWTs carrying username and email claims.
type FakeService struct {
	mu      sync.RWMutex
	users   map[string]fakeUser
	tasks   []service.Task // creation order
	nextID  int64
	access  map[string]string // token -> username
	refresh map[string]string // token -> username
	calls   map[string]int

	// Now is the clock used for timestamps and token expiry.
	Now func() time.Time

	// OnCall, if set, runs at the start of every method with its name.
	OnCall func(method string)

	// Error injection for testing
	ObtainTokenErr  error
	RefreshTokenErr error
	RegisterErr     error
	ListTasksErr    error
	GetTaskErr      error
	CreateTaskErr   error
	UpdateTaskErr   error
	DeleteTaskErr   error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		users:   make(map[string]fakeUser),
		access:  make(map[string]string),
		refresh: make(map[string]string),
		calls:   make(map[string]int),
		nextID:  1,
		Now:     time.Now,
	}
}

// AddUser registers an account directly.
func (f *FakeService) AddUser(username, email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = fakeUser{email: email, password: password}
}

// Login issues a token pair for an existing user without checking a password.
func (f *FakeService) Login(username string) service.TokenPair {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issue(username)
}

// AddTask stores a task owned by username and returns it.
func (f *FakeService) AddTask(username string, draft service.TaskDraft) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if draft.Status == "" {
		draft.Status = service.StatusPending
	}
	return f.insert(username, draft)
}

// Tasks returns a copy of username's tasks, newest first.
func (f *FakeService) Tasks(username string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.owned(username)
}

// ExpireTokens invalidates every access token issued so far.
// Refresh tokens stay valid.
func (f *FakeService) ExpireTokens() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = make(map[string]string)
}

// RevokeRefreshTokens invalidates every refresh token issued so far.
func (f *FakeService) RevokeRefreshTokens() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh = make(map[string]string)
}

// Calls returns how many times method was invoked.
func (f *FakeService) Calls(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[method]
}

func (f *FakeService) enter(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
	if f.OnCall != nil {
		f.OnCall(method)
	}
}

// ObtainToken implements service.Service.
func (f *FakeService) ObtainToken(ctx context.Context, username, password string) (service.TokenPair, error) {
	f.enter("ObtainToken")
	if f.ObtainTokenErr != nil {
		return service.TokenPair{}, f.ObtainTokenErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[username]
	if !ok || u.password != password {
		return service.TokenPair{}, detailError(http.StatusUnauthorized, DetailBadCredentials)
	}
	return f.issue(username), nil
}

// RefreshToken implements service.Service.
func (f *FakeService) RefreshToken(ctx context.Context, refresh string) (string, error) {
	f.enter("RefreshToken")
	if f.RefreshTokenErr != nil {
		return "", f.RefreshTokenErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	username, ok := f.refresh[refresh]
	if !ok {
		return "", detailError(http.StatusUnauthorized, "Token is invalid or expired")
	}
	return f.sign(username, "access", 5*time.Minute, f.access), nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, reg service.Registration) error {
	f.enter("Register")
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var msgs []string
	_, taken := f.users[reg.Username]
	switch {
	case strings.TrimSpace(reg.Username) == "":
		msgs = append(msgs, "This field may not be blank.")
	case taken:
		msgs = append(msgs, "A user with that username already exists.")
	}
	switch {
	case strings.TrimSpace(reg.Email) == "":
		msgs = append(msgs, "This field may not be blank.")
	default:
		if _, err := mail.ParseAddress(reg.Email); err != nil {
			msgs = append(msgs, "Enter a valid email address.")
		}
	}
	if len(reg.Password) < 8 {
		msgs = append(msgs, "Ensure this field has at least 8 characters.")
	}
	if len(msgs) == 0 && reg.Password != reg.Password2 {
		msgs = append(msgs, "Password fields didn't match.")
	}
	if len(msgs) > 0 {
		return &service.APIError{Status: http.StatusBadRequest, Messages: msgs}
	}

	f.users[reg.Username] = fakeUser{email: reg.Email, password: reg.Password}
	return nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, accessToken string, page int) (service.Page, error) {
	f.enter("ListTasks")
	if f.ListTasksErr != nil {
		return service.Page{}, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	username, err := f.authorize(accessToken)
	if err != nil {
		return service.Page{}, err
	}
	if page < 1 {
		page = 1
	}

	tasks := f.owned(username)
	start := (page - 1) * PageSize
	if start > 0 && start >= len(tasks) {
		return service.Page{}, detailError(http.StatusNotFound, DetailInvalidPage)
	}
	end := min(start+PageSize, len(tasks))

	result := service.Page{Count: len(tasks), Results: tasks[start:end]}
	if end < len(tasks) {
		next := fmt.Sprintf("http://fake/api/tasks/?page=%d", page+1)
		result.Next = &next
	}
	if page > 1 {
		prev := fmt.Sprintf("http://fake/api/tasks/?page=%d", page-1)
		result.Previous = &prev
	}
	return result, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, accessToken string, id int64) (service.Task, error) {
	f.enter("GetTask")
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	username, err := f.authorize(accessToken)
	if err != nil {
		return service.Task{}, err
	}
	i := f.find(username, id)
	if i < 0 {
		return service.Task{}, detailError(http.StatusNotFound, DetailNotFound)
	}
	return f.tasks[i], nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, accessToken string, draft service.TaskDraft) (service.Task, error) {
	f.enter("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	username, err := f.authorize(accessToken)
	if err != nil {
		return service.Task{}, err
	}
	if err := validateDraft(draft); err != nil {
		return service.Task{}, err
	}
	return f.insert(username, draft), nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, accessToken string, id int64, draft service.TaskDraft) (service.Task, error) {
	f.enter("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	username, err := f.authorize(accessToken)
	if err != nil {
		return service.Task{}, err
	}
	i := f.find(username, id)
	if i < 0 {
		return service.Task{}, detailError(http.StatusNotFound, DetailNotFound)
	}
	if err := validateDraft(draft); err != nil {
		return service.Task{}, err
	}

	t := &f.tasks[i]
	t.Title = draft.Title
	t.Description = ptr(draft.Description)
	t.DueDate = optional(draft.DueDate)
	t.Status = draft.Status
	t.UpdatedAt = f.Now().UTC()
	return *t, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, accessToken string, id int64) error {
	f.enter("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	username, err := f.authorize(accessToken)
	if err != nil {
		return err
	}
	i := f.find(username, id)
	if i < 0 {
		return detailError(http.StatusNotFound, DetailNotFound)
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

func (f *FakeService) authorize(token string) (string, error) {
	if token == "" {
		return "", detailError(http.StatusUnauthorized, DetailNoCredentials)
	}
	username, ok := f.access[token]
	if !ok {
		return "", detailError(http.StatusUnauthorized, DetailTokenInvalid)
	}
	return username, nil
}

func (f *FakeService) issue(username string) service.TokenPair {
	return service.TokenPair{
		Access:  f.sign(username, "access", 5*time.Minute, f.access),
		Refresh: f.sign(username, "refresh", 24*time.Hour, f.refresh),
	}
}

func (f *FakeService) sign(username, tokenType string, ttl time.Duration, valid map[string]string) string {
	now := f.Now()
	claims := TokenClaims{
		TokenType: tokenType,
		Username:  username,
		Email:     f.users[username].email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(fakeSecret)
	if err != nil {
		panic(fmt.Sprintf("sign fake token: %v", err))
	}
	valid[token] = username
	return token
}

func (f *FakeService) insert(username string, draft service.TaskDraft) service.Task {
	now := f.Now().UTC()
	t := service.Task{
		ID:          f.nextID,
		User:        username,
		Title:       draft.Title,
		Description: ptr(draft.Description),
		DueDate:     optional(draft.DueDate),
		Status:      draft.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t
}

// owned returns username's tasks newest first.
func (f *FakeService) owned(username string) []service.Task {
	var out []service.Task
	for _, t := range f.tasks {
		if t.User == username {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *FakeService) find(username string, id int64) int {
	for i, t := range f.tasks {
		if t.ID == id && t.User == username {
			return i
		}
	}
	return -1
}

func validateDraft(d service.TaskDraft) error {
	var msgs []string
	if strings.TrimSpace(d.Title) == "" {
		msgs = append(msgs, "This field may not be blank.")
	}
	if d.DueDate != "" {
		if _, err := time.Parse(service.DateLayout, d.DueDate); err != nil {
			msgs = append(msgs, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
	}
	if _, err := service.ParseStatus(string(d.Status)); err != nil {
		msgs = append(msgs, fmt.Sprintf("%q is not a valid choice.", string(d.Status)))
	}
	if len(msgs) > 0 {
		return &service.APIError{Status: http.StatusBadRequest, Messages: msgs}
	}
	return nil
}

func detailError(status int, detail string) *service.APIError {
	return &service.APIError{Status: status, Detail: detail, Messages: []string{detail}}
}

func ptr(s string) *string { return &s }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
