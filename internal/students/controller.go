package students

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"academixstore-admin/internal/access"
	"academixstore-admin/internal/api"
	"academixstore-admin/internal/metrics"
	"academixstore-admin/internal/models"
	"academixstore-admin/internal/notify"
	"academixstore-admin/internal/observable"
)

const (
	DefaultPageSize = 20

	serviceName = "Students"
	listName    = "students"

	msgLoadFailed       = "Failed to load students"
	msgRegisterFailed   = "Failed to register student"
	msgUpdateFailed     = "Failed to update student"
	msgActivateFailed   = "Failed to activate student"
	msgDeactivateFailed = "Failed to deactivate student"
	msgPasswordFailed   = "Failed to change password"
	msgAccessDenied     = "You don't have permission to modify students"
)

// API is the part of the backend client the controller depends on.
type API interface {
	GetAllUsers(ctx context.Context, q api.UsersQuery) (*api.Response, error)
	GetUserByID(ctx context.Context, id string) (*api.Response, error)
	RegisterUser(ctx context.Context, data map[string]any) (*api.Response, error)
	UpdateUser(ctx context.Context, id string, data map[string]any) (*api.Response, error)
	ActivateUser(ctx context.Context, id string) (*api.Response, error)
	DeactivateUser(ctx context.Context, id string) (*api.Response, error)
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) (*api.Response, error)
	GetMyBooks(ctx context.Context) (*api.Response, error)
}

type AccessChecker interface {
	CanModify(resource string) bool
}

// State is the snapshot handed to views. Slices are never modified after
// publication; every change installs a new slice.
type State struct {
	Students    []models.Student      `json:"students"`
	IsLoading   bool                  `json:"isLoading"`
	Error       string                `json:"error"`
	CurrentPage int                   `json:"currentPage"`
	TotalItems  int                   `json:"totalItems"`
	TotalPages  int                   `json:"totalPages"`
	Filters     models.StudentFilters `json:"filters"`
}

func (s State) HasMore() bool {
	return s.CurrentPage < s.TotalPages
}

type Controller struct {
	api      API
	access   AccessChecker
	notifier notify.Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
	pageSize int
	store    *observable.Store[State]
}

func NewController(client API, gate AccessChecker, notifier notify.Notifier, logger *slog.Logger, m *metrics.Metrics, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		api:      client,
		access:   gate,
		notifier: notifier,
		logger:   logger,
		metrics:  m,
		pageSize: pageSize,
		store: observable.New(State{
			Students:    []models.Student{},
			CurrentPage: 1,
			TotalPages:  1,
		}),
	}
}

func (c *Controller) State() State {
	return c.store.Get()
}

// Subscribe calls fn with a fresh snapshot after every state change.
func (c *Controller) Subscribe(fn func(State)) func() {
	return c.store.Subscribe(fn)
}

// LoadStudents fetches the current page. A call made while a load is in
// flight is dropped. With refresh the list restarts from page 1.
func (c *Controller) LoadStudents(ctx context.Context, refresh bool) {
	c.load(ctx, refresh, false)
}

// LoadMore fetches the page after CurrentPage and appends it.
func (c *Controller) LoadMore(ctx context.Context) {
	c.load(ctx, false, true)
}

func (c *Controller) load(ctx context.Context, refresh, next bool) {
	var page int
	var filters models.StudentFilters
	_, started := c.store.TryUpdate(func(s *State) bool {
		if s.IsLoading {
			return false
		}
		if next && !s.HasMore() {
			return false
		}
		if refresh {
			s.CurrentPage = 1
			s.Students = []models.Student{}
		}
		page = s.CurrentPage
		if next {
			page++
		}
		s.IsLoading = true
		s.Error = ""
		filters = s.Filters
		return true
	})
	if !started {
		c.metrics.RecordLoadDropped(ctx, listName)
		c.logger.DebugContext(ctx, "students load skipped", "refresh", refresh, "next", next)
		return
	}
	defer c.store.Update(func(s *State) { s.IsLoading = false })

	c.logger.InfoContext(ctx, "loading students", "page", page, "refresh", refresh)

	resp, err := c.api.GetAllUsers(ctx, api.UsersQuery{
		Page:      page,
		Limit:     c.pageSize,
		Role:      models.RoleStudent,
		Search:    filters.Search,
		CollegeID: filters.CollegeID,
	})
	if err != nil {
		c.failLoad(ctx, api.Describe(err, serviceName), err)
		return
	}
	if !resp.Success() {
		c.failLoad(ctx, resp.MessageOr(msgLoadFailed), nil)
		return
	}

	newStudents := make([]models.Student, 0)
	for _, item := range api.ListOf(resp.Payload(), "users") {
		student, err := models.StudentFromJSON(item)
		if err != nil {
			c.failLoad(ctx, api.Describe(err, serviceName), err)
			return
		}
		newStudents = append(newStudents, student)
	}
	pagination := api.PaginationOf(resp.PayloadObject())

	c.store.Update(func(s *State) {
		if page == 1 || refresh {
			s.Students = newStudents
		} else {
			merged := make([]models.Student, 0, len(s.Students)+len(newStudents))
			merged = append(merged, s.Students...)
			s.Students = append(merged, newStudents...)
		}
		s.CurrentPage = page

		s.TotalItems = len(newStudents)
		if pagination.HasTotal {
			s.TotalItems = pagination.Total
		}
		s.TotalPages = page
		if pagination.HasPages {
			s.TotalPages = pagination.TotalPages
		}
	})
	c.metrics.RecordListLoad(ctx, listName)
}

func (c *Controller) failLoad(ctx context.Context, message string, err error) {
	c.metrics.RecordListLoadFailure(ctx, listName)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to load students", "error", err)
	} else {
		c.logger.WarnContext(ctx, "students load rejected", "message", message)
	}
	c.store.Update(func(s *State) { s.Error = message })
}

// GetStudent fetches one student. Failures are logged and reported as !ok;
// the controller state is not touched.
func (c *Controller) GetStudent(ctx context.Context, id string) (models.Student, bool) {
	resp, err := c.api.GetUserByID(ctx, id)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to fetch student", "id", id, "error", err)
		return models.Student{}, false
	}
	student, err := studentFrom(resp)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to fetch student", "id", id, "error", err)
		return models.Student{}, false
	}
	return student, true
}

// RegisterStudent creates a student account and puts it first in the list.
// The role is always "student" regardless of data.
func (c *Controller) RegisterStudent(ctx context.Context, data map[string]any) bool {
	return c.register(ctx, data) == nil
}

func (c *Controller) register(ctx context.Context, data map[string]any) error {
	const op = "register"
	if !c.allowed(ctx) {
		return ErrAccessDenied
	}

	payload := maps.Clone(data)
	if payload == nil {
		payload = map[string]any{}
	}
	payload["role"] = models.RoleStudent

	resp, err := c.api.RegisterUser(ctx, payload)
	if err != nil {
		return c.mutationFailed(ctx, op, api.Describe(err, serviceName), err)
	}
	if !resp.Success() {
		return c.mutationFailed(ctx, op, resp.MessageOr(msgRegisterFailed), nil)
	}
	student, err := studentFrom(resp)
	if err != nil {
		return c.mutationFailed(ctx, op, api.Describe(err, serviceName), err)
	}

	c.store.Update(func(s *State) {
		s.Students = append([]models.Student{student}, s.Students...)
		s.TotalItems++
	})
	c.mutationSucceeded(ctx, op, "Student registered successfully")
	return nil
}

// UpdateStudent saves data and swaps the returned record into the list. A
// student not on the loaded pages is updated remotely only.
func (c *Controller) UpdateStudent(ctx context.Context, id string, data map[string]any) bool {
	return c.update(ctx, id, data) == nil
}

func (c *Controller) update(ctx context.Context, id string, data map[string]any) error {
	const op = "update"
	if !c.allowed(ctx) {
		return ErrAccessDenied
	}

	resp, err := c.api.UpdateUser(ctx, id, data)
	if err != nil {
		return c.mutationFailed(ctx, op, api.Describe(err, serviceName), err)
	}
	if !resp.Success() {
		return c.mutationFailed(ctx, op, resp.MessageOr(msgUpdateFailed), nil)
	}
	student, err := studentFrom(resp)
	if err != nil {
		return c.mutationFailed(ctx, op, api.Describe(err, serviceName), err)
	}

	c.replace(id, func(models.Student) models.Student { return student })
	c.mutationSucceeded(ctx, op, "Student updated successfully")
	return nil
}

func (c *Controller) ActivateStudent(ctx context.Context, id string) bool {
	return c.setActive(ctx, id, true) == nil
}

func (c *Controller) DeactivateStudent(ctx context.Context, id string) bool {
	return c.setActive(ctx, id, false) == nil
}

func (c *Controller) setActive(ctx context.Context, id string, active bool) error {
	op, call, fallback, done := "activate", c.api.ActivateUser, msgActivateFailed, "Student activated successfully"
	if !active {
		op, call, fallback, done = "deactivate", c.api.DeactivateUser, msgDeactivateFailed, "Student deactivated successfully"
	}
	if !c.allowed(ctx) {
		return ErrAccessDenied
	}

	resp, err := call(ctx, id)
	if err != nil {
		return c.mutationFailed(ctx, op, api.Describe(err, serviceName), err)
	}
	if !resp.Success() {
		return c.mutationFailed(ctx, op, resp.MessageOr(fallback), nil)
	}

	c.replace(id, func(s models.Student) models.Student {
		return s.CopyWith(models.StudentUpdate{IsActive: &active})
	})
	c.mutationSucceeded(ctx, op, done)
	return nil
}

// ChangeStudentPassword is not gated and leaves controller state alone.
func (c *Controller) ChangeStudentPassword(ctx context.Context, id, currentPassword, newPassword string) bool {
	return c.changePassword(ctx, id, currentPassword, newPassword) == nil
}

func (c *Controller) changePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	const op = "change_password"

	resp, err := c.api.ChangePassword(ctx, id, currentPassword, newPassword)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to change password", "id", id, "error", err)
		return c.passwordFailed(ctx, api.Describe(err, serviceName), err)
	}
	if !resp.Success() {
		return c.passwordFailed(ctx, resp.MessageOr(msgPasswordFailed), nil)
	}

	c.mutationSucceeded(ctx, op, "Password changed successfully")
	return nil
}

func (c *Controller) passwordFailed(ctx context.Context, message string, err error) error {
	c.metrics.RecordMutation(ctx, "change_password", false)
	c.notifier.Notify(ctx, notify.Error(message))
	return &MutationError{Op: "change_password", Message: message, Err: err}
}

// GetStudentBooks returns the signed-in user's books as raw JSON values, or
// an empty list on any failure.
func (c *Controller) GetStudentBooks(ctx context.Context) []any {
	resp, err := c.api.GetMyBooks(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to fetch books", "error", err)
		return []any{}
	}
	if !resp.Success() {
		return []any{}
	}
	switch payload := resp.Payload().(type) {
	case []any:
		return payload
	case map[string]any:
		if books, ok := payload["books"].([]any); ok {
			return books
		}
	}
	return []any{}
}

// ApplyFilters replaces all filters and reloads from page 1.
func (c *Controller) ApplyFilters(ctx context.Context, filters models.StudentFilters) {
	c.store.Update(func(s *State) { s.Filters = filters })
	c.LoadStudents(ctx, true)
}

func (c *Controller) SearchStudents(ctx context.Context, query string) {
	c.store.Update(func(s *State) { s.Filters.Search = &query })
	c.LoadStudents(ctx, true)
}

func (c *Controller) FilterByCollege(ctx context.Context, collegeID string) {
	c.store.Update(func(s *State) { s.Filters.CollegeID = &collegeID })
	c.LoadStudents(ctx, true)
}

func (c *Controller) ClearFilters(ctx context.Context) {
	c.ApplyFilters(ctx, models.StudentFilters{})
}

func (c *Controller) allowed(ctx context.Context) bool {
	if c.access.CanModify(access.ResourceStudents) {
		return true
	}
	c.metrics.RecordAccessDenied(ctx, access.ResourceStudents)
	c.logger.WarnContext(ctx, "student modification denied")
	c.notifier.Notify(ctx, notify.AccessDenied(msgAccessDenied))
	return false
}

// replace swaps the entry with the given id through fn; no match is a no-op.
func (c *Controller) replace(id string, fn func(models.Student) models.Student) {
	c.store.Update(func(s *State) {
		idx := slices.IndexFunc(s.Students, func(st models.Student) bool { return st.ID == id })
		if idx < 0 {
			return
		}
		next := slices.Clone(s.Students)
		next[idx] = fn(next[idx])
		s.Students = next
	})
}

func (c *Controller) mutationFailed(ctx context.Context, op, message string, err error) error {
	if err != nil {
		c.logger.ErrorContext(ctx, "student mutation failed", "operation", op, "error", err)
	} else {
		c.logger.WarnContext(ctx, "student mutation rejected", "operation", op, "message", message)
	}
	c.metrics.RecordMutation(ctx, op, false)
	c.store.Update(func(s *State) { s.Error = message })
	c.notifier.Notify(ctx, notify.Error(message))
	return &MutationError{Op: op, Message: message, Err: err}
}

func (c *Controller) mutationSucceeded(ctx context.Context, op, message string) {
	c.logger.InfoContext(ctx, "student mutation succeeded", "operation", op)
	c.metrics.RecordMutation(ctx, op, true)
	c.notifier.Notify(ctx, notify.Success(message))
}

// studentFrom reads a student from a single-record response, accepting both
// {"data": {...}} and {"data": {"user": {...}}}.
func studentFrom(resp *api.Response) (models.Student, error) {
	if !resp.Success() {
		return models.Student{}, errNotSuccessful(resp)
	}
	obj := resp.PayloadObject()
	if obj == nil {
		return models.Student{}, errMissingPayload
	}
	return models.StudentFromJSON(api.ObjectOf(obj, "user"))
}
