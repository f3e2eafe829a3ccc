package students_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"academixstore-admin/internal/api"
	"academixstore-admin/internal/models"
	"academixstore-admin/internal/notify"
	"academixstore-admin/internal/students"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI answers with canned responses; unset hooks report success=true.
type fakeAPI struct {
	mu sync.Mutex

	listCalls   atomic.Int32
	lastQuery   api.UsersQuery
	lastPayload map[string]any

	getAllUsers    func(q api.UsersQuery) (*api.Response, error)
	getUserByID    func(id string) (*api.Response, error)
	registerUser   func(data map[string]any) (*api.Response, error)
	updateUser     func(id string, data map[string]any) (*api.Response, error)
	activateUser   func(id string) (*api.Response, error)
	deactivateUser func(id string) (*api.Response, error)
	changePassword func(id, current, next string) (*api.Response, error)
	getMyBooks     func() (*api.Response, error)
}

func ok(data any) *api.Response {
	return &api.Response{StatusCode: 200, Data: map[string]any{"success": true, "data": data}}
}

func rejected(message string) *api.Response {
	body := map[string]any{"success": false}
	if message != "" {
		body["message"] = message
	}
	return &api.Response{StatusCode: 200, Data: body}
}

func (f *fakeAPI) GetAllUsers(ctx context.Context, q api.UsersQuery) (*api.Response, error) {
	f.listCalls.Add(1)
	f.mu.Lock()
	f.lastQuery = q
	f.mu.Unlock()
	if f.getAllUsers != nil {
		return f.getAllUsers(q)
	}
	return ok(map[string]any{"users": []any{}}), nil
}

func (f *fakeAPI) GetUserByID(ctx context.Context, id string) (*api.Response, error) {
	if f.getUserByID != nil {
		return f.getUserByID(id)
	}
	return ok(studentDoc(id, "Someone")), nil
}

func (f *fakeAPI) RegisterUser(ctx context.Context, data map[string]any) (*api.Response, error) {
	f.mu.Lock()
	f.lastPayload = data
	f.mu.Unlock()
	if f.registerUser != nil {
		return f.registerUser(data)
	}
	return ok(map[string]any{"user": studentDoc("new", fmt.Sprint(data["fullName"]))}), nil
}

func (f *fakeAPI) UpdateUser(ctx context.Context, id string, data map[string]any) (*api.Response, error) {
	if f.updateUser != nil {
		return f.updateUser(id, data)
	}
	return ok(studentDoc(id, "Updated")), nil
}

func (f *fakeAPI) ActivateUser(ctx context.Context, id string) (*api.Response, error) {
	if f.activateUser != nil {
		return f.activateUser(id)
	}
	return ok(nil), nil
}

func (f *fakeAPI) DeactivateUser(ctx context.Context, id string) (*api.Response, error) {
	if f.deactivateUser != nil {
		return f.deactivateUser(id)
	}
	return ok(nil), nil
}

func (f *fakeAPI) ChangePassword(ctx context.Context, id, current, next string) (*api.Response, error) {
	if f.changePassword != nil {
		return f.changePassword(id, current, next)
	}
	return ok(nil), nil
}

func (f *fakeAPI) GetMyBooks(ctx context.Context) (*api.Response, error) {
	if f.getMyBooks != nil {
		return f.getMyBooks()
	}
	return ok(map[string]any{"books": []any{}}), nil
}

type fakeGate struct{ allow bool }

func (g fakeGate) CanModify(string) bool { return g.allow }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.sent...)
}

func studentDoc(id, name string) map[string]any {
	return map[string]any{
		"id":        id,
		"fullName":  name,
		"email":     id + "@northfield.edu",
		"role":      "student",
		"isActive":  true,
		"createdAt": "2024-02-10T11:00:00Z",
		"updatedAt": "2024-02-10T11:00:00Z",
	}
}

func page(ids ...string) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, studentDoc(id, "Student "+id))
	}
	return out
}

func listResponse(users []any, total, totalPages int) *api.Response {
	return ok(map[string]any{
		"users":      users,
		"pagination": map[string]any{"total": float64(total), "totalPages": float64(totalPages)},
	})
}

func newController(fake *fakeAPI, allow bool) (*students.Controller, *recordingNotifier) {
	notifier := &recordingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return students.NewController(fake, fakeGate{allow: allow}, notifier, logger, nil, 20), notifier
}

func ids(list []models.Student) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestLoadStudents(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstPageReplacesList", func(t *testing.T) {
		fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
			return listResponse(page("a", "b", "c"), 50, 3), nil
		}}
		c, notifier := newController(fake, true)

		c.LoadStudents(ctx, false)

		state := c.State()
		assert.Len(t, state.Students, 3)
		assert.Equal(t, 50, state.TotalItems)
		assert.Equal(t, 3, state.TotalPages)
		assert.Equal(t, 1, state.CurrentPage)
		assert.False(t, state.IsLoading)
		assert.Empty(t, state.Error)
		assert.Empty(t, notifier.all())

		assert.Equal(t, api.UsersQuery{Page: 1, Limit: 20, Role: "student"}, fake.lastQuery)
	})

	t.Run("NextPageAppends", func(t *testing.T) {
		fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
			if q.Page == 1 {
				return listResponse(page("a", "b", "c"), 50, 3), nil
			}
			return listResponse(page("d", "e", "f"), 50, 3), nil
		}}
		c, _ := newController(fake, true)

		c.LoadStudents(ctx, false)
		c.LoadMore(ctx)

		state := c.State()
		assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, ids(state.Students))
		assert.Equal(t, 2, state.CurrentPage)
		assert.Equal(t, 2, fake.lastQuery.Page)
	})

	t.Run("LoadMoreStopsAtLastPage", func(t *testing.T) {
		fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
			return listResponse(page("a"), 1, 1), nil
		}}
		c, _ := newController(fake, true)

		c.LoadStudents(ctx, false)
		c.LoadMore(ctx)

		assert.Equal(t, int32(1), fake.listCalls.Load())
	})

	t.Run("NonRefreshReloadOfLaterPageAppends", func(t *testing.T) {
		fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
			return listResponse(page(fmt.Sprintf("p%d", q.Page)), 10, 5), nil
		}}
		c, _ := newController(fake, true)

		c.LoadStudents(ctx, false)
		c.LoadMore(ctx)
		c.LoadStudents(ctx, false)

		assert.Equal(t, []string{"p1", "p2", "p2"}, ids(c.State().Students))
	})

	t.Run("RefreshResetsToFirstPage", func(t *testing.T) {
		fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
			return listResponse(page(fmt.Sprintf("p%d", q.Page)), 10, 5), nil
		}}
		c, _ := newController(fake, true)

		c.LoadStudents(ctx, false)
		c.LoadMore(ctx)
		c.LoadStudents(ctx, true)

		state := c.State()
		assert.Equal(t, []string{"p1"}, ids(state.Students))
		assert.Equal(t, 1, state.CurrentPage)
	})

	t.Run("PaginationFallbacks", func(t *testing.T) {
		fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
			return ok(map[string]any{"users": page("a", "b")}), nil
		}}
		c, _ := newController(fake, true)

		c.LoadStudents(ctx, false)

		state := c.State()
		assert.Equal(t, 2, state.TotalItems)
		assert.Equal(t, 1, state.TotalPages)
	})

	t.Run("NetworkErrorKeepsList", func(t *testing.T) {
		fail := false
		fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
			if fail {
				return nil, fmt.Errorf("execute request: %w", context.DeadlineExceeded)
			}
			return listResponse(page("a", "b", "c"), 50, 3), nil
		}}
		c, notifier := newController(fake, true)

		c.LoadStudents(ctx, false)
		before := c.State()

		fail = true
		c.LoadStudents(ctx, false)

		state := c.State()
		assert.Equal(t, api.MsgNetworkError, state.Error)
		assert.False(t, state.IsLoading)
		assert.Equal(t, before.Students, state.Students)
		assert.Equal(t, before.TotalItems, state.TotalItems)
		assert.Equal(t, before.TotalPages, state.TotalPages)
		assert.Empty(t, notifier.all())
	})

	t.Run("BusinessFailure", func(t *testing.T) {
		fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
			return rejected(""), nil
		}}
		c, _ := newController(fake, true)

		c.LoadStudents(ctx, false)

		state := c.State()
		assert.Equal(t, "Failed to load students", state.Error)
		assert.False(t, state.IsLoading)
	})

	t.Run("ServerAndNotFound", func(t *testing.T) {
		status := 500
		fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
			return nil, &api.StatusError{StatusCode: status}
		}}
		c, _ := newController(fake, true)

		c.LoadStudents(ctx, false)
		assert.Equal(t, api.MsgServerError, c.State().Error)

		status = 404
		c.LoadStudents(ctx, false)
		assert.Equal(t, api.NotFoundMessage("Students"), c.State().Error)
	})

	t.Run("ErrorClearedOnNextLoad", func(t *testing.T) {
		fail := true
		fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return listResponse(page("a"), 1, 1), nil
		}}
		c, _ := newController(fake, true)

		c.LoadStudents(ctx, false)
		assert.Equal(t, api.MsgUnexpectedError, c.State().Error)

		fail = false
		c.LoadStudents(ctx, false)
		assert.Empty(t, c.State().Error)
	})

	t.Run("MalformedStudentFailsLoad", func(t *testing.T) {
		fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
			return ok(map[string]any{"users": []any{map[string]any{"fullName": "no id"}}}), nil
		}}
		c, _ := newController(fake, true)

		c.LoadStudents(ctx, false)

		assert.Equal(t, api.MsgUnexpectedError, c.State().Error)
		assert.Empty(t, c.State().Students)
	})
}

func TestLoadStudents_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
		<-release
		return listResponse(page("a"), 1, 1), nil
	}}
	c, _ := newController(fake, true)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		c.LoadStudents(ctx, true)
		close(done)
	}()

	require.Eventually(t, func() bool { return c.State().IsLoading }, time.Second, 5*time.Millisecond)

	// second call returns immediately without touching the API
	c.LoadStudents(ctx, true)
	assert.Equal(t, int32(1), fake.listCalls.Load())
	assert.True(t, c.State().IsLoading)

	close(release)
	<-done

	assert.Equal(t, int32(1), fake.listCalls.Load())
	assert.False(t, c.State().IsLoading)
	assert.Len(t, c.State().Students, 1)
}

func TestLoadStudents_NotifiesSubscribers(t *testing.T) {
	fake := &fakeAPI{getAllUsers: func(q api.UsersQuery) (*api.Response, error) {
		return listResponse(page("a"), 1, 1), nil
	}}
	c, _ := newController(fake, true)

	var loadingFlags []bool
	unsubscribe := c.Subscribe(func(s students.State) { loadingFlags = append(loadingFlags, s.IsLoading) })
	defer unsubscribe()

	c.LoadStudents(context.Background(), false)

	require.NotEmpty(t, loadingFlags)
	assert.True(t, loadingFlags[0])
	assert.False(t, loadingFlags[len(loadingFlags)-1])
}

func loaded(t *testing.T, fake *fakeAPI, allow bool, ids ...string) (*students.Controller, *recordingNotifier) {
	t.Helper()
	fake.getAllUsers = func(q api.UsersQuery) (*api.Response, error) {
		return listResponse(page(ids...), len(ids), 1), nil
	}
	c, notifier := newController(fake, allow)
	c.LoadStudents(context.Background(), false)
	require.Len(t, c.State().Students, len(ids))
	return c, notifier
}

func TestRegisterStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("PrependsAndCounts", func(t *testing.T) {
		fake := &fakeAPI{}
		c, notifier := loaded(t, fake, true, "a", "b")
		before := c.State().TotalItems

		input := map[string]any{"fullName": "Jane Doe", "role": "admin"}
		require.True(t, c.RegisterStudent(ctx, input))

		state := c.State()
		assert.Equal(t, "new", state.Students[0].ID)
		assert.Equal(t, []string{"new", "a", "b"}, ids(state.Students))
		assert.Equal(t, before+1, state.TotalItems)

		assert.Equal(t, "student", fake.lastPayload["role"])
		assert.Equal(t, "admin", input["role"], "caller payload must not be modified")

		sent := notifier.all()
		require.Len(t, sent, 1)
		assert.Equal(t, notify.LevelSuccess, sent[0].Level)
	})

	t.Run("AccessDenied", func(t *testing.T) {
		fake := &fakeAPI{}
		c, notifier := loaded(t, fake, false, "a")

		assert.False(t, c.RegisterStudent(ctx, map[string]any{"fullName": "x"}))

		assert.Nil(t, fake.lastPayload)
		assert.Equal(t, []string{"a"}, ids(c.State().Students))
		sent := notifier.all()
		require.Len(t, sent, 1)
		assert.Equal(t, "Access Denied", sent[0].Title)
	})

	t.Run("ThrownErrorCaptured", func(t *testing.T) {
		fake := &fakeAPI{registerUser: func(map[string]any) (*api.Response, error) {
			return nil, errors.New("dial tcp: connection refused")
		}}
		c, notifier := loaded(t, fake, true, "a")

		assert.False(t, c.RegisterStudent(ctx, map[string]any{"fullName": "x"}))

		assert.Equal(t, api.MsgNetworkError, c.State().Error)
		assert.Equal(t, 1, c.State().TotalItems)
		require.Len(t, notifier.all(), 1)
		assert.Equal(t, notify.LevelError, notifier.all()[0].Level)
	})

	t.Run("ServerMessageOnRejection", func(t *testing.T) {
		fake := &fakeAPI{registerUser: func(map[string]any) (*api.Response, error) {
			return rejected("Email already registered"), nil
		}}
		c, _ := loaded(t, fake, true, "a")

		assert.False(t, c.RegisterStudent(ctx, nil))
		assert.Equal(t, "Email already registered", c.State().Error)
		assert.Equal(t, "student", fake.lastPayload["role"])
	})
}

func TestUpdateStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("ReplacesInPlace", func(t *testing.T) {
		fake := &fakeAPI{}
		c, _ := loaded(t, fake, true, "a", "b", "c")

		require.True(t, c.UpdateStudent(ctx, "b", map[string]any{"fullName": "Updated"}))

		state := c.State()
		assert.Equal(t, []string{"a", "b", "c"}, ids(state.Students))
		assert.Equal(t, "Updated", state.Students[1].FullName)
		assert.Equal(t, "Student a", state.Students[0].FullName)
	})

	t.Run("UnknownIDStillSucceeds", func(t *testing.T) {
		fake := &fakeAPI{}
		c, _ := loaded(t, fake, true, "a")
		before := c.State().Students

		assert.True(t, c.UpdateStudent(ctx, "zzz", map[string]any{"fullName": "Updated"}))
		assert.Equal(t, before, c.State().Students)
	})

	t.Run("AccessDenied", func(t *testing.T) {
		called := false
		fake := &fakeAPI{updateUser: func(string, map[string]any) (*api.Response, error) {
			called = true
			return ok(nil), nil
		}}
		c, _ := loaded(t, fake, false, "a")

		assert.False(t, c.UpdateStudent(ctx, "a", map[string]any{"fullName": "x"}))
		assert.False(t, called)
	})

	t.Run("EarlierSnapshotUnchanged", func(t *testing.T) {
		fake := &fakeAPI{}
		c, _ := loaded(t, fake, true, "a")
		snapshot := c.State()

		require.True(t, c.UpdateStudent(ctx, "a", map[string]any{"fullName": "Updated"}))
		assert.Equal(t, "Student a", snapshot.Students[0].FullName)
	})
}

func TestActivateDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("PatchesOnlyFlag", func(t *testing.T) {
		fake := &fakeAPI{}
		c, _ := loaded(t, fake, true, "a", "b")

		require.True(t, c.DeactivateStudent(ctx, "b"))
		deactivated := c.State().Students[1]
		assert.False(t, deactivated.IsActive)

		require.True(t, c.ActivateStudent(ctx, "b"))
		activated := c.State().Students[1]
		assert.True(t, activated.IsActive)

		deactivated.IsActive = true
		assert.Equal(t, deactivated, activated)
		assert.True(t, c.State().Students[0].IsActive)
	})

	t.Run("AbsentIDReportsSuccess", func(t *testing.T) {
		fake := &fakeAPI{}
		c, _ := loaded(t, fake, true, "a")
		before := c.State().Students

		assert.True(t, c.ActivateStudent(ctx, "missing"))
		assert.Equal(t, before, c.State().Students)
	})

	t.Run("RejectedLeavesFlag", func(t *testing.T) {
		fake := &fakeAPI{deactivateUser: func(string) (*api.Response, error) {
			return rejected(""), nil
		}}
		c, _ := loaded(t, fake, true, "a")

		assert.False(t, c.DeactivateStudent(ctx, "a"))
		assert.True(t, c.State().Students[0].IsActive)
		assert.Equal(t, "Failed to deactivate student", c.State().Error)
	})

	t.Run("AccessDenied", func(t *testing.T) {
		fake := &fakeAPI{}
		c, notifier := loaded(t, fake, false, "a")

		assert.False(t, c.DeactivateStudent(ctx, "a"))
		assert.True(t, c.State().Students[0].IsActive)
		assert.Equal(t, notify.LevelWarning, notifier.all()[0].Level)
	})
}

func TestChangeStudentPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("NoGateNoState", func(t *testing.T) {
		var got []string
		fake := &fakeAPI{changePassword: func(id, current, next string) (*api.Response, error) {
			got = []string{id, current, next}
			return ok(nil), nil
		}}
		c, _ := loaded(t, fake, false, "a")
		before := c.State()

		assert.True(t, c.ChangeStudentPassword(ctx, "a", "old-pass", "new-pass"))
		assert.Equal(t, []string{"a", "old-pass", "new-pass"}, got)
		assert.Equal(t, before, c.State())
	})

	t.Run("FailureDoesNotSetError", func(t *testing.T) {
		fake := &fakeAPI{changePassword: func(string, string, string) (*api.Response, error) {
			return nil, &api.StatusError{StatusCode: 500}
		}}
		c, _ := loaded(t, fake, true, "a")

		assert.False(t, c.ChangeStudentPassword(ctx, "a", "x", "y"))
		assert.Empty(t, c.State().Error)
	})
}

func TestGetStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		c, _ := newController(&fakeAPI{}, true)

		student, found := c.GetStudent(ctx, "s-9")
		require.True(t, found)
		assert.Equal(t, "s-9", student.ID)
	})

	t.Run("ErrorsAreSilent", func(t *testing.T) {
		c, _ := newController(&fakeAPI{getUserByID: func(string) (*api.Response, error) {
			return nil, &api.StatusError{StatusCode: 404}
		}}, true)

		_, found := c.GetStudent(ctx, "s-9")
		assert.False(t, found)
		assert.Empty(t, c.State().Error)
	})

	t.Run("Rejected", func(t *testing.T) {
		c, _ := newController(&fakeAPI{getUserByID: func(string) (*api.Response, error) {
			return rejected("nope"), nil
		}}, true)

		_, found := c.GetStudent(ctx, "s-9")
		assert.False(t, found)
	})
}

func TestGetStudentBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("NestedBooks", func(t *testing.T) {
		c, _ := newController(&fakeAPI{getMyBooks: func() (*api.Response, error) {
			return ok(map[string]any{"books": []any{map[string]any{"id": "b-1"}}}), nil
		}}, true)

		assert.Len(t, c.GetStudentBooks(ctx), 1)
	})

	t.Run("BareList", func(t *testing.T) {
		c, _ := newController(&fakeAPI{getMyBooks: func() (*api.Response, error) {
			return ok([]any{"x", "y"}), nil
		}}, true)

		assert.Equal(t, []any{"x", "y"}, c.GetStudentBooks(ctx))
	})

	t.Run("FailureGivesEmpty", func(t *testing.T) {
		c, _ := newController(&fakeAPI{getMyBooks: func() (*api.Response, error) {
			return nil, errors.New("boom")
		}}, true)

		books := c.GetStudentBooks(ctx)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})
}

func TestFilters(t *testing.T) {
	ctx := context.Background()

	t.Run("SearchRefreshesWithQuery", func(t *testing.T) {
		fake := &fakeAPI{}
		c, _ := loaded(t, fake, true, "a", "b")
		fake.getAllUsers = func(q api.UsersQuery) (*api.Response, error) {
			return listResponse(page("b"), 1, 1), nil
		}

		c.SearchStudents(ctx, "Student b")

		state := c.State()
		assert.Equal(t, []string{"b"}, ids(state.Students))
		assert.Equal(t, 1, state.CurrentPage)
		require.NotNil(t, fake.lastQuery.Search)
		assert.Equal(t, "Student b", *fake.lastQuery.Search)
		assert.Equal(t, 1, fake.lastQuery.Page)
	})

	t.Run("FilterByCollegeKeepsSearch", func(t *testing.T) {
		fake := &fakeAPI{}
		c, _ := newController(fake, true)

		c.SearchStudents(ctx, "doe")
		c.FilterByCollege(ctx, "c-1")

		filters := c.State().Filters
		assert.Equal(t, map[string]string{"search": "doe", "collegeId": "c-1"}, filters.ToQueryParams())
		assert.Equal(t, "c-1", *fake.lastQuery.CollegeID)
		assert.Equal(t, int32(2), fake.listCalls.Load())
	})

	t.Run("EmptySearchIsStillAFilter", func(t *testing.T) {
		fake := &fakeAPI{}
		c, _ := newController(fake, true)

		c.SearchStudents(ctx, "")

		filters := c.State().Filters
		require.NotNil(t, filters.Search)
		assert.True(t, filters.HasFilters())
		assert.Empty(t, filters.ToQueryParams())
		assert.Equal(t, int32(1), fake.listCalls.Load())
	})

	t.Run("ApplyAndClear", func(t *testing.T) {
		fake := &fakeAPI{}
		c, _ := newController(fake, true)

		c.ApplyFilters(ctx, models.StudentFilters{CollegeID: models.StringPtr("c-2")})
		assert.True(t, c.State().Filters.HasFilters())

		c.ClearFilters(ctx)
		assert.False(t, c.State().Filters.HasFilters())
		assert.Nil(t, fake.lastQuery.CollegeID)
	})
}
