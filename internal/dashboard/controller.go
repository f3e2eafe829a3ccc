// Package dashboard holds the platform overview shown on the admin home page:
// aggregate counters plus the most recent activity feed.
package dashboard

import (
	"context"
	"log/slog"

	"academixstore-admin/internal/api"
	"academixstore-admin/internal/metrics"
	"academixstore-admin/internal/models"
	"academixstore-admin/internal/observable"
)

const (
	DefaultActivityLimit = 10

	serviceName = "Dashboard"
	listName    = "dashboard"

	msgLoadFailed = "Failed to load dashboard"
)

type API interface {
	GetDashboardStats(ctx context.Context) (*api.Response, error)
	GetRecentActivities(ctx context.Context, limit int) (*api.Response, error)
}

type State struct {
	Stats      *models.DashboardStats  `json:"stats"`
	Activities []models.RecentActivity `json:"activities"`
	IsLoading  bool                    `json:"isLoading"`
	Error      string                  `json:"error"`
}

type Controller struct {
	api           API
	logger        *slog.Logger
	metrics       *metrics.Metrics
	activityLimit int
	store         *observable.Store[State]
}

func NewController(client API, logger *slog.Logger, m *metrics.Metrics, activityLimit int) *Controller {
	if activityLimit <= 0 {
		activityLimit = DefaultActivityLimit
	}
	return &Controller{
		api:           client,
		logger:        logger,
		metrics:       m,
		activityLimit: activityLimit,
		store:         observable.New(State{Activities: []models.RecentActivity{}}),
	}
}

func (c *Controller) State() State {
	return c.store.Get()
}

func (c *Controller) Subscribe(fn func(State)) func() {
	return c.store.Subscribe(fn)
}

// LoadDashboard refreshes stats and activities together. A call made while
// another is in flight is dropped. On failure the previous stats and feed
// stay visible alongside the error.
func (c *Controller) LoadDashboard(ctx context.Context) {
	_, started := c.store.TryUpdate(func(s *State) bool {
		if s.IsLoading {
			return false
		}
		s.IsLoading = true
		s.Error = ""
		return true
	})
	if !started {
		c.metrics.RecordLoadDropped(ctx, listName)
		return
	}
	defer c.store.Update(func(s *State) { s.IsLoading = false })

	stats, err := c.fetchStats(ctx)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	activities, err := c.fetchActivities(ctx)
	if err != nil {
		c.fail(ctx, err)
		return
	}

	c.store.Update(func(s *State) {
		s.Stats = &stats
		s.Activities = activities
	})
	c.metrics.RecordListLoad(ctx, listName)
}

func (c *Controller) fetchStats(ctx context.Context) (models.DashboardStats, error) {
	resp, err := c.api.GetDashboardStats(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	if !resp.Success() {
		return models.DashboardStats{}, &rejectedError{message: resp.MessageOr(msgLoadFailed)}
	}
	return models.DashboardStatsFromJSON(api.ObjectOf(resp.PayloadObject(), "stats"))
}

func (c *Controller) fetchActivities(ctx context.Context) ([]models.RecentActivity, error) {
	resp, err := c.api.GetRecentActivities(ctx, c.activityLimit)
	if err != nil {
		return nil, err
	}
	if !resp.Success() {
		return nil, &rejectedError{message: resp.MessageOr(msgLoadFailed)}
	}

	activities := make([]models.RecentActivity, 0)
	for _, item := range api.ListOf(resp.Payload(), "activities") {
		activity, err := models.RecentActivityFromJSON(item)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, nil
}

func (c *Controller) fail(ctx context.Context, err error) {
	c.metrics.RecordListLoadFailure(ctx, listName)

	message := api.Describe(err, serviceName)
	if rejected, ok := err.(*rejectedError); ok {
		message = rejected.message
	} else {
		c.logger.ErrorContext(ctx, "failed to load dashboard", "error", err)
	}
	c.store.Update(func(s *State) { s.Error = message })
}

// rejectedError carries a server message from a success=false envelope.
type rejectedError struct {
	message string
}

func (e *rejectedError) Error() string {
	return e.message
}
