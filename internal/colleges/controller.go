// Package colleges keeps the paginated, filterable colleges list for the
// admin dashboard.
package colleges

import (
	"context"
	"log/slog"

	"academixstore-admin/internal/api"
	"academixstore-admin/internal/metrics"
	"academixstore-admin/internal/models"
	"academixstore-admin/internal/observable"
)

const (
	DefaultPageSize = 20

	serviceName = "Colleges"
	listName    = "colleges"

	msgLoadFailed = "Failed to load colleges"
)

type API interface {
	GetColleges(ctx context.Context, page, limit int, filters map[string]string) (*api.Response, error)
	GetCollegeStats(ctx context.Context, id string) (*api.Response, error)
}

type State struct {
	Colleges    []models.College      `json:"colleges"`
	IsLoading   bool                  `json:"isLoading"`
	Error       string                `json:"error"`
	CurrentPage int                   `json:"currentPage"`
	TotalItems  int                   `json:"totalItems"`
	TotalPages  int                   `json:"totalPages"`
	Filters     models.CollegeFilters `json:"filters"`
}

func (s State) HasMore() bool {
	return s.CurrentPage < s.TotalPages
}

type Controller struct {
	api      API
	logger   *slog.Logger
	metrics  *metrics.Metrics
	pageSize int
	store    *observable.Store[State]
}

func NewController(client API, logger *slog.Logger, m *metrics.Metrics, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		api:      client,
		logger:   logger,
		metrics:  m,
		pageSize: pageSize,
		store: observable.New(State{
			Colleges:    []models.College{},
			CurrentPage: 1,
			TotalPages:  1,
		}),
	}
}

func (c *Controller) State() State {
	return c.store.Get()
}

func (c *Controller) Subscribe(fn func(State)) func() {
	return c.store.Subscribe(fn)
}

// LoadColleges follows the same single-flight, replace-or-append rules as
// the students list.
func (c *Controller) LoadColleges(ctx context.Context, refresh bool) {
	c.load(ctx, refresh, false)
}

func (c *Controller) LoadMore(ctx context.Context) {
	c.load(ctx, false, true)
}

func (c *Controller) load(ctx context.Context, refresh, next bool) {
	var page int
	var filters models.CollegeFilters
	_, started := c.store.TryUpdate(func(s *State) bool {
		if s.IsLoading || (next && !s.HasMore()) {
			return false
		}
		if refresh {
			s.CurrentPage = 1
			s.Colleges = []models.College{}
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
		return
	}
	defer c.store.Update(func(s *State) { s.IsLoading = false })

	resp, err := c.api.GetColleges(ctx, page, c.pageSize, filters.ToQueryParams())
	if err != nil {
		c.fail(ctx, api.Describe(err, serviceName), err)
		return
	}
	if !resp.Success() {
		c.fail(ctx, resp.MessageOr(msgLoadFailed), nil)
		return
	}

	fetched := make([]models.College, 0)
	for _, item := range api.ListOf(resp.Payload(), "colleges") {
		college, err := models.CollegeFromJSON(item)
		if err != nil {
			c.fail(ctx, api.Describe(err, serviceName), err)
			return
		}
		fetched = append(fetched, college)
	}
	pagination := api.PaginationOf(resp.PayloadObject())

	c.store.Update(func(s *State) {
		if page == 1 || refresh {
			s.Colleges = fetched
		} else {
			merged := make([]models.College, 0, len(s.Colleges)+len(fetched))
			merged = append(merged, s.Colleges...)
			s.Colleges = append(merged, fetched...)
		}
		s.CurrentPage = page
		s.TotalItems = len(fetched)
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

func (c *Controller) fail(ctx context.Context, message string, err error) {
	c.metrics.RecordListLoadFailure(ctx, listName)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to load colleges", "error", err)
	}
	c.store.Update(func(s *State) { s.Error = message })
}

// GetCollegeStats fetches the overview for one college; failures yield !ok.
func (c *Controller) GetCollegeStats(ctx context.Context, id string) (models.CollegeStats, bool) {
	resp, err := c.api.GetCollegeStats(ctx, id)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to fetch college stats", "id", id, "error", err)
		return models.CollegeStats{}, false
	}
	payload := resp.PayloadObject()
	if !resp.Success() || payload == nil {
		return models.CollegeStats{}, false
	}
	stats, err := models.CollegeStatsFromJSON(payload)
	if err != nil {
		c.logger.WarnContext(ctx, "malformed college stats", "id", id, "error", err)
		return models.CollegeStats{}, false
	}
	return stats, true
}

func (c *Controller) ApplyFilters(ctx context.Context, filters models.CollegeFilters) {
	c.store.Update(func(s *State) { s.Filters = filters })
	c.LoadColleges(ctx, true)
}

func (c *Controller) SearchColleges(ctx context.Context, query string) {
	c.store.Update(func(s *State) { s.Filters.Search = &query })
	c.LoadColleges(ctx, true)
}

func (c *Controller) FilterByStatus(ctx context.Context, status string) {
	c.store.Update(func(s *State) { s.Filters.Status = &status })
	c.LoadColleges(ctx, true)
}

func (c *Controller) ClearFilters(ctx context.Context) {
	c.ApplyFilters(ctx, models.CollegeFilters{}.Clear())
}
