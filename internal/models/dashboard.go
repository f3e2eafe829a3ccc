package models

import "time"

const (
	ActivityUserAction  = "user_action"
	ActivitySystemEvent = "system_event"
	ActivityOrderUpdate = "order_update"

	ActivityStatusInfo    = "info"
	ActivityStatusSuccess = "success"
	ActivityStatusWarning = "warning"
	ActivityStatusError   = "error"
)

// DashboardStats aggregates platform-wide counters for the admin dashboard.
type DashboardStats struct {
	TotalColleges     int
	ActiveColleges    int
	TotalStudents     int
	TotalAdmins       int
	TotalBooks        int
	TotalOrders       int
	PendingOrders     int
	StudentGrowthRate float64
	BookGrowthRate    float64
	OrderGrowthRate   float64
	LastUpdated       time.Time
}

func DashboardStatsFromJSON(doc Document) (DashboardStats, error) {
	r := newReader("DashboardStats", doc)
	s := DashboardStats{
		TotalColleges:     r.int("totalColleges"),
		ActiveColleges:    r.int("activeColleges"),
		TotalStudents:     r.int("totalStudents"),
		TotalAdmins:       r.int("totalAdmins"),
		TotalBooks:        r.int("totalBooks"),
		TotalOrders:       r.int("totalOrders"),
		PendingOrders:     r.int("pendingOrders"),
		StudentGrowthRate: r.float("studentGrowthRate"),
		BookGrowthRate:    r.float("bookGrowthRate"),
		OrderGrowthRate:   r.float("orderGrowthRate"),
		LastUpdated:       r.time("lastUpdated"),
	}
	if r.err != nil {
		return DashboardStats{}, r.err
	}
	return s, nil
}

type DashboardStatsUpdate struct {
	TotalColleges     *int
	ActiveColleges    *int
	TotalStudents     *int
	TotalAdmins       *int
	TotalBooks        *int
	TotalOrders       *int
	PendingOrders     *int
	StudentGrowthRate *float64
	BookGrowthRate    *float64
	OrderGrowthRate   *float64
	LastUpdated       *time.Time
}

func (s DashboardStats) CopyWith(u DashboardStatsUpdate) DashboardStats {
	out := s
	setInt(&out.TotalColleges, u.TotalColleges)
	setInt(&out.ActiveColleges, u.ActiveColleges)
	setInt(&out.TotalStudents, u.TotalStudents)
	setInt(&out.TotalAdmins, u.TotalAdmins)
	setInt(&out.TotalBooks, u.TotalBooks)
	setInt(&out.TotalOrders, u.TotalOrders)
	setInt(&out.PendingOrders, u.PendingOrders)
	if u.StudentGrowthRate != nil {
		out.StudentGrowthRate = *u.StudentGrowthRate
	}
	if u.BookGrowthRate != nil {
		out.BookGrowthRate = *u.BookGrowthRate
	}
	if u.OrderGrowthRate != nil {
		out.OrderGrowthRate = *u.OrderGrowthRate
	}
	if u.LastUpdated != nil {
		out.LastUpdated = *u.LastUpdated
	}
	return out
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func (s DashboardStats) ToJSON() Document {
	return Document{
		"totalColleges":     s.TotalColleges,
		"activeColleges":    s.ActiveColleges,
		"totalStudents":     s.TotalStudents,
		"totalAdmins":       s.TotalAdmins,
		"totalBooks":        s.TotalBooks,
		"totalOrders":       s.TotalOrders,
		"pendingOrders":     s.PendingOrders,
		"studentGrowthRate": s.StudentGrowthRate,
		"bookGrowthRate":    s.BookGrowthRate,
		"orderGrowthRate":   s.OrderGrowthRate,
		"lastUpdated":       formatTime(s.LastUpdated),
	}
}

func (s DashboardStats) MarshalJSON() ([]byte, error) {
	return marshalDocument(s.ToJSON())
}

func (s *DashboardStats) UnmarshalJSON(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	parsed, err := DashboardStatsFromJSON(doc)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// RecentActivity is one entry of the dashboard activity feed. Type and Status
// are free text; the Activity* constants list the values the API emits today.
type RecentActivity struct {
	ID          string
	Title       string
	Description string
	Type        string
	UserID      string
	UserName    string
	Timestamp   time.Time
	Status      string
}

func RecentActivityFromJSON(doc Document) (RecentActivity, error) {
	r := newReader("RecentActivity", doc)
	a := RecentActivity{
		ID:          r.requiredString("id"),
		Title:       r.requiredString("title"),
		Description: r.string("description", ""),
		Type:        r.requiredString("type"),
		UserID:      r.string("userId", ""),
		UserName:    r.string("userName", ""),
		Timestamp:   r.requiredTime("timestamp"),
		Status:      r.string("status", ActivityStatusInfo),
	}
	if r.err != nil {
		return RecentActivity{}, r.err
	}
	return a, nil
}

type RecentActivityUpdate struct {
	Title       *string
	Description *string
	Type        *string
	UserID      *string
	UserName    *string
	Timestamp   *time.Time
	Status      *string
}

func (a RecentActivity) CopyWith(u RecentActivityUpdate) RecentActivity {
	out := a
	if u.Title != nil {
		out.Title = *u.Title
	}
	if u.Description != nil {
		out.Description = *u.Description
	}
	if u.Type != nil {
		out.Type = *u.Type
	}
	if u.UserID != nil {
		out.UserID = *u.UserID
	}
	if u.UserName != nil {
		out.UserName = *u.UserName
	}
	if u.Timestamp != nil {
		out.Timestamp = *u.Timestamp
	}
	if u.Status != nil {
		out.Status = *u.Status
	}
	return out
}

func (a RecentActivity) ToJSON() Document {
	return Document{
		"id":          a.ID,
		"title":       a.Title,
		"description": a.Description,
		"type":        a.Type,
		"userId":      a.UserID,
		"userName":    a.UserName,
		"timestamp":   formatTime(a.Timestamp),
		"status":      a.Status,
	}
}

func (a RecentActivity) MarshalJSON() ([]byte, error) {
	return marshalDocument(a.ToJSON())
}

func (a *RecentActivity) UnmarshalJSON(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	parsed, err := RecentActivityFromJSON(doc)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
