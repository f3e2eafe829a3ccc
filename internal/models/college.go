package models

import (
	"slices"
	"time"
)

type College struct {
	ID        string
	Name      string
	Code      string
	Address   string
	Phone     string
	Email     string
	Website   string
	LogoURL   *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CollegeFromJSON parses a college object. Address, phone and website default
// to empty strings and isActive to true.
func CollegeFromJSON(doc Document) (College, error) {
	r := newReader("College", doc)
	c := College{
		ID:        r.requiredString("id"),
		Name:      r.requiredString("name"),
		Code:      r.requiredString("code"),
		Address:   r.string("address", ""),
		Phone:     r.string("phone", ""),
		Email:     r.requiredString("email"),
		Website:   r.string("website", ""),
		LogoURL:   r.optionalString("logoUrl"),
		IsActive:  r.bool("isActive", true),
		CreatedAt: r.requiredTime("createdAt"),
		UpdatedAt: r.requiredTime("updatedAt"),
	}
	if r.err != nil {
		return College{}, r.err
	}
	return c, nil
}

func (c College) ToJSON() Document {
	doc := Document{
		"id":        c.ID,
		"name":      c.Name,
		"code":      c.Code,
		"address":   c.Address,
		"phone":     c.Phone,
		"email":     c.Email,
		"website":   c.Website,
		"isActive":  c.IsActive,
		"createdAt": formatTime(c.CreatedAt),
		"updatedAt": formatTime(c.UpdatedAt),
	}
	if c.LogoURL != nil {
		doc["logoUrl"] = *c.LogoURL
	}
	return doc
}

// Equal compares colleges by identity.
func (c College) Equal(other College) bool {
	return c.ID == other.ID
}

// CollegeUpdate lists the fields CopyWith should replace; nil means keep.
type CollegeUpdate struct {
	Name      *string
	Code      *string
	Address   *string
	Phone     *string
	Email     *string
	Website   *string
	LogoURL   *string
	IsActive  *bool
	UpdatedAt *time.Time
}

func (c College) CopyWith(u CollegeUpdate) College {
	out := c
	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.Code != nil {
		out.Code = *u.Code
	}
	if u.Address != nil {
		out.Address = *u.Address
	}
	if u.Phone != nil {
		out.Phone = *u.Phone
	}
	if u.Email != nil {
		out.Email = *u.Email
	}
	if u.Website != nil {
		out.Website = *u.Website
	}
	if u.LogoURL != nil {
		logo := *u.LogoURL
		out.LogoURL = &logo
	}
	if u.IsActive != nil {
		out.IsActive = *u.IsActive
	}
	if u.UpdatedAt != nil {
		out.UpdatedAt = *u.UpdatedAt
	}
	return out
}

func (c College) MarshalJSON() ([]byte, error) {
	return marshalDocument(c.ToJSON())
}

func (c *College) UnmarshalJSON(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	parsed, err := CollegeFromJSON(doc)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type CategoryCount struct {
	Category string
	Count    int
}

func CategoryCountFromJSON(doc Document) (CategoryCount, error) {
	r := newReader("CategoryCount", doc)
	cc := CategoryCount{
		Category: r.requiredString("category"),
		Count:    r.int("count"),
	}
	if r.err != nil {
		return CategoryCount{}, r.err
	}
	return cc, nil
}

type CategoryCountUpdate struct {
	Category *string
	Count    *int
}

func (cc CategoryCount) CopyWith(u CategoryCountUpdate) CategoryCount {
	out := cc
	if u.Category != nil {
		out.Category = *u.Category
	}
	if u.Count != nil {
		out.Count = *u.Count
	}
	return out
}

func (cc CategoryCount) ToJSON() Document {
	return Document{
		"category": cc.Category,
		"count":    cc.Count,
	}
}

// CollegeStats is the per-college overview returned by the stats endpoint.
// RecentUsers and RecentBooks are passed through without interpretation.
type CollegeStats struct {
	College         College
	TotalStudents   int
	TotalAdmins     int
	TotalBooks      int
	TotalUsers      int
	BooksByCategory []CategoryCount
	RecentUsers     []any
	RecentBooks     []any
}

func CollegeStatsFromJSON(doc Document) (CollegeStats, error) {
	r := newReader("CollegeStats", doc)

	college, err := CollegeFromJSON(r.requiredObject("college"))
	if r.err != nil {
		return CollegeStats{}, r.err
	}
	if err != nil {
		return CollegeStats{}, fieldError("CollegeStats", "college", err)
	}

	counts := newReader("CollegeStats.stats", r.object("stats"))
	stats := CollegeStats{
		College:       college,
		TotalStudents: counts.int("totalStudents"),
		TotalAdmins:   counts.int("totalAdmins"),
		TotalBooks:    counts.int("totalBooks"),
		TotalUsers:    counts.int("totalUsers"),
		RecentUsers:   r.list("recentUsers"),
		RecentBooks:   r.list("recentBooks"),
	}
	r.nested(counts.err)

	for _, item := range r.list("booksByCategory") {
		entry, ok := item.(map[string]any)
		if !ok {
			r.fail("booksByCategory", ErrInvalidField)
			break
		}
		cc, err := CategoryCountFromJSON(entry)
		if err != nil {
			r.nested(err)
			break
		}
		stats.BooksByCategory = append(stats.BooksByCategory, cc)
	}
	if stats.BooksByCategory == nil {
		stats.BooksByCategory = []CategoryCount{}
	}

	if r.err != nil {
		return CollegeStats{}, r.err
	}
	return stats, nil
}

// CollegeStatsUpdate replaces the fields that are set. Slices are copied, so
// nil keeps the current list and an empty slice clears it.
type CollegeStatsUpdate struct {
	College         *College
	TotalStudents   *int
	TotalAdmins     *int
	TotalBooks      *int
	TotalUsers      *int
	BooksByCategory []CategoryCount
	RecentUsers     []any
	RecentBooks     []any
}

func (s CollegeStats) CopyWith(u CollegeStatsUpdate) CollegeStats {
	out := s
	if u.College != nil {
		out.College = *u.College
	}
	if u.TotalStudents != nil {
		out.TotalStudents = *u.TotalStudents
	}
	if u.TotalAdmins != nil {
		out.TotalAdmins = *u.TotalAdmins
	}
	if u.TotalBooks != nil {
		out.TotalBooks = *u.TotalBooks
	}
	if u.TotalUsers != nil {
		out.TotalUsers = *u.TotalUsers
	}
	if u.BooksByCategory != nil {
		out.BooksByCategory = slices.Clone(u.BooksByCategory)
	}
	if u.RecentUsers != nil {
		out.RecentUsers = slices.Clone(u.RecentUsers)
	}
	if u.RecentBooks != nil {
		out.RecentBooks = slices.Clone(u.RecentBooks)
	}
	return out
}

func (s CollegeStats) ToJSON() Document {
	categories := make([]any, 0, len(s.BooksByCategory))
	for _, cc := range s.BooksByCategory {
		categories = append(categories, cc.ToJSON())
	}
	return Document{
		"college": s.College.ToJSON(),
		"stats": Document{
			"totalStudents": s.TotalStudents,
			"totalAdmins":   s.TotalAdmins,
			"totalBooks":    s.TotalBooks,
			"totalUsers":    s.TotalUsers,
		},
		"booksByCategory": categories,
		"recentUsers":     s.RecentUsers,
		"recentBooks":     s.RecentBooks,
	}
}

func (s CollegeStats) MarshalJSON() ([]byte, error) {
	return marshalDocument(s.ToJSON())
}

func (s *CollegeStats) UnmarshalJSON(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	parsed, err := CollegeStatsFromJSON(doc)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
