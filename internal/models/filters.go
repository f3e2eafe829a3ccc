package models

// CollegeFilters narrows the colleges list. The zero value applies no filter.
type CollegeFilters struct {
	Search *string `json:"search,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (f CollegeFilters) HasFilters() bool {
	return f.Search != nil || f.Status != nil
}

func (f CollegeFilters) ToQueryParams() map[string]string {
	params := map[string]string{}
	putParam(params, "search", f.Search)
	putParam(params, "status", f.Status)
	return params
}

func (f CollegeFilters) CopyWith(search, status *string) CollegeFilters {
	out := f
	if search != nil {
		out.Search = cloneString(search)
	}
	if status != nil {
		out.Status = cloneString(status)
	}
	return out
}

func (f CollegeFilters) Clear() CollegeFilters {
	return CollegeFilters{}
}

// StudentFilters narrows the students list. The zero value applies no filter.
type StudentFilters struct {
	Search    *string `json:"search,omitempty"`
	CollegeID *string `json:"collegeId,omitempty"`
}

func (f StudentFilters) HasFilters() bool {
	return f.Search != nil || f.CollegeID != nil
}

func (f StudentFilters) ToQueryParams() map[string]string {
	params := map[string]string{}
	putParam(params, "search", f.Search)
	putParam(params, "collegeId", f.CollegeID)
	return params
}

func (f StudentFilters) CopyWith(search, collegeID *string) StudentFilters {
	out := f
	if search != nil {
		out.Search = cloneString(search)
	}
	if collegeID != nil {
		out.CollegeID = cloneString(collegeID)
	}
	return out
}

func (f StudentFilters) Clear() StudentFilters {
	return StudentFilters{}
}

func putParam(params map[string]string, key string, value *string) {
	if value != nil && *value != "" {
		params[key] = *value
	}
}

func cloneString(s *string) *string {
	v := *s
	return &v
}

// StringPtr returns nil for an empty string, a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
