package models

import "time"

const RoleStudent = "student"

type Student struct {
	ID          string
	FullName    string
	Email       string
	Phone       string
	Role        string
	CollegeID   *string
	CollegeName *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func StudentFromJSON(doc Document) (Student, error) {
	r := newReader("Student", doc)
	s := Student{
		ID:          r.requiredString("id"),
		FullName:    r.requiredString("fullName"),
		Email:       r.requiredString("email"),
		Phone:       r.string("phone", ""),
		Role:        r.string("role", RoleStudent),
		CollegeID:   r.optionalString("collegeId"),
		CollegeName: r.optionalString("collegeName"),
		IsActive:    r.bool("isActive", true),
		CreatedAt:   r.time("createdAt"),
		UpdatedAt:   r.time("updatedAt"),
	}
	if r.err != nil {
		return Student{}, r.err
	}
	return s, nil
}

func (s Student) ToJSON() Document {
	doc := Document{
		"id":        s.ID,
		"fullName":  s.FullName,
		"email":     s.Email,
		"phone":     s.Phone,
		"role":      s.Role,
		"isActive":  s.IsActive,
		"createdAt": formatTime(s.CreatedAt),
		"updatedAt": formatTime(s.UpdatedAt),
	}
	if s.CollegeID != nil {
		doc["collegeId"] = *s.CollegeID
	}
	if s.CollegeName != nil {
		doc["collegeName"] = *s.CollegeName
	}
	return doc
}

// Equal compares students by id only.
func (s Student) Equal(other Student) bool {
	return s.ID == other.ID
}

type StudentUpdate struct {
	FullName    *string
	Email       *string
	Phone       *string
	Role        *string
	CollegeID   *string
	CollegeName *string
	IsActive    *bool
	UpdatedAt   *time.Time
}

func (s Student) CopyWith(u StudentUpdate) Student {
	out := s
	if u.FullName != nil {
		out.FullName = *u.FullName
	}
	if u.Email != nil {
		out.Email = *u.Email
	}
	if u.Phone != nil {
		out.Phone = *u.Phone
	}
	if u.Role != nil {
		out.Role = *u.Role
	}
	if u.CollegeID != nil {
		id := *u.CollegeID
		out.CollegeID = &id
	}
	if u.CollegeName != nil {
		name := *u.CollegeName
		out.CollegeName = &name
	}
	if u.IsActive != nil {
		out.IsActive = *u.IsActive
	}
	if u.UpdatedAt != nil {
		out.UpdatedAt = *u.UpdatedAt
	}
	return out
}

func (s Student) MarshalJSON() ([]byte, error) {
	return marshalDocument(s.ToJSON())
}

func (s *Student) UnmarshalJSON(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	parsed, err := StudentFromJSON(doc)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
