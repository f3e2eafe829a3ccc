// Package access answers whether the signed-in admin may modify a resource.
package access

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleSubAdmin   = "sub_admin"

	ResourceStudents = "students"
	ResourceColleges = "colleges"
	ResourceBooks    = "books"

	// Wildcard grants write access to every resource.
	Wildcard = "*"
)

// Policy maps a role to the resources it may modify.
type Policy map[string][]string

func DefaultPolicy() Policy {
	return Policy{
		RoleSuperAdmin: {Wildcard},
		RoleAdmin:      {ResourceStudents, ResourceBooks, ResourceColleges},
		RoleSubAdmin:   {ResourceStudents, ResourceBooks},
	}
}

type RoleAccess struct {
	role   string
	policy Policy
}

func New(role string, policy Policy) *RoleAccess {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &RoleAccess{role: strings.ToLower(strings.TrimSpace(role)), policy: policy}
}

// FromToken reads the role claim of the session token. The signature is not
// checked here: the backend verifies it on every call, the claim only decides
// what the client offers.
func FromToken(token string, policy Policy) (*RoleAccess, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	return New(roleClaim(claims), policy), nil
}

func roleClaim(claims jwt.MapClaims) string {
	if role, ok := claims["role"].(string); ok {
		return role
	}
	if roles, ok := claims["roles"].([]any); ok && len(roles) > 0 {
		if role, ok := roles[0].(string); ok {
			return role
		}
	}
	return ""
}

func (a *RoleAccess) Role() string {
	return a.role
}

func (a *RoleAccess) CanModify(resource string) bool {
	for _, allowed := range a.policy[a.role] {
		if allowed == Wildcard || allowed == resource {
			return true
		}
	}
	return false
}
