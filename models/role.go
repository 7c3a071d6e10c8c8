package models

import "fmt"

// Role identifies which kind of account a token or login request belongs to.
type Role string

const (
	RoleTourist  Role = "tourist"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// ParseRole converts a raw role string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleTourist, RoleProvider, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	return string(r)
}
