package enums

import "fmt"

// AdminRole is a back-office role carried in access tokens.
type AdminRole string

const (
	AdminRoleAdmin  AdminRole = "admin"
	AdminRoleEditor AdminRole = "editor"
)

var validAdminRoles = []AdminRole{
	AdminRoleAdmin,
	AdminRoleEditor,
}

// String implements fmt.Stringer.
func (a AdminRole) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AdminRole.
func (a AdminRole) IsValid() bool {
	for _, candidate := range validAdminRoles {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAdminRole converts raw input into an AdminRole.
func ParseAdminRole(value string) (AdminRole, error) {
	for _, candidate := range validAdminRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin role %q", value)
}
