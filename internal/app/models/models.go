package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleStudent RoleType = "STUDENT"
	RoleCompany RoleType = "COMPANY"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleCompany:
		return true
	}
	return false
}

// Role defines a row of the 'roles' table. Roles are seeded at startup.
type Role struct {
	ID   int64    `json:"id" db:"id"`
	Name RoleType `json:"name" db:"name"`
}
