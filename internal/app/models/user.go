package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                  // Unique identifier for the user
	Username  string    `json:"username" db:"username" example:"jean.dupont"`            // Login name, effectively unique
	Email     string    `json:"email" db:"email" example:"jean@example.com"`             // User's email address
	Password  string    `json:"-" db:"password"`                                         // Hashed password (excluded from JSON)
	RoleID    int64     `json:"roleId" db:"role_id" example:"2"`                         // Reference to the roles table
	RoleName  RoleType  `json:"roleName,omitempty" example:"STUDENT"`                    // Resolved role name, populated by joins
	StudentID *int64    `json:"studentId,omitempty" db:"student_id"`                     // Linked student profile, nullable
	CompanyID *int64    `json:"companyId,omitempty" db:"company_id"`                     // Linked company profile, nullable
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`
}
