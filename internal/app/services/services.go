package services

import "github.com/stagehub/stagehub/internal/app/models"

// Services defined in this package:
// - AuthService: login and password rotation
// - StudentService: student profiles and account provisioning
// - CompanyService: company profiles and account provisioning
// - InternshipService: internship postings and applications
// - MessagingService: private conversations between users

// Caller identifies the authenticated user behind a request, as resolved by
// the auth middleware.
type Caller struct {
	UserID   int64
	Username string
	Role     models.RoleType
}
