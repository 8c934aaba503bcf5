package models

import "time"

// Internship status values. Status is free text in the database; these are
// the values the application writes itself.
const (
	InternshipStatusPending  = "pending"
	InternshipStatusAccepted = "accepted"
	InternshipStatusRefused  = "refused"
)

// Internship defines the internship posting model based on the 'internships' table
type Internship struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	CompanyID    int64     `json:"companyId" db:"company_id"`
	CompanyName  string    `json:"companyName,omitempty"` // Resolved by joins, no db tag
	Location     string    `json:"location" db:"location"`
	Duration     string    `json:"duration" db:"duration"`
	ContractType string    `json:"contractType" db:"contract_type"`
	StartDate    time.Time `json:"startDate" db:"start_date"`
	EndDate      time.Time `json:"endDate" db:"end_date"`
	Status       string    `json:"status" db:"status"`
}

// ApplicationStatusPending is the default status of a new application.
const ApplicationStatusPending = "pending"

// Application defines a student's application to an internship
type Application struct {
	ID           int64  `json:"id" db:"id"`
	StudentID    int64  `json:"studentId" db:"student_id"`
	InternshipID int64  `json:"internshipId" db:"internship_id"`
	Message      string `json:"message" db:"message"`
	Status       string `json:"status" db:"status"`
}
