package dto

import (
	"time"

	"github.com/stagehub/stagehub/internal/app/models"
)

// InternshipRequest creates or updates an internship posting
type InternshipRequest struct {
	Title        string    `json:"title" binding:"required,max=100"`
	Description  string    `json:"description"`
	CompanyID    int64     `json:"companyId" binding:"required"`
	Location     string    `json:"location"`
	Duration     string    `json:"duration"`
	ContractType string    `json:"contractType" binding:"required"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
}

// UpdateInternshipStatusRequest patches the status field only
type UpdateInternshipStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InternshipResponse represents an internship posting in API responses
type InternshipResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CompanyID    int64     `json:"companyId"`
	CompanyName  string    `json:"companyName,omitempty"`
	Location     string    `json:"location"`
	Duration     string    `json:"duration"`
	ContractType string    `json:"contractType"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
}

// InternshipFilter narrows internship listings
type InternshipFilter struct {
	Status    string
	CompanyID *int64
	StudentID *int64
}

// ApplyRequest is a student's application to an internship
// ApplyRequest files an application. StudentID is only honored for admin
// callers; students always apply as themselves.
type ApplyRequest struct {
	StudentID int64  `json:"studentId"`
	Message   string `json:"message"`
}

// ApplicationResponse represents an application in API responses
type ApplicationResponse struct {
	ID           int64  `json:"id"`
	StudentID    int64  `json:"studentId"`
	InternshipID int64  `json:"internshipId"`
	Message      string `json:"message"`
	Status       string `json:"status"`
}

// FromInternship converts a models.Internship to an InternshipResponse
func FromInternship(internship *models.Internship) InternshipResponse {
	if internship == nil {
		return InternshipResponse{}
	}

	return InternshipResponse{
		ID:           internship.ID,
		Title:        internship.Title,
		Description:  internship.Description,
		CompanyID:    internship.CompanyID,
		CompanyName:  internship.CompanyName,
		Location:     internship.Location,
		Duration:     internship.Duration,
		ContractType: internship.ContractType,
		StartDate:    internship.StartDate,
		EndDate:      internship.EndDate,
		Status:       internship.Status,
	}
}

// FromApplication converts a models.Application to an ApplicationResponse
func FromApplication(application *models.Application) ApplicationResponse {
	if application == nil {
		return ApplicationResponse{}
	}

	return ApplicationResponse{
		ID:           application.ID,
		StudentID:    application.StudentID,
		InternshipID: application.InternshipID,
		Message:      application.Message,
		Status:       application.Status,
	}
}
