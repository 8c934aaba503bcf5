package dto

import (
	"encoding/base64"

	"github.com/stagehub/stagehub/internal/app/models"
)

// CreateStudentRequest provisions a student profile plus a linked user account
type CreateStudentRequest struct {
	LastName    string `json:"lastName" binding:"required"`
	FirstName   string `json:"firstName" binding:"required"`
	Contact     string `json:"contact" binding:"required"`
	Cohort      string `json:"cohort"`
	SocialLinks string `json:"socialLinks"`
}

// EditStudentProfileRequest is the self-service subset of editable fields.
// Nil fields are left untouched.
type EditStudentProfileRequest struct {
	LastName    *string `json:"lastName"`
	FirstName   *string `json:"firstName"`
	Cohort      *string `json:"cohort"`
	SocialLinks *string `json:"socialLinks"`
}

// StudentResponse represents a student in API responses
type StudentResponse struct {
	ID          int64  `json:"id"`
	LastName    string `json:"lastName"`
	FirstName   string `json:"firstName"`
	Contact     string `json:"contact"`
	Cohort      string `json:"cohort"`
	SocialLinks string `json:"socialLinks"`
	Username    string `json:"username,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"` // Base64-encoded JPEG
}

// CreateStudentResponse returns the created profile and the generated
// one-time credentials
type CreateStudentResponse struct {
	Student     StudentResponse     `json:"student"`
	Credentials CredentialsResponse `json:"credentials"`
}

// DuplicateStudentInfo echoes the identifying fields of an existing record
// when a creation request collides with it
type DuplicateStudentInfo struct {
	ID        int64  `json:"id"`
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
	Contact   string `json:"contact"`
}

// FromStudent converts a models.Student to a StudentResponse
func FromStudent(student *models.Student) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}

	resp := StudentResponse{
		ID:          student.ID,
		LastName:    student.LastName,
		FirstName:   student.FirstName,
		Contact:     student.Contact,
		Cohort:      student.Cohort,
		SocialLinks: student.SocialLinks,
	}

	if student.User != nil {
		resp.Username = student.User.Username
	}

	if len(student.ThumbnailData) > 0 {
		resp.Thumbnail = base64.StdEncoding.EncodeToString(student.ThumbnailData)
	}

	return resp
}
