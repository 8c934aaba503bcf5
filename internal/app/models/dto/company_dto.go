package dto

import (
	"encoding/base64"

	"github.com/stagehub/stagehub/internal/app/models"
)

// CompanyForm is the multipart form payload for creating or updating a
// company. The optional image file travels alongside the form.
type CompanyForm struct {
	Name        string `form:"name" binding:"required"`
	Address     string `form:"address" binding:"required"`
	Contact     string `form:"contact" binding:"required"`
	Description string `form:"description"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail,omitempty"` // Base64-encoded JPEG
	UserID      *int64 `json:"userId,omitempty"`
}

// CreateCompanyResponse returns the created company and the generated
// one-time credentials of its linked user account
type CreateCompanyResponse struct {
	Company     CompanyResponse     `json:"company"`
	Credentials CredentialsResponse `json:"credentials"`
}

// FromCompany converts a models.Company to a CompanyResponse
func FromCompany(company *models.Company) CompanyResponse {
	if company == nil {
		return CompanyResponse{}
	}

	resp := CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Address:     company.Address,
		Contact:     company.Contact,
		Description: company.Description,
	}

	if company.User != nil {
		resp.UserID = &company.User.ID
	}

	if len(company.ThumbnailData) > 0 {
		resp.Thumbnail = base64.StdEncoding.EncodeToString(company.ThumbnailData)
	}

	return resp
}
