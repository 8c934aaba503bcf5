package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/app/services"
	"github.com/stagehub/stagehub/internal/middleware"
	"github.com/stagehub/stagehub/internal/pkg/helpers"
)

// CompanyController handles company related operations
type CompanyController struct {
	companyService services.CompanyService
	logger         zerolog.Logger
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(companyService services.CompanyService, logger zerolog.Logger) *CompanyController {
	return &CompanyController{
		companyService: companyService,
		logger:         logger,
	}
}

// GetCompanies lists companies
// @Summary List companies
// @Description Returns companies with their thumbnails, paginated
// @Tags entreprises
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Companies"
// @Failure 403 {object} dto.ErrorResponse "Insufficient role"
// @Router /entreprises [get]
func (c *CompanyController) GetCompanies(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.companyService.GetCompanies(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetCompany retrieves one company
// @Summary Get a company
// @Tags entreprises
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyResponse} "Company"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /entreprises/{id} [get]
func (c *CompanyController) GetCompany(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.companyService.GetCompany(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetCompanyImage serves the stored full-size image
// @Summary Get a company's image
// @Tags entreprises
// @Produce jpeg
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {file} binary "Image bytes"
// @Failure 404 {object} dto.ErrorResponse "Company or image not found"
// @Router /entreprises/{id}/image [get]
func (c *CompanyController) GetCompanyImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	image, err := c.companyService.GetCompanyImage(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "image/jpeg", image)
}

// CreateCompany registers a company and provisions its account
// @Summary Create a company
// @Description Registers a company from a multipart form with an optional image, and auto-provisions a login account. The generated credentials are returned once.
// @Tags entreprises
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Company name"
// @Param address formData string true "Address"
// @Param contact formData string true "Contact"
// @Param description formData string false "Description"
// @Param image formData file false "Image file (JPEG, PNG or GIF)"
// @Success 201 {object} dto.APIResponse{data=dto.CreateCompanyResponse} "Company created with one-time credentials"
// @Failure 400 {object} dto.ErrorResponse "Invalid form"
// @Router /entreprises/create-Entreprise [post]
func (c *CompanyController) CreateCompany(ctx *gin.Context) {
	var form dto.CompanyForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	image, ok := readOptionalImageFile(ctx)
	if !ok {
		return
	}

	resp, err := c.companyService.CreateCompany(ctx.Request.Context(), &form, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// UpdateCompany replaces a company's editable fields
// @Summary Update a company
// @Description Replaces the company's fields from a multipart form; a provided image replaces the stored one
// @Tags entreprises
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Param name formData string true "Company name"
// @Param address formData string true "Address"
// @Param contact formData string true "Contact"
// @Param description formData string false "Description"
// @Param image formData file false "Image file (JPEG, PNG or GIF)"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyResponse} "Updated company"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /entreprises/edit-Entreprise/{id} [put]
func (c *CompanyController) UpdateCompany(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var form dto.CompanyForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	image, ok := readOptionalImageFile(ctx)
	if !ok {
		return
	}

	resp, err := c.companyService.UpdateCompany(ctx.Request.Context(), id, &form, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteCompany removes a company and its account
// @Summary Delete a company
// @Description Removes the company together with its linked login account and its internship postings
// @Tags entreprises
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse "Company deleted"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /entreprises/{id} [delete]
func (c *CompanyController) DeleteCompany(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.companyService.DeleteCompany(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Company deleted successfully"))
}

// readOptionalImageFile reads the "image" multipart file when present.
// A missing file is not an error; an unreadable one is.
func readOptionalImageFile(ctx *gin.Context) ([]byte, bool) {
	if _, err := ctx.FormFile("image"); err != nil {
		return nil, true
	}
	return readImageFile(ctx)
}
