package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/app/services"
	"github.com/stagehub/stagehub/internal/middleware"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
	"github.com/stagehub/stagehub/internal/pkg/helpers"
)

// InternshipController handles internship posting and application operations
type InternshipController struct {
	internshipService services.InternshipService
	logger            zerolog.Logger
}

// NewInternshipController creates a new InternshipController
func NewInternshipController(internshipService services.InternshipService, logger zerolog.Logger) *InternshipController {
	return &InternshipController{
		internshipService: internshipService,
		logger:            logger,
	}
}

// GetInternships lists internship postings
// @Summary List internships
// @Description Returns internships with optional status, company and applicant filters, paginated
// @Tags stages
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param companyId query int false "Filter by company"
// @Param studentId query int false "Filter to postings the student applied to"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Internships"
// @Router /stages [get]
func (c *InternshipController) GetInternships(ctx *gin.Context) {
	filter := &dto.InternshipFilter{Status: ctx.Query("status")}
	if raw := ctx.Query("companyId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid companyId parameter").WithField("companyId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.CompanyID = &id
	}
	if raw := ctx.Query("studentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid studentId parameter").WithField("studentId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.StudentID = &id
	}

	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.internshipService.GetInternships(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetInternship retrieves one internship
// @Summary Get an internship
// @Tags stages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Success 200 {object} dto.APIResponse{data=dto.InternshipResponse} "Internship"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /stages/{id} [get]
func (c *InternshipController) GetInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.internshipService.GetInternship(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateInternship publishes a posting
// @Summary Create an internship
// @Tags stages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InternshipRequest true "Internship posting"
// @Success 201 {object} dto.APIResponse{data=dto.InternshipResponse} "Internship created"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /stages [post]
func (c *InternshipController) CreateInternship(ctx *gin.Context) {
	var req dto.InternshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.internshipService.CreateInternship(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// UpdateInternship replaces a posting's fields
// @Summary Update an internship
// @Tags stages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param request body dto.InternshipRequest true "Internship posting"
// @Success 200 {object} dto.APIResponse{data=dto.InternshipResponse} "Updated internship"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /stages/{id} [put]
func (c *InternshipController) UpdateInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.InternshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.internshipService.UpdateInternship(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateStatus patches a posting's status
// @Summary Update an internship's status
// @Tags stages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param request body dto.UpdateInternshipStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse "Status updated"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /stages/{id}/status [patch]
func (c *InternshipController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateInternshipStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.internshipService.UpdateStatus(ctx.Request.Context(), id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Internship status updated successfully"))
}

// DeleteInternship removes a posting
// @Summary Delete an internship
// @Description Removes the posting together with its applications
// @Tags stages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Success 200 {object} dto.APIResponse "Internship deleted"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /stages/{id} [delete]
func (c *InternshipController) DeleteInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.internshipService.DeleteInternship(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Internship deleted successfully"))
}

// Apply files an application to a posting
// @Summary Apply to an internship
// @Tags stages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param request body dto.ApplyRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application filed"
// @Failure 403 {object} dto.ErrorResponse "Students can only apply for themselves"
// @Failure 404 {object} dto.ErrorResponse "Internship or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already applied"
// @Router /stages/{id}/apply [post]
func (c *InternshipController) Apply(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}
	callerUsername, _ := middleware.CallerUsername(ctx)
	callerRole, _ := middleware.CallerRole(ctx)

	caller := services.Caller{UserID: callerID, Username: callerUsername, Role: callerRole}
	resp, err := c.internshipService.Apply(ctx.Request.Context(), caller, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetApplications lists applications to a posting
// @Summary List an internship's applications
// @Tags stages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applications"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /stages/{id}/applications [get]
func (c *InternshipController) GetApplications(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.internshipService.GetApplications(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
