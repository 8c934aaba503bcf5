package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/app/services"
	"github.com/stagehub/stagehub/internal/middleware"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
	"github.com/stagehub/stagehub/internal/pkg/helpers"
)

// StudentController handles student related operations
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// GetStudents lists students
// @Summary List students
// @Description Returns students with their usernames and thumbnails, paginated
// @Tags etudiants
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Students"
// @Failure 403 {object} dto.ErrorResponse "Insufficient role"
// @Router /etudiants [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.studentService.GetStudents(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetStudent retrieves one student
// @Summary Get a student
// @Tags etudiants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /etudiants/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetStudentImage serves the stored full-size image
// @Summary Get a student's image
// @Tags etudiants
// @Produce jpeg
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {file} binary "Image bytes"
// @Failure 404 {object} dto.ErrorResponse "Student or image not found"
// @Router /etudiants/{id}/image [get]
func (c *StudentController) GetStudentImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	image, err := c.studentService.GetStudentImage(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "image/jpeg", image)
}

// CreateStudent registers a student and provisions its account
// @Summary Create a student
// @Description Registers a student profile and auto-provisions a login account. The generated credentials are returned once.
// @Tags etudiants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.CreateStudentResponse} "Student created with one-time credentials"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "A student with the same name and contact already exists"
// @Router /etudiants/create-etudiant [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.studentService.CreateStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// EditProfile updates the caller's own student profile
// @Summary Edit own profile
// @Description Updates the caller's student profile. Absent fields keep their current value.
// @Tags etudiants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EditStudentProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Updated profile"
// @Failure 404 {object} dto.ErrorResponse "No student profile for the caller"
// @Router /etudiants/edit-profile [put]
func (c *StudentController) EditProfile(ctx *gin.Context) {
	var req dto.EditStudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	callerID, ok := middleware.CallerID(ctx)
	username, ok2 := middleware.CallerUsername(ctx)
	if !ok || !ok2 {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	resp, err := c.studentService.EditProfile(ctx.Request.Context(), callerID, username, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UploadImage stores the caller's profile image
// @Summary Upload own profile image
// @Tags etudiants
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (JPEG, PNG or GIF)"
// @Success 200 {object} dto.APIResponse "Image stored"
// @Failure 400 {object} dto.ErrorResponse "Missing or unreadable image"
// @Router /etudiants/edit-profile/image [post]
func (c *StudentController) UploadImage(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	username, ok2 := middleware.CallerUsername(ctx)
	if !ok || !ok2 {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	image, ok := readImageFile(ctx)
	if !ok {
		return
	}

	if err := c.studentService.UploadImage(ctx.Request.Context(), callerID, username, image); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Image stored successfully"))
}

// DeleteStudent removes a student and its account
// @Summary Delete a student
// @Description Removes the student together with its linked login account
// @Tags etudiants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /etudiants/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student deleted successfully"))
}

// readImageFile reads the "image" multipart file or responds 400
func readImageFile(ctx *gin.Context) ([]byte, bool) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Image file is required").WithField("image")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Unable to read image file").WithField("image")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Unable to read image file").WithField("image")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	return image, true
}
