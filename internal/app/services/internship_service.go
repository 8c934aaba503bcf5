package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/app/repositories"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
	"github.com/stagehub/stagehub/internal/pkg/helpers"
)

// InternshipService defines the interface for internship operations
type InternshipService interface {
	CreateInternship(ctx context.Context, req *dto.InternshipRequest) (*dto.InternshipResponse, error)
	GetInternships(ctx context.Context, filter *dto.InternshipFilter, page, size int) (*dto.PaginatedResponse, error)
	GetInternship(ctx context.Context, id int64) (*dto.InternshipResponse, error)
	UpdateInternship(ctx context.Context, id int64, req *dto.InternshipRequest) (*dto.InternshipResponse, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	DeleteInternship(ctx context.Context, id int64) error
	Apply(ctx context.Context, caller Caller, internshipID int64, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	GetApplications(ctx context.Context, internshipID int64) ([]dto.ApplicationResponse, error)
}

// internshipServiceImpl implements InternshipService
type internshipServiceImpl struct {
	internshipRepo repositories.IInternshipRepository
	companyRepo    repositories.ICompanyRepository
	studentRepo    repositories.IStudentRepository
	logger         zerolog.Logger
}

// NewInternshipService creates a new InternshipService
func NewInternshipService(
	internshipRepo repositories.IInternshipRepository,
	companyRepo repositories.ICompanyRepository,
	studentRepo repositories.IStudentRepository,
	logger zerolog.Logger,
) InternshipService {
	return &internshipServiceImpl{
		internshipRepo: internshipRepo,
		companyRepo:    companyRepo,
		studentRepo:    studentRepo,
		logger:         logger,
	}
}

// CreateInternship publishes a new internship posting for an existing company
func (s *internshipServiceImpl) CreateInternship(ctx context.Context, req *dto.InternshipRequest) (*dto.InternshipResponse, error) {
	company, err := s.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	internship := &models.Internship{
		Title:        req.Title,
		Description:  req.Description,
		CompanyID:    req.CompanyID,
		CompanyName:  company.Name,
		Location:     req.Location,
		Duration:     req.Duration,
		ContractType: req.ContractType,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       req.Status,
	}
	if internship.Status == "" {
		internship.Status = models.InternshipStatusPending
	}

	if err := s.internshipRepo.Create(ctx, internship); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("internshipID", internship.ID).Int64("companyID", req.CompanyID).Msg("Internship created")

	resp := dto.FromInternship(internship)
	return &resp, nil
}

// GetInternships lists internships with optional filters and pagination
func (s *internshipServiceImpl) GetInternships(ctx context.Context, filter *dto.InternshipFilter, page, size int) (*dto.PaginatedResponse, error) {
	if filter == nil {
		filter = &dto.InternshipFilter{}
	}
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	internships, total, err := s.internshipRepo.GetAll(ctx, filter.Status, filter.CompanyID, filter.StudentID, int(offset), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list internships")
		return nil, err
	}

	items := make([]dto.InternshipResponse, 0, len(internships))
	for _, internship := range internships {
		items = append(items, dto.FromInternship(internship))
	}

	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// GetInternship retrieves one internship by ID
func (s *internshipServiceImpl) GetInternship(ctx context.Context, id int64) (*dto.InternshipResponse, error) {
	internship, err := s.internshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromInternship(internship)
	return &resp, nil
}

// UpdateInternship replaces the editable fields of a posting
func (s *internshipServiceImpl) UpdateInternship(ctx context.Context, id int64, req *dto.InternshipRequest) (*dto.InternshipResponse, error) {
	internship, err := s.internshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CompanyID != internship.CompanyID {
		if _, err := s.companyRepo.GetByID(ctx, req.CompanyID); err != nil {
			return nil, err
		}
	}

	internship.Title = req.Title
	internship.Description = req.Description
	internship.CompanyID = req.CompanyID
	internship.Location = req.Location
	internship.Duration = req.Duration
	internship.ContractType = req.ContractType
	internship.StartDate = req.StartDate
	internship.EndDate = req.EndDate

	if err := s.internshipRepo.Update(ctx, internship); err != nil {
		return nil, err
	}

	updated, err := s.internshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromInternship(updated)
	return &resp, nil
}

// UpdateStatus patches the status of a posting
func (s *internshipServiceImpl) UpdateStatus(ctx context.Context, id int64, status string) error {
	if err := s.internshipRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info().Int64("internshipID", id).Str("status", status).Msg("Internship status updated")
	return nil
}

// DeleteInternship removes a posting and its applications
func (s *internshipServiceImpl) DeleteInternship(ctx context.Context, id int64) error {
	if err := s.internshipRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("internshipID", id).Msg("Internship deleted")
	return nil
}

// Apply files a student's application to an internship. Student callers
// always apply as themselves; only admins can file for an arbitrary student.
func (s *internshipServiceImpl) Apply(ctx context.Context, caller Caller, internshipID int64, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	if _, err := s.internshipRepo.GetByID(ctx, internshipID); err != nil {
		return nil, err
	}

	studentID := req.StudentID
	if caller.Role == models.RoleStudent {
		own, err := s.resolveCallerStudent(ctx, caller)
		if err != nil {
			return nil, err
		}
		if studentID != 0 && studentID != own.ID {
			return nil, apperrors.NewForbiddenError("students can only apply for themselves")
		}
		studentID = own.ID
	} else {
		if studentID == 0 {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "studentId is required")
		}
		if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
			return nil, err
		}
	}

	application := &models.Application{
		StudentID:    studentID,
		InternshipID: internshipID,
		Message:      req.Message,
		Status:       models.ApplicationStatusPending,
	}

	if err := s.internshipRepo.CreateApplication(ctx, application); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("internshipID", internshipID).
		Int64("studentID", studentID).
		Msg("Application filed")

	resp := dto.FromApplication(application)
	return &resp, nil
}

// resolveCallerStudent finds the student record behind a student-role caller,
// first through the account link, then by matching the contact against the
// username for accounts created before the link existed.
func (s *internshipServiceImpl) resolveCallerStudent(ctx context.Context, caller Caller) (*models.Student, error) {
	student, err := s.studentRepo.GetByUserID(ctx, caller.UserID)
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}
	return s.studentRepo.GetByContact(ctx, caller.Username)
}

// GetApplications lists the applications to an internship
func (s *internshipServiceImpl) GetApplications(ctx context.Context, internshipID int64) ([]dto.ApplicationResponse, error) {
	if _, err := s.internshipRepo.GetByID(ctx, internshipID); err != nil {
		return nil, err
	}

	applications, err := s.internshipRepo.GetApplicationsByInternship(ctx, internshipID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		items = append(items, dto.FromApplication(application))
	}
	return items, nil
}
