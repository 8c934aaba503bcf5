package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/app/repositories"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
	"github.com/stagehub/stagehub/internal/pkg/auth"
	"github.com/stagehub/stagehub/internal/pkg/helpers"
	"github.com/stagehub/stagehub/internal/pkg/imaging"
)

// StudentService defines the interface for student operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.CreateStudentResponse, error)
	GetStudents(ctx context.Context, page, size int) (*dto.PaginatedResponse, error)
	GetStudent(ctx context.Context, id int64) (*dto.StudentResponse, error)
	GetStudentImage(ctx context.Context, id int64) ([]byte, error)
	EditProfile(ctx context.Context, userID int64, username string, req *dto.EditStudentProfileRequest) (*dto.StudentResponse, error)
	UploadImage(ctx context.Context, userID int64, username string, image []byte) error
	DeleteStudent(ctx context.Context, id int64) error
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
	userRepo    repositories.IUserRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository, userRepo repositories.IUserRepository, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateStudent registers a student profile and provisions its login
// account. The generated plaintext password is returned once and never
// stored.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.CreateStudentResponse, error) {
	username, err := s.pickUsername(ctx, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	password, err := auth.GeneratePassword()
	if err != nil {
		return nil, fmt.Errorf("error generating password: %w", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	roleID, err := s.userRepo.GetRoleIDByName(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		LastName:    req.LastName,
		FirstName:   req.FirstName,
		Contact:     req.Contact,
		Cohort:      req.Cohort,
		SocialLinks: req.SocialLinks,
	}
	user := &models.User{
		Username: username,
		Email:    req.Contact,
		Password: hash,
		RoleID:   roleID,
	}

	if err := s.studentRepo.CreateWithUser(ctx, student, user); err != nil {
		if errors.Is(err, apperrors.ErrStudentAlreadyExists) {
			return nil, s.duplicateError(ctx, req)
		}
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Str("username", username).Msg("Student created")

	return &dto.CreateStudentResponse{
		Student: dto.FromStudent(student),
		Credentials: dto.CredentialsResponse{
			Username: username,
			Password: password,
		},
	}, nil
}

// pickUsername derives first.last and appends a counter while the name is
// taken. The unique constraint on users.username still backstops a race.
func (s *studentServiceImpl) pickUsername(ctx context.Context, firstName, lastName string) (string, error) {
	base := auth.BuildUsername(firstName, lastName)
	username := base
	for i := 2; ; i++ {
		taken, err := s.userRepo.UsernameExists(ctx, username)
		if err != nil {
			return "", err
		}
		if !taken {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, i)
	}
}

// duplicateError builds a conflict error echoing the identifying fields of
// the record the request collided with
func (s *studentServiceImpl) duplicateError(ctx context.Context, req *dto.CreateStudentRequest) error {
	conflict := apperrors.NewCustomError(apperrors.ErrStudentAlreadyExists, apperrors.ErrStudentAlreadyExists.Error())

	existing, err := s.studentRepo.FindByIdentity(ctx, req.LastName, req.FirstName, req.Contact)
	if err != nil {
		return conflict
	}

	return conflict.WithDetails(map[string]interface{}{
		"existing": dto.DuplicateStudentInfo{
			ID:        existing.ID,
			LastName:  existing.LastName,
			FirstName: existing.FirstName,
			Contact:   existing.Contact,
		},
	})
}

// GetStudents lists students with pagination
func (s *studentServiceImpl) GetStudents(ctx context.Context, page, size int) (*dto.PaginatedResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, total, err := s.studentRepo.GetAll(ctx, int(offset), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list students")
		return nil, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.FromStudent(student))
	}

	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// GetStudent retrieves one student by ID
func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromStudent(student)
	return &resp, nil
}

// GetStudentImage returns the stored full-size image bytes
func (s *studentServiceImpl) GetStudentImage(ctx context.Context, id int64) ([]byte, error) {
	return s.studentRepo.GetImage(ctx, id)
}

// resolveOwnProfile finds the caller's student record, first through the
// account link, then by matching the contact against the username for
// accounts created before the link existed.
func (s *studentServiceImpl) resolveOwnProfile(ctx context.Context, userID int64, username string) (*models.Student, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}
	return s.studentRepo.GetByContact(ctx, username)
}

// EditProfile lets a student update their own record. Nil fields keep
// their current value.
func (s *studentServiceImpl) EditProfile(ctx context.Context, userID int64, username string, req *dto.EditStudentProfileRequest) (*dto.StudentResponse, error) {
	student, err := s.resolveOwnProfile(ctx, userID, username)
	if err != nil {
		return nil, err
	}

	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.Cohort != nil {
		student.Cohort = *req.Cohort
	}
	if req.SocialLinks != nil {
		student.SocialLinks = *req.SocialLinks
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student profile updated")

	resp := dto.FromStudent(student)
	return &resp, nil
}

// UploadImage stores the caller's profile image and a generated thumbnail
func (s *studentServiceImpl) UploadImage(ctx context.Context, userID int64, username string, image []byte) error {
	student, err := s.resolveOwnProfile(ctx, userID, username)
	if err != nil {
		return err
	}

	thumbnail, err := imaging.Thumbnail(image)
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrBadRequest, "unsupported or corrupt image")
	}

	return s.studentRepo.UpdateImage(ctx, student.ID, image, thumbnail)
}

// DeleteStudent removes a student together with its login account
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.DeleteWithUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}
