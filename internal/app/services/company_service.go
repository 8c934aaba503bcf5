package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/app/repositories"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
	"github.com/stagehub/stagehub/internal/pkg/auth"
	"github.com/stagehub/stagehub/internal/pkg/helpers"
	"github.com/stagehub/stagehub/internal/pkg/imaging"
)

// CompanyService defines the interface for company operations
type CompanyService interface {
	CreateCompany(ctx context.Context, form *dto.CompanyForm, image []byte) (*dto.CreateCompanyResponse, error)
	GetCompanies(ctx context.Context, page, size int) (*dto.PaginatedResponse, error)
	GetCompany(ctx context.Context, id int64) (*dto.CompanyResponse, error)
	GetCompanyImage(ctx context.Context, id int64) ([]byte, error)
	UpdateCompany(ctx context.Context, id int64, form *dto.CompanyForm, image []byte) (*dto.CompanyResponse, error)
	DeleteCompany(ctx context.Context, id int64) error
}

// companyServiceImpl implements CompanyService
type companyServiceImpl struct {
	companyRepo repositories.ICompanyRepository
	userRepo    repositories.IUserRepository
	logger      zerolog.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo repositories.ICompanyRepository, userRepo repositories.IUserRepository, logger zerolog.Logger) CompanyService {
	return &companyServiceImpl{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateCompany registers a company and provisions its login account. The
// optional image is stored with a generated thumbnail.
func (s *companyServiceImpl) CreateCompany(ctx context.Context, form *dto.CompanyForm, image []byte) (*dto.CreateCompanyResponse, error) {
	username, err := s.pickUsername(ctx, form.Name)
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

	roleID, err := s.userRepo.GetRoleIDByName(ctx, models.RoleCompany)
	if err != nil {
		return nil, err
	}

	company := &models.Company{
		Name:        form.Name,
		Address:     form.Address,
		Contact:     form.Contact,
		Description: form.Description,
	}

	if len(image) > 0 {
		thumbnail, err := imaging.Thumbnail(image)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "unsupported or corrupt image")
		}
		company.ImageData = image
		company.ThumbnailData = thumbnail
	}

	user := &models.User{
		Username: username,
		Email:    form.Contact,
		Password: hash,
		RoleID:   roleID,
	}

	if err := s.companyRepo.CreateWithUser(ctx, company, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("companyID", company.ID).Str("username", username).Msg("Company created")

	return &dto.CreateCompanyResponse{
		Company: dto.FromCompany(company),
		Credentials: dto.CredentialsResponse{
			Username: username,
			Password: password,
		},
	}, nil
}

// pickUsername slugs the company name and appends a counter while the name
// is taken
func (s *companyServiceImpl) pickUsername(ctx context.Context, name string) (string, error) {
	base := strings.ToLower(strings.Join(strings.Fields(name), "."))
	if base == "" {
		base = "company"
	}
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

// GetCompanies lists companies with pagination
func (s *companyServiceImpl) GetCompanies(ctx context.Context, page, size int) (*dto.PaginatedResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	companies, total, err := s.companyRepo.GetAll(ctx, int(offset), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list companies")
		return nil, err
	}

	items := make([]dto.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		items = append(items, dto.FromCompany(company))
	}

	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// GetCompany retrieves one company by ID
func (s *companyServiceImpl) GetCompany(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromCompany(company)
	return &resp, nil
}

// GetCompanyImage returns the stored full-size image bytes
func (s *companyServiceImpl) GetCompanyImage(ctx context.Context, id int64) ([]byte, error) {
	return s.companyRepo.GetImage(ctx, id)
}

// UpdateCompany replaces a company's editable fields and, when a new image
// is provided, its image and thumbnail
func (s *companyServiceImpl) UpdateCompany(ctx context.Context, id int64, form *dto.CompanyForm, image []byte) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	company.Name = form.Name
	company.Address = form.Address
	company.Contact = form.Contact
	company.Description = form.Description

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	if len(image) > 0 {
		thumbnail, err := imaging.Thumbnail(image)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "unsupported or corrupt image")
		}
		if err := s.companyRepo.UpdateImage(ctx, id, image, thumbnail); err != nil {
			return nil, err
		}
		company.ThumbnailData = thumbnail
	}

	s.logger.Info().Int64("companyID", id).Msg("Company updated")

	resp := dto.FromCompany(company)
	return &resp, nil
}

// DeleteCompany removes a company together with its login account
func (s *companyServiceImpl) DeleteCompany(ctx context.Context, id int64) error {
	if err := s.companyRepo.DeleteWithUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("companyID", id).Msg("Company deleted")
	return nil
}
