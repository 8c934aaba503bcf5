package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/db"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
)

// ICompanyRepository defines the interface for company-related database operations
type ICompanyRepository interface {
	CreateWithUser(ctx context.Context, company *models.Company, user *models.User) error
	GetAll(ctx context.Context, offset, limit int) ([]*models.Company, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	UpdateImage(ctx context.Context, id int64, image, thumbnail []byte) error
	GetImage(ctx context.Context, id int64) ([]byte, error)
	DeleteWithUser(ctx context.Context, id int64) error
}

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	db *pgxpool.Pool
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// CreateWithUser inserts a company and its login account in one transaction.
// The unique index on lower(name) closes the duplicate race: a concurrent
// insert of the same name surfaces as a conflict instead of a second row.
func (r *CompanyRepository) CreateWithUser(ctx context.Context, company *models.Company, user *models.User) error {
	return db.RunInTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO companies (name, address, contact, description, image_data, thumbnail_data)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`,
			company.Name,
			company.Address,
			company.Contact,
			company.Description,
			company.ImageData,
			company.ThumbnailData,
		).Scan(&company.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewConflictError("a company with this name already exists")
			}
			return fmt.Errorf("error creating company: %w", err)
		}

		user.CompanyID = &company.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO users (username, email, password, role_id, company_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`,
			user.Username,
			user.Email,
			user.Password,
			user.RoleID,
			user.CompanyID,
		).Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrUsernameExists
			}
			return fmt.Errorf("error creating company account: %w", err)
		}

		company.User = user
		return nil
	})
}

// GetAll retrieves companies ordered by name, with the total count for pagination
func (r *CompanyRepository) GetAll(ctx context.Context, offset, limit int) ([]*models.Company, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting companies: %w", err)
	}

	query := `
		SELECT
			c.id, c.name, c.address, c.contact, c.description, c.thumbnail_data,
			u.id, u.username
		FROM companies c
		LEFT JOIN users u ON u.company_id = c.id
		ORDER BY lower(c.name), c.id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		company, err := scanCompanyWithUser(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, company)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating companies: %w", err)
	}

	return companies, total, nil
}

func scanCompanyWithUser(row pgx.Row) (*models.Company, error) {
	var company models.Company
	var userID *int64
	var username *string

	err := row.Scan(
		&company.ID,
		&company.Name,
		&company.Address,
		&company.Contact,
		&company.Description,
		&company.ThumbnailData,
		&userID,
		&username,
	)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		company.User = &models.User{ID: *userID}
		if username != nil {
			company.User.Username = *username
		}
	}

	return &company, nil
}

// GetByID retrieves a company by ID with its linked account
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := `
		SELECT
			c.id, c.name, c.address, c.contact, c.description, c.thumbnail_data,
			u.id, u.username
		FROM companies c
		LEFT JOIN users u ON u.company_id = c.id
		WHERE c.id = $1
	`

	company, err := scanCompanyWithUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}

	return company, nil
}

// GetByUserID retrieves the company profile linked to a user account
func (r *CompanyRepository) GetByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	query := `
		SELECT c.id, c.name, c.address, c.contact, c.description, c.thumbnail_data
		FROM companies c
		JOIN users u ON u.company_id = c.id
		WHERE u.id = $1
	`

	var company models.Company
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&company.ID,
		&company.Name,
		&company.Address,
		&company.Contact,
		&company.Description,
		&company.ThumbnailData,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}

	return &company, nil
}

// Update replaces the editable fields of a company
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE companies
		SET name = $1, address = $2, contact = $3, description = $4
		WHERE id = $5
	`,
		company.Name,
		company.Address,
		company.Contact,
		company.Description,
		company.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("a company with this name already exists")
		}
		return fmt.Errorf("error updating company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// UpdateImage stores a company's image and its thumbnail
func (r *CompanyRepository) UpdateImage(ctx context.Context, id int64, image, thumbnail []byte) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE companies SET image_data = $1, thumbnail_data = $2 WHERE id = $3`,
		image, thumbnail, id,
	)
	if err != nil {
		return fmt.Errorf("error updating company image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// GetImage retrieves the full-size image of a company
func (r *CompanyRepository) GetImage(ctx context.Context, id int64) ([]byte, error) {
	var image []byte
	err := r.db.QueryRow(ctx, `SELECT image_data FROM companies WHERE id = $1`, id).Scan(&image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company image: %w", err)
	}
	if len(image) == 0 {
		return nil, apperrors.ErrImageNotFound
	}
	return image, nil
}

// DeleteWithUser removes a company and its login account in one transaction.
// Internship postings of the company go with it through the cascading
// foreign key.
func (r *CompanyRepository) DeleteWithUser(ctx context.Context, id int64) error {
	return db.RunInTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM users WHERE company_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting company account: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting company: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrCompanyNotFound
		}
		return nil
	})
}
