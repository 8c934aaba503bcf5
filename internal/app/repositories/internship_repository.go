package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
)

// IInternshipRepository defines the interface for internship-related database operations
type IInternshipRepository interface {
	Create(ctx context.Context, internship *models.Internship) error
	GetAll(ctx context.Context, status string, companyID, studentID *int64, offset, limit int) ([]*models.Internship, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Internship, error)
	Update(ctx context.Context, internship *models.Internship) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	CreateApplication(ctx context.Context, application *models.Application) error
	GetApplicationsByInternship(ctx context.Context, internshipID int64) ([]*models.Application, error)
	GetApplicationsByStudent(ctx context.Context, studentID int64) ([]*models.Application, error)
}

// InternshipRepository handles database operations for internship postings
// and applications
type InternshipRepository struct {
	db *pgxpool.Pool
}

// NewInternshipRepository creates a new InternshipRepository
func NewInternshipRepository(db *pgxpool.Pool) *InternshipRepository {
	return &InternshipRepository{db: db}
}

// Create inserts a new internship posting
func (r *InternshipRepository) Create(ctx context.Context, internship *models.Internship) error {
	query := `
		INSERT INTO internships (
			title, description, company_id, location, duration, contract_type,
			start_date, end_date, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		internship.Title,
		internship.Description,
		internship.CompanyID,
		internship.Location,
		internship.Duration,
		internship.ContractType,
		internship.StartDate,
		internship.EndDate,
		internship.Status,
	).Scan(&internship.ID)
	if err != nil {
		return fmt.Errorf("error creating internship: %w", err)
	}

	return nil
}

// GetAll retrieves internships with optional status, company and applicant
// filters, newest first. The student filter narrows to postings the student
// has applied to.
func (r *InternshipRepository) GetAll(ctx context.Context, status string, companyID, studentID *int64, offset, limit int) ([]*models.Internship, int64, error) {
	countBuilder := squirrel.Select("COUNT(*)").
		From("internships i").
		PlaceholderFormat(squirrel.Dollar)

	queryBuilder := squirrel.Select(
		"i.id", "i.title", "i.description", "i.company_id", "c.name",
		"i.location", "i.duration", "i.contract_type",
		"i.start_date", "i.end_date", "i.status",
	).
		From("internships i").
		Join("companies c ON i.company_id = c.id").
		OrderBy("i.id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if status != "" {
		countBuilder = countBuilder.Where("i.status = ?", status)
		queryBuilder = queryBuilder.Where("i.status = ?", status)
	}
	if companyID != nil {
		countBuilder = countBuilder.Where("i.company_id = ?", *companyID)
		queryBuilder = queryBuilder.Where("i.company_id = ?", *companyID)
	}
	if studentID != nil {
		countBuilder = countBuilder.
			Join("applications a ON a.internship_id = i.id").
			Where("a.student_id = ?", *studentID)
		queryBuilder = queryBuilder.
			Join("applications a ON a.internship_id = i.id").
			Where("a.student_id = ?", *studentID)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting internships: %w", err)
	}

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing internships: %w", err)
	}
	defer rows.Close()

	var internships []*models.Internship
	for rows.Next() {
		var internship models.Internship
		err := rows.Scan(
			&internship.ID,
			&internship.Title,
			&internship.Description,
			&internship.CompanyID,
			&internship.CompanyName,
			&internship.Location,
			&internship.Duration,
			&internship.ContractType,
			&internship.StartDate,
			&internship.EndDate,
			&internship.Status,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning internship row: %w", err)
		}
		internships = append(internships, &internship)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating internships: %w", err)
	}

	return internships, total, nil
}

// GetByID retrieves an internship by ID with its company name resolved
func (r *InternshipRepository) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	query := `
		SELECT
			i.id, i.title, i.description, i.company_id, c.name,
			i.location, i.duration, i.contract_type,
			i.start_date, i.end_date, i.status
		FROM internships i
		JOIN companies c ON i.company_id = c.id
		WHERE i.id = $1
	`

	var internship models.Internship
	err := r.db.QueryRow(ctx, query, id).Scan(
		&internship.ID,
		&internship.Title,
		&internship.Description,
		&internship.CompanyID,
		&internship.CompanyName,
		&internship.Location,
		&internship.Duration,
		&internship.ContractType,
		&internship.StartDate,
		&internship.EndDate,
		&internship.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInternshipNotFound
		}
		return nil, fmt.Errorf("error retrieving internship: %w", err)
	}

	return &internship, nil
}

// Update replaces the editable fields of an internship posting
func (r *InternshipRepository) Update(ctx context.Context, internship *models.Internship) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE internships
		SET title = $1, description = $2, company_id = $3, location = $4,
			duration = $5, contract_type = $6, start_date = $7, end_date = $8
		WHERE id = $9
	`,
		internship.Title,
		internship.Description,
		internship.CompanyID,
		internship.Location,
		internship.Duration,
		internship.ContractType,
		internship.StartDate,
		internship.EndDate,
		internship.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating internship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}

// UpdateStatus sets the status of an internship posting
func (r *InternshipRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE internships SET status = $1 WHERE id = $2`, status, id,
	)
	if err != nil {
		return fmt.Errorf("error updating internship status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}

// Delete removes an internship posting and, through the cascading foreign
// key, its applications
func (r *InternshipRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM internships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting internship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}

// CreateApplication records a student's application to an internship. The
// unique index on (student_id, internship_id) rejects a second application
// by the same student.
func (r *InternshipRepository) CreateApplication(ctx context.Context, application *models.Application) error {
	query := `
		INSERT INTO applications (student_id, internship_id, message, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		application.StudentID,
		application.InternshipID,
		application.Message,
		application.Status,
	).Scan(&application.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("this student has already applied to this internship")
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// GetApplicationsByInternship retrieves all applications to an internship
func (r *InternshipRepository) GetApplicationsByInternship(ctx context.Context, internshipID int64) ([]*models.Application, error) {
	return r.listApplications(ctx, "internship_id", internshipID)
}

// GetApplicationsByStudent retrieves all applications filed by a student
func (r *InternshipRepository) GetApplicationsByStudent(ctx context.Context, studentID int64) ([]*models.Application, error) {
	return r.listApplications(ctx, "student_id", studentID)
}

func (r *InternshipRepository) listApplications(ctx context.Context, column string, value int64) ([]*models.Application, error) {
	sql, args, err := squirrel.Select("id", "student_id", "internship_id", "message", "status").
		From("applications").
		Where(squirrel.Eq{column: value}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var applications []*models.Application
	for rows.Next() {
		var application models.Application
		err := rows.Scan(
			&application.ID,
			&application.StudentID,
			&application.InternshipID,
			&application.Message,
			&application.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		applications = append(applications, &application)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return applications, nil
}
