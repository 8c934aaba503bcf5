package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/db"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
)

// IStudentRepository defines the interface for student-related database operations
type IStudentRepository interface {
	CreateWithUser(ctx context.Context, student *models.Student, user *models.User) error
	FindByIdentity(ctx context.Context, lastName, firstName, contact string) (*models.Student, error)
	GetAll(ctx context.Context, offset, limit int) ([]*models.Student, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetByContact(ctx context.Context, contact string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	UpdateImage(ctx context.Context, id int64, image, thumbnail []byte) error
	GetImage(ctx context.Context, id int64) ([]byte, error)
	DeleteWithUser(ctx context.Context, id int64) error
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// CreateWithUser inserts a student and its login account in one transaction.
// The unique index on (lower(last_name), lower(first_name), contact) closes
// the duplicate race: a concurrent identical insert surfaces as
// ErrStudentAlreadyExists instead of a second row.
func (r *StudentRepository) CreateWithUser(ctx context.Context, student *models.Student, user *models.User) error {
	return db.RunInTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO students (last_name, first_name, contact, cohort, social_links, image_data, thumbnail_data)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`,
			student.LastName,
			student.FirstName,
			student.Contact,
			student.Cohort,
			student.SocialLinks,
			student.ImageData,
			student.ThumbnailData,
		).Scan(&student.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrStudentAlreadyExists
			}
			return fmt.Errorf("error creating student: %w", err)
		}

		user.StudentID = &student.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO users (username, email, password, role_id, student_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`,
			user.Username,
			user.Email,
			user.Password,
			user.RoleID,
			user.StudentID,
		).Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrUsernameExists
			}
			return fmt.Errorf("error creating student account: %w", err)
		}

		student.User = user
		return nil
	})
}

// FindByIdentity retrieves the student matching the case-insensitive
// (last name, first name) pair and the contact
func (r *StudentRepository) FindByIdentity(ctx context.Context, lastName, firstName, contact string) (*models.Student, error) {
	query := `
		SELECT id, last_name, first_name, contact, cohort, social_links
		FROM students
		WHERE lower(last_name) = lower($1) AND lower(first_name) = lower($2) AND contact = $3
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, lastName, firstName, contact).Scan(
		&student.ID,
		&student.LastName,
		&student.FirstName,
		&student.Contact,
		&student.Cohort,
		&student.SocialLinks,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves students ordered by last name, with their usernames and
// the total count for pagination
func (r *StudentRepository) GetAll(ctx context.Context, offset, limit int) ([]*models.Student, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	queryBuilder := squirrel.Select(
		"s.id", "s.last_name", "s.first_name", "s.contact", "s.cohort", "s.social_links", "s.thumbnail_data",
		"u.id", "u.username",
	).
		From("students s").
		LeftJoin("users u ON u.student_id = s.id").
		OrderBy("lower(s.last_name)", "lower(s.first_name)", "s.id").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		var userID *int64
		var username *string

		err := rows.Scan(
			&student.ID,
			&student.LastName,
			&student.FirstName,
			&student.Contact,
			&student.Cohort,
			&student.SocialLinks,
			&student.ThumbnailData,
			&userID,
			&username,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}

		if userID != nil {
			student.User = &models.User{ID: *userID}
			if username != nil {
				student.User.Username = *username
			}
		}

		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating students: %w", err)
	}

	return students, total, nil
}

// GetByID retrieves a student by ID with its linked account
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT
			s.id, s.last_name, s.first_name, s.contact, s.cohort, s.social_links, s.thumbnail_data,
			u.id, u.username
		FROM students s
		LEFT JOIN users u ON u.student_id = s.id
		WHERE s.id = $1
	`

	var student models.Student
	var userID *int64
	var username *string

	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.LastName,
		&student.FirstName,
		&student.Contact,
		&student.Cohort,
		&student.SocialLinks,
		&student.ThumbnailData,
		&userID,
		&username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if userID != nil {
		student.User = &models.User{ID: *userID}
		if username != nil {
			student.User.Username = *username
		}
	}

	return &student, nil
}

// GetByUserID retrieves the student profile linked to a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `
		SELECT s.id, s.last_name, s.first_name, s.contact, s.cohort, s.social_links, s.thumbnail_data
		FROM students s
		JOIN users u ON u.student_id = s.id
		WHERE u.id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&student.ID,
		&student.LastName,
		&student.FirstName,
		&student.Contact,
		&student.Cohort,
		&student.SocialLinks,
		&student.ThumbnailData,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetByContact retrieves a student by its contact field. Used as a fallback
// when a login account predates the student_id link.
func (r *StudentRepository) GetByContact(ctx context.Context, contact string) (*models.Student, error) {
	query := `
		SELECT id, last_name, first_name, contact, cohort, social_links, thumbnail_data
		FROM students
		WHERE contact = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, contact).Scan(
		&student.ID,
		&student.LastName,
		&student.FirstName,
		&student.Contact,
		&student.Cohort,
		&student.SocialLinks,
		&student.ThumbnailData,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// Update replaces the editable profile fields of a student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students
		SET last_name = $1, first_name = $2, contact = $3, cohort = $4, social_links = $5
		WHERE id = $6
	`,
		student.LastName,
		student.FirstName,
		student.Contact,
		student.Cohort,
		student.SocialLinks,
		student.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrStudentAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateImage stores a student's image and its thumbnail
func (r *StudentRepository) UpdateImage(ctx context.Context, id int64, image, thumbnail []byte) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE students SET image_data = $1, thumbnail_data = $2 WHERE id = $3`,
		image, thumbnail, id,
	)
	if err != nil {
		return fmt.Errorf("error updating student image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// GetImage retrieves the full-size image of a student
func (r *StudentRepository) GetImage(ctx context.Context, id int64) ([]byte, error) {
	var image []byte
	err := r.db.QueryRow(ctx, `SELECT image_data FROM students WHERE id = $1`, id).Scan(&image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student image: %w", err)
	}
	if len(image) == 0 {
		return nil, apperrors.ErrImageNotFound
	}
	return image, nil
}

// DeleteWithUser removes a student and its login account in one transaction
func (r *StudentRepository) DeleteWithUser(ctx context.Context, id int64) error {
	return db.RunInTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM users WHERE student_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting student account: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting student: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}
		return nil
	})
}
