// Package seed creates the reference data the application expects at
// startup: the three roles and a default admin account.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/app/repositories"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
	"github.com/stagehub/stagehub/internal/pkg/auth"
)

// DefaultAdminUsername is the seeded administrator login
const DefaultAdminUsername = "admin"

// defaultAdminPassword is only used when the admin account does not exist
// yet. It is expected to be rotated after the first login.
const defaultAdminPassword = "Admin123!"

// CreateDefaultData seeds the roles and the default admin account if they
// are missing. It is idempotent.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	if err := seedRoles(ctx, dbPool); err != nil {
		return err
	}
	return seedAdminUser(ctx, dbPool, lgr)
}

func seedRoles(ctx context.Context, dbPool *pgxpool.Pool) error {
	for _, role := range []models.RoleType{models.RoleAdmin, models.RoleStudent, models.RoleCompany} {
		_, err := dbPool.Exec(ctx,
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, role,
		)
		if err != nil {
			return fmt.Errorf("error seeding role %s: %w", role, err)
		}
	}
	return nil
}

func seedAdminUser(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	_, err := userRepo.GetByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	roleID, err := userRepo.GetRoleIDByName(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &models.User{
		Username: DefaultAdminUsername,
		Password: hash,
		RoleID:   roleID,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrUsernameExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("username", DefaultAdminUsername).Msg("Default admin account created")
	return nil
}
