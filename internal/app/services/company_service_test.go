package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
)

func newCompanyService() (CompanyService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewCompanyService(newFakeCompanyRepo(users), users, zerolog.Nop()), users
}

func TestCreateCompanyProvisionsAccount(t *testing.T) {
	svc, users := newCompanyService()

	resp, err := svc.CreateCompany(context.Background(), &dto.CompanyForm{
		Name:    "ACME Robotics",
		Address: "1 rue de la Paix, Paris",
		Contact: "contact@acme.fr",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "acme.robotics", resp.Credentials.Username)
	assert.Len(t, resp.Credentials.Password, 12)
	require.NotNil(t, resp.Company.UserID)

	user, err := users.GetByUsername(context.Background(), "acme.robotics")
	require.NoError(t, err)
	require.NotNil(t, user.CompanyID)
	assert.Equal(t, resp.Company.ID, *user.CompanyID)
}

func TestCreateCompanyUsernameCollisionGetsSuffix(t *testing.T) {
	svc, users := newCompanyService()
	ctx := context.Background()

	users.addUser(&models.User{Username: "acme", Password: "x", RoleID: 1})

	resp, err := svc.CreateCompany(ctx, &dto.CompanyForm{
		Name: "ACME", Address: "a", Contact: "contact@acme.fr",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "acme2", resp.Credentials.Username)
}

func TestCreateCompanyDuplicateNameConflicts(t *testing.T) {
	svc, _ := newCompanyService()
	ctx := context.Background()

	_, err := svc.CreateCompany(ctx, &dto.CompanyForm{
		Name: "ACME", Address: "a", Contact: "one@acme.fr",
	}, nil)
	require.NoError(t, err)

	_, err = svc.CreateCompany(ctx, &dto.CompanyForm{
		Name: "acme", Address: "b", Contact: "two@acme.fr",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateCompany(t *testing.T) {
	svc, _ := newCompanyService()
	ctx := context.Background()

	created, err := svc.CreateCompany(ctx, &dto.CompanyForm{
		Name: "ACME", Address: "old", Contact: "contact@acme.fr",
	}, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateCompany(ctx, created.Company.ID, &dto.CompanyForm{
		Name: "ACME SA", Address: "new", Contact: "contact@acme.fr", Description: "robots",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ACME SA", updated.Name)
	assert.Equal(t, "new", updated.Address)

	_, err = svc.UpdateCompany(ctx, 999, &dto.CompanyForm{Name: "x", Address: "y", Contact: "z"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)
}

func TestDeleteCompanyRemovesLinkedAccount(t *testing.T) {
	svc, users := newCompanyService()
	ctx := context.Background()

	created, err := svc.CreateCompany(ctx, &dto.CompanyForm{
		Name: "ACME", Address: "a", Contact: "contact@acme.fr",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCompany(ctx, created.Company.ID))

	_, err = svc.GetCompany(ctx, created.Company.ID)
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)
	_, err = users.GetByUsername(ctx, "acme")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
