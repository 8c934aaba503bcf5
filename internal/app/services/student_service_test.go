package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
)

func newStudentService() (StudentService, *fakeStudentRepo, *fakeUserRepo) {
	users := newFakeUserRepo()
	students := newFakeStudentRepo(users)
	return NewStudentService(students, users, zerolog.Nop()), students, users
}

func TestCreateStudentProvisionsAccount(t *testing.T) {
	svc, _, users := newStudentService()

	resp, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		LastName:  "Dupont",
		FirstName: "Jean",
		Contact:   "jean@example.com",
		Cohort:    "2026",
	})
	require.NoError(t, err)

	assert.Equal(t, "jean.dupont", resp.Credentials.Username)
	assert.Len(t, resp.Credentials.Password, 12)
	assert.Equal(t, "Dupont", resp.Student.LastName)
	assert.Equal(t, "jean.dupont", resp.Student.Username)

	user, err := users.GetByUsername(context.Background(), "jean.dupont")
	require.NoError(t, err)
	require.NotNil(t, user.StudentID)
	assert.Equal(t, resp.Student.ID, *user.StudentID)
	// Never store the plaintext.
	assert.NotEqual(t, resp.Credentials.Password, user.Password)
}

func TestCreateStudentDuplicateEchoesExisting(t *testing.T) {
	svc, _, _ := newStudentService()
	ctx := context.Background()

	first, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{
		LastName:  "Dupont",
		FirstName: "Jean",
		Contact:   "jean@example.com",
	})
	require.NoError(t, err)

	// Same identity with different casing collides.
	_, err = svc.CreateStudent(ctx, &dto.CreateStudentRequest{
		LastName:  "DUPONT",
		FirstName: "jean",
		Contact:   "jean@example.com",
	})
	require.ErrorIs(t, err, apperrors.ErrStudentAlreadyExists)

	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	existing, ok := custom.Details["existing"].(dto.DuplicateStudentInfo)
	require.True(t, ok)
	assert.Equal(t, first.Student.ID, existing.ID)
	assert.Equal(t, "Dupont", existing.LastName)
	assert.Equal(t, "jean@example.com", existing.Contact)
}

func TestCreateStudentUsernameCollisionGetsSuffix(t *testing.T) {
	svc, _, _ := newStudentService()
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{
		LastName:  "Dupont",
		FirstName: "Jean",
		Contact:   "jean1@example.com",
	})
	require.NoError(t, err)

	resp, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{
		LastName:  "Dupont",
		FirstName: "Jean",
		Contact:   "jean2@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "jean.dupont2", resp.Credentials.Username)
}

func TestDeleteStudentRemovesLinkedAccount(t *testing.T) {
	svc, _, users := newStudentService()
	ctx := context.Background()

	resp, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{
		LastName:  "Dupont",
		FirstName: "Jean",
		Contact:   "jean@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStudent(ctx, resp.Student.ID))

	_, err = svc.GetStudent(ctx, resp.Student.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	_, err = users.GetByUsername(ctx, "jean.dupont")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestEditProfileUpdatesOnlyProvidedFields(t *testing.T) {
	svc, _, users := newStudentService()
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{
		LastName:    "Dupont",
		FirstName:   "Jean",
		Contact:     "jean@example.com",
		Cohort:      "2025",
		SocialLinks: "linkedin.com/in/jean",
	})
	require.NoError(t, err)

	user, err := users.GetByUsername(ctx, "jean.dupont")
	require.NoError(t, err)

	cohort := "2026"
	updated, err := svc.EditProfile(ctx, user.ID, user.Username, &dto.EditStudentProfileRequest{
		Cohort: &cohort,
	})
	require.NoError(t, err)

	assert.Equal(t, "2026", updated.Cohort)
	assert.Equal(t, created.Student.LastName, updated.LastName)
	assert.Equal(t, created.Student.SocialLinks, updated.SocialLinks)
}

func TestEditProfileFallsBackToContactMatch(t *testing.T) {
	users := newFakeUserRepo()
	students := newFakeStudentRepo(users)
	svc := NewStudentService(students, users, zerolog.Nop())
	ctx := context.Background()

	// Account without a student link: the profile is matched by contact.
	created, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{
		LastName:  "Martin",
		FirstName: "Claire",
		Contact:   "claire.martin",
	})
	require.NoError(t, err)

	orphan := seedUser(t, users, "claire.martin", "Whatever1!", "STUDENT")
	require.Nil(t, orphan.StudentID)

	name := "Martin-Durand"
	updated, err := svc.EditProfile(ctx, orphan.ID, orphan.Username, &dto.EditStudentProfileRequest{
		LastName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, created.Student.ID, updated.ID)
	assert.Equal(t, "Martin-Durand", updated.LastName)
}

func TestGetStudentsPagination(t *testing.T) {
	svc, _, _ := newStudentService()
	ctx := context.Background()

	names := []string{"Albert", "Bernard", "Claude"}
	for _, n := range names {
		_, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{
			LastName:  n,
			FirstName: "Test",
			Contact:   strings.ToLower(n) + "@example.com",
		})
		require.NoError(t, err)
	}

	page, err := svc.GetStudents(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Len(t, page.Items.([]dto.StudentResponse), 2)

	page2, err := svc.GetStudents(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Items.([]dto.StudentResponse), 1)
}
