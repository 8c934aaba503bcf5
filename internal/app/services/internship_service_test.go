package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
)

type internshipFixture struct {
	svc           InternshipService
	companies     *fakeCompanyRepo
	students      *fakeStudentRepo
	internships   *fakeInternshipRepo
	companyID     int64
	studentID     int64
	studentCaller Caller
	adminCaller   Caller
}

func newInternshipFixture(t *testing.T) *internshipFixture {
	t.Helper()
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo(users)
	students := newFakeStudentRepo(users)
	internships := newFakeInternshipRepo()

	company := &models.Company{Name: "ACME", Address: "1 rue de la Paix", Contact: "contact@acme.fr"}
	require.NoError(t, companies.CreateWithUser(context.Background(), company, &models.User{Username: "acme", RoleID: 3}))

	student := &models.Student{LastName: "Dupont", FirstName: "Jean", Contact: "jean@example.com"}
	studentUser := &models.User{Username: "jean.dupont", RoleID: 2}
	require.NoError(t, students.CreateWithUser(context.Background(), student, studentUser))

	admin := users.addUser(&models.User{Username: "admin", RoleID: 1})

	return &internshipFixture{
		svc:           NewInternshipService(internships, companies, students, zerolog.Nop()),
		companies:     companies,
		students:      students,
		internships:   internships,
		companyID:     company.ID,
		studentID:     student.ID,
		studentCaller: Caller{UserID: studentUser.ID, Username: "jean.dupont", Role: models.RoleStudent},
		adminCaller:   Caller{UserID: admin.ID, Username: "admin", Role: models.RoleAdmin},
	}
}

func (f *internshipFixture) createInternship(t *testing.T, title string) *dto.InternshipResponse {
	t.Helper()
	resp, err := f.svc.CreateInternship(context.Background(), &dto.InternshipRequest{
		Title:        title,
		CompanyID:    f.companyID,
		ContractType: "stage",
		StartDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return resp
}

func TestCreateInternshipDefaultsAndCompanyCheck(t *testing.T) {
	f := newInternshipFixture(t)

	resp := f.createInternship(t, "Backend intern")
	assert.Equal(t, models.InternshipStatusPending, resp.Status)
	assert.Equal(t, "ACME", resp.CompanyName)

	_, err := f.svc.CreateInternship(context.Background(), &dto.InternshipRequest{
		Title:        "Ghost",
		CompanyID:    999,
		ContractType: "stage",
	})
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)
}

func TestApplyOnce(t *testing.T) {
	f := newInternshipFixture(t)
	ctx := context.Background()
	internship := f.createInternship(t, "Backend intern")

	application, err := f.svc.Apply(ctx, f.adminCaller, internship.ID, &dto.ApplyRequest{
		StudentID: f.studentID,
		Message:   "motivated",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)

	_, err = f.svc.Apply(ctx, f.adminCaller, internship.ID, &dto.ApplyRequest{StudentID: f.studentID})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.svc.Apply(ctx, f.adminCaller, 999, &dto.ApplyRequest{StudentID: f.studentID})
	assert.ErrorIs(t, err, apperrors.ErrInternshipNotFound)

	_, err = f.svc.Apply(ctx, f.adminCaller, internship.ID, &dto.ApplyRequest{StudentID: 999})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestApplyAsStudentResolvesSelf(t *testing.T) {
	f := newInternshipFixture(t)
	ctx := context.Background()
	internship := f.createInternship(t, "Backend intern")

	application, err := f.svc.Apply(ctx, f.studentCaller, internship.ID, &dto.ApplyRequest{Message: "me"})
	require.NoError(t, err)
	assert.Equal(t, f.studentID, application.StudentID)
}

func TestApplyStudentCannotApplyForAnother(t *testing.T) {
	f := newInternshipFixture(t)
	ctx := context.Background()
	internship := f.createInternship(t, "Backend intern")

	other := &models.Student{LastName: "Martin", FirstName: "Claire", Contact: "claire@example.com"}
	require.NoError(t, f.students.CreateWithUser(ctx, other, &models.User{Username: "claire.martin", RoleID: 2}))

	_, err := f.svc.Apply(ctx, f.studentCaller, internship.ID, &dto.ApplyRequest{StudentID: other.ID})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Naming themselves explicitly is fine.
	application, err := f.svc.Apply(ctx, f.studentCaller, internship.ID, &dto.ApplyRequest{StudentID: f.studentID})
	require.NoError(t, err)
	assert.Equal(t, f.studentID, application.StudentID)
}

func TestApplyAdminRequiresStudentID(t *testing.T) {
	f := newInternshipFixture(t)
	internship := f.createInternship(t, "Backend intern")

	_, err := f.svc.Apply(context.Background(), f.adminCaller, internship.ID, &dto.ApplyRequest{Message: "x"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetInternshipsFilters(t *testing.T) {
	f := newInternshipFixture(t)
	ctx := context.Background()

	first := f.createInternship(t, "Backend intern")
	f.createInternship(t, "Frontend intern")
	require.NoError(t, f.svc.UpdateStatus(ctx, first.ID, models.InternshipStatusAccepted))

	_, err := f.svc.Apply(ctx, f.adminCaller, first.ID, &dto.ApplyRequest{StudentID: f.studentID})
	require.NoError(t, err)

	byStatus, err := f.svc.GetInternships(ctx, &dto.InternshipFilter{Status: models.InternshipStatusAccepted}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byStatus.Pagination.TotalItems)

	byStudent, err := f.svc.GetInternships(ctx, &dto.InternshipFilter{StudentID: &f.studentID}, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), byStudent.Pagination.TotalItems)
	items := byStudent.Items.([]dto.InternshipResponse)
	assert.Equal(t, first.ID, items[0].ID)

	all, err := f.svc.GetInternships(ctx, nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Pagination.TotalItems)
}

func TestDeleteInternshipRemovesApplications(t *testing.T) {
	f := newInternshipFixture(t)
	ctx := context.Background()
	internship := f.createInternship(t, "Backend intern")

	_, err := f.svc.Apply(ctx, f.adminCaller, internship.ID, &dto.ApplyRequest{StudentID: f.studentID})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteInternship(ctx, internship.ID))

	_, err = f.svc.GetApplications(ctx, internship.ID)
	assert.ErrorIs(t, err, apperrors.ErrInternshipNotFound)

	applications, err := f.internships.GetApplicationsByStudent(ctx, f.studentID)
	require.NoError(t, err)
	assert.Empty(t, applications)
}
