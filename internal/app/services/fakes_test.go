package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
)

// In-memory repository fakes. They mirror the constraint behavior of the
// real repositories (uniqueness, not-found sentinels) so services can be
// tested without a database.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) addUser(user *models.User) *models.User {
	f.nextID++
	user.ID = f.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if taken, _ := f.UsernameExists(ctx, user.Username); taken {
		return apperrors.ErrUsernameExists
	}
	f.addUser(user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	for _, user := range f.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetRoleIDByName(ctx context.Context, name models.RoleType) (int64, error) {
	switch name {
	case models.RoleAdmin:
		return 1, nil
	case models.RoleStudent:
		return 2, nil
	case models.RoleCompany:
		return 3, nil
	}
	return 0, apperrors.ErrResourceNotFound
}

type fakeStudentRepo struct {
	students map[int64]*models.Student
	users    *fakeUserRepo
	nextID   int64
}

func newFakeStudentRepo(users *fakeUserRepo) *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*models.Student), users: users}
}

func sameIdentity(s *models.Student, lastName, firstName, contact string) bool {
	return strings.EqualFold(s.LastName, lastName) &&
		strings.EqualFold(s.FirstName, firstName) &&
		s.Contact == contact
}

func (f *fakeStudentRepo) CreateWithUser(ctx context.Context, student *models.Student, user *models.User) error {
	for _, existing := range f.students {
		if sameIdentity(existing, student.LastName, student.FirstName, student.Contact) {
			return apperrors.ErrStudentAlreadyExists
		}
	}
	if taken, _ := f.users.UsernameExists(ctx, user.Username); taken {
		return apperrors.ErrUsernameExists
	}

	f.nextID++
	student.ID = f.nextID
	f.students[student.ID] = student

	user.StudentID = &student.ID
	f.users.addUser(user)
	student.User = user
	return nil
}

func (f *fakeStudentRepo) FindByIdentity(ctx context.Context, lastName, firstName, contact string) (*models.Student, error) {
	for _, student := range f.students {
		if sameIdentity(student, lastName, firstName, contact) {
			return student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) GetAll(ctx context.Context, offset, limit int) ([]*models.Student, int64, error) {
	all := make([]*models.Student, 0, len(f.students))
	for _, student := range f.students {
		all = append(all, student)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (f *fakeStudentRepo) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	user, ok := f.users.users[userID]
	if !ok || user.StudentID == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return f.GetByID(ctx, *user.StudentID)
}

func (f *fakeStudentRepo) GetByContact(ctx context.Context, contact string) (*models.Student, error) {
	for _, student := range f.students {
		if student.Contact == contact {
			return student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentRepo) UpdateImage(ctx context.Context, id int64, image, thumbnail []byte) error {
	student, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	student.ImageData = image
	student.ThumbnailData = thumbnail
	return nil
}

func (f *fakeStudentRepo) GetImage(ctx context.Context, id int64) ([]byte, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	if len(student.ImageData) == 0 {
		return nil, apperrors.ErrImageNotFound
	}
	return student.ImageData, nil
}

func (f *fakeStudentRepo) DeleteWithUser(ctx context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	for userID, user := range f.users.users {
		if user.StudentID != nil && *user.StudentID == id {
			delete(f.users.users, userID)
		}
	}
	delete(f.students, id)
	return nil
}

type fakeCompanyRepo struct {
	companies map[int64]*models.Company
	users     *fakeUserRepo
	nextID    int64
}

func newFakeCompanyRepo(users *fakeUserRepo) *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[int64]*models.Company), users: users}
}

func (f *fakeCompanyRepo) CreateWithUser(ctx context.Context, company *models.Company, user *models.User) error {
	if f.nameTaken(company.Name, 0) {
		return apperrors.NewConflictError("a company with this name already exists")
	}
	if taken, _ := f.users.UsernameExists(ctx, user.Username); taken {
		return apperrors.ErrUsernameExists
	}
	f.nextID++
	company.ID = f.nextID
	f.companies[company.ID] = company

	user.CompanyID = &company.ID
	f.users.addUser(user)
	company.User = user
	return nil
}

func (f *fakeCompanyRepo) GetAll(ctx context.Context, offset, limit int) ([]*models.Company, int64, error) {
	all := make([]*models.Company, 0, len(f.companies))
	for _, company := range f.companies {
		all = append(all, company)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	company, ok := f.companies[id]
	if !ok {
		return nil, apperrors.ErrCompanyNotFound
	}
	return company, nil
}

func (f *fakeCompanyRepo) GetByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	user, ok := f.users.users[userID]
	if !ok || user.CompanyID == nil {
		return nil, apperrors.ErrCompanyNotFound
	}
	return f.GetByID(ctx, *user.CompanyID)
}

// nameTaken mirrors the unique index on lower(name); exclude skips the row
// being updated.
func (f *fakeCompanyRepo) nameTaken(name string, exclude int64) bool {
	for _, company := range f.companies {
		if company.ID != exclude && strings.EqualFold(company.Name, name) {
			return true
		}
	}
	return false
}

func (f *fakeCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	if _, ok := f.companies[company.ID]; !ok {
		return apperrors.ErrCompanyNotFound
	}
	if f.nameTaken(company.Name, company.ID) {
		return apperrors.NewConflictError("a company with this name already exists")
	}
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) UpdateImage(ctx context.Context, id int64, image, thumbnail []byte) error {
	company, ok := f.companies[id]
	if !ok {
		return apperrors.ErrCompanyNotFound
	}
	company.ImageData = image
	company.ThumbnailData = thumbnail
	return nil
}

func (f *fakeCompanyRepo) GetImage(ctx context.Context, id int64) ([]byte, error) {
	company, ok := f.companies[id]
	if !ok {
		return nil, apperrors.ErrCompanyNotFound
	}
	if len(company.ImageData) == 0 {
		return nil, apperrors.ErrImageNotFound
	}
	return company.ImageData, nil
}

func (f *fakeCompanyRepo) DeleteWithUser(ctx context.Context, id int64) error {
	if _, ok := f.companies[id]; !ok {
		return apperrors.ErrCompanyNotFound
	}
	for userID, user := range f.users.users {
		if user.CompanyID != nil && *user.CompanyID == id {
			delete(f.users.users, userID)
		}
	}
	delete(f.companies, id)
	return nil
}

type fakeInternshipRepo struct {
	internships  map[int64]*models.Internship
	applications map[int64]*models.Application
	nextID       int64
	nextAppID    int64
}

func newFakeInternshipRepo() *fakeInternshipRepo {
	return &fakeInternshipRepo{
		internships:  make(map[int64]*models.Internship),
		applications: make(map[int64]*models.Application),
	}
}

func (f *fakeInternshipRepo) Create(ctx context.Context, internship *models.Internship) error {
	f.nextID++
	internship.ID = f.nextID
	f.internships[internship.ID] = internship
	return nil
}

func (f *fakeInternshipRepo) GetAll(ctx context.Context, status string, companyID, studentID *int64, offset, limit int) ([]*models.Internship, int64, error) {
	var all []*models.Internship
	for _, internship := range f.internships {
		if status != "" && internship.Status != status {
			continue
		}
		if companyID != nil && internship.CompanyID != *companyID {
			continue
		}
		if studentID != nil && !f.hasApplication(*studentID, internship.ID) {
			continue
		}
		all = append(all, internship)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeInternshipRepo) hasApplication(studentID, internshipID int64) bool {
	for _, application := range f.applications {
		if application.StudentID == studentID && application.InternshipID == internshipID {
			return true
		}
	}
	return false
}

func (f *fakeInternshipRepo) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	internship, ok := f.internships[id]
	if !ok {
		return nil, apperrors.ErrInternshipNotFound
	}
	return internship, nil
}

func (f *fakeInternshipRepo) Update(ctx context.Context, internship *models.Internship) error {
	if _, ok := f.internships[internship.ID]; !ok {
		return apperrors.ErrInternshipNotFound
	}
	f.internships[internship.ID] = internship
	return nil
}

func (f *fakeInternshipRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	internship, ok := f.internships[id]
	if !ok {
		return apperrors.ErrInternshipNotFound
	}
	internship.Status = status
	return nil
}

func (f *fakeInternshipRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.internships[id]; !ok {
		return apperrors.ErrInternshipNotFound
	}
	delete(f.internships, id)
	for appID, application := range f.applications {
		if application.InternshipID == id {
			delete(f.applications, appID)
		}
	}
	return nil
}

func (f *fakeInternshipRepo) CreateApplication(ctx context.Context, application *models.Application) error {
	if f.hasApplication(application.StudentID, application.InternshipID) {
		return apperrors.NewConflictError("this student has already applied to this internship")
	}
	f.nextAppID++
	application.ID = f.nextAppID
	f.applications[application.ID] = application
	return nil
}

func (f *fakeInternshipRepo) GetApplicationsByInternship(ctx context.Context, internshipID int64) ([]*models.Application, error) {
	return f.listApplications(func(a *models.Application) bool { return a.InternshipID == internshipID }), nil
}

func (f *fakeInternshipRepo) GetApplicationsByStudent(ctx context.Context, studentID int64) ([]*models.Application, error) {
	return f.listApplications(func(a *models.Application) bool { return a.StudentID == studentID }), nil
}

func (f *fakeInternshipRepo) listApplications(match func(*models.Application) bool) []*models.Application {
	var out []*models.Application
	for _, application := range f.applications {
		if match(application) {
			out = append(out, application)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeMessagingRepo struct {
	conversations map[int64]*models.Conversation
	messages      map[int64]*models.Message
	nextConvID    int64
	nextMsgID     int64
	clock         time.Time
}

func newFakeMessagingRepo() *fakeMessagingRepo {
	return &fakeMessagingRepo{
		conversations: make(map[int64]*models.Conversation),
		messages:      make(map[int64]*models.Message),
		clock:         time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func pairKey(a, b int64) [2]int64 {
	if a > b {
		a, b = b, a
	}
	return [2]int64{a, b}
}

func (f *fakeMessagingRepo) CreateConversation(ctx context.Context, conversation *models.Conversation) error {
	key := pairKey(conversation.Participant1ID, conversation.Participant2ID)
	for _, existing := range f.conversations {
		if pairKey(existing.Participant1ID, existing.Participant2ID) == key {
			return apperrors.ErrConversationExists
		}
	}
	f.nextConvID++
	conversation.ID = f.nextConvID
	f.conversations[conversation.ID] = conversation
	return nil
}

func (f *fakeMessagingRepo) FindConversationByParticipants(ctx context.Context, userA, userB int64) (*models.Conversation, error) {
	key := pairKey(userA, userB)
	for _, conversation := range f.conversations {
		if pairKey(conversation.Participant1ID, conversation.Participant2ID) == key {
			return conversation, nil
		}
	}
	return nil, apperrors.ErrConversationNotFound
}

func (f *fakeMessagingRepo) GetConversationByID(ctx context.Context, id int64) (*models.Conversation, error) {
	conversation, ok := f.conversations[id]
	if !ok {
		return nil, apperrors.ErrConversationNotFound
	}
	return conversation, nil
}

func (f *fakeMessagingRepo) GetConversationsByUser(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	var out []*models.Conversation
	for _, conversation := range f.conversations {
		if conversation.HasParticipant(userID) {
			out = append(out, conversation)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMessagingRepo) CreateMessage(ctx context.Context, message *models.Message) error {
	f.nextMsgID++
	message.ID = f.nextMsgID
	if message.SentAt.IsZero() {
		message.SentAt = f.clock
		f.clock = f.clock.Add(time.Second)
	}
	f.messages[message.ID] = message
	return nil
}

func (f *fakeMessagingRepo) GetMessagesByConversation(ctx context.Context, conversationID int64) ([]*models.Message, error) {
	var out []*models.Message
	for _, message := range f.messages {
		if message.ConversationID == conversationID {
			out = append(out, message)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out, nil
}
