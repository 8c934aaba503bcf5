package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
)

func newMessagingFixture(t *testing.T) (MessagingService, *models.User, *models.User, *models.User) {
	t.Helper()
	users := newFakeUserRepo()
	alice := seedUser(t, users, "alice.martin", "Pass1234!", models.RoleStudent)
	bob := seedUser(t, users, "acme", "Pass1234!", models.RoleCompany)
	eve := seedUser(t, users, "eve.durand", "Pass1234!", models.RoleStudent)

	svc := NewMessagingService(newFakeMessagingRepo(), users, zerolog.Nop())
	return svc, alice, bob, eve
}

func TestCreateConversationDeduplicatesBothOrderings(t *testing.T) {
	svc, alice, bob, _ := newMessagingFixture(t)
	ctx := context.Background()

	resp, err := svc.CreateConversation(ctx, alice.ID, &dto.CreateConversationRequest{ParticipantID: bob.ID})
	require.NoError(t, err)
	assert.NotZero(t, resp.ConversationID)

	_, err = svc.CreateConversation(ctx, alice.ID, &dto.CreateConversationRequest{ParticipantID: bob.ID})
	assert.ErrorIs(t, err, apperrors.ErrConversationExists)

	// Same pair from the other side is still the same conversation.
	_, err = svc.CreateConversation(ctx, bob.ID, &dto.CreateConversationRequest{ParticipantID: alice.ID})
	assert.ErrorIs(t, err, apperrors.ErrConversationExists)
}

func TestCreateConversationRejectsSelfAndUnknown(t *testing.T) {
	svc, alice, _, _ := newMessagingFixture(t)
	ctx := context.Background()

	_, err := svc.CreateConversation(ctx, alice.ID, &dto.CreateConversationRequest{ParticipantID: alice.ID})
	assert.ErrorIs(t, err, apperrors.ErrSelfConversation)

	_, err = svc.CreateConversation(ctx, alice.ID, &dto.CreateConversationRequest{ParticipantID: 999})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestListConversationsProjectsInterlocutor(t *testing.T) {
	svc, alice, bob, eve := newMessagingFixture(t)
	ctx := context.Background()

	_, err := svc.CreateConversation(ctx, alice.ID, &dto.CreateConversationRequest{ParticipantID: bob.ID})
	require.NoError(t, err)
	_, err = svc.CreateConversation(ctx, eve.ID, &dto.CreateConversationRequest{ParticipantID: alice.ID})
	require.NoError(t, err)

	conversations, err := svc.ListConversations(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	assert.Equal(t, bob.ID, conversations[0].Interlocutor.ID)
	assert.Equal(t, "acme", conversations[0].Interlocutor.Username)
	assert.Equal(t, "COMPANY", conversations[0].Interlocutor.Role)
	assert.Equal(t, eve.ID, conversations[1].Interlocutor.ID)
}

// failingUserRepo simulates a database failure on user lookups.
type failingUserRepo struct {
	*fakeUserRepo
	getByIDErr error
}

func (f *failingUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, f.getByIDErr
}

func TestListConversationsInterlocutorLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted account degrades to id only", func(t *testing.T) {
		users := newFakeUserRepo()
		alice := seedUser(t, users, "alice.martin", "Pass1234!", models.RoleStudent)

		repo := newFakeMessagingRepo()
		require.NoError(t, repo.CreateConversation(ctx, &models.Conversation{
			Participant1ID: alice.ID,
			Participant2ID: alice.ID + 100,
		}))

		svc := NewMessagingService(repo, users, zerolog.Nop())
		conversations, err := svc.ListConversations(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, conversations, 1)
		assert.Equal(t, alice.ID+100, conversations[0].Interlocutor.ID)
		assert.Empty(t, conversations[0].Interlocutor.Username)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		users := newFakeUserRepo()
		alice := seedUser(t, users, "alice.martin", "Pass1234!", models.RoleStudent)

		repo := newFakeMessagingRepo()
		require.NoError(t, repo.CreateConversation(ctx, &models.Conversation{
			Participant1ID: alice.ID,
			Participant2ID: alice.ID + 100,
		}))

		boom := errors.New("connection reset")
		svc := NewMessagingService(repo, &failingUserRepo{fakeUserRepo: users, getByIDErr: boom}, zerolog.Nop())
		_, err := svc.ListConversations(ctx, alice.ID)
		assert.ErrorIs(t, err, boom)
	})
}

func TestMessagesOrderedWithSelfFlag(t *testing.T) {
	svc, alice, bob, eve := newMessagingFixture(t)
	ctx := context.Background()

	conv, err := svc.CreateConversation(ctx, alice.ID, &dto.CreateConversationRequest{ParticipantID: bob.ID})
	require.NoError(t, err)

	for _, m := range []struct {
		sender  int64
		content string
	}{
		{alice.ID, "hello"},
		{bob.ID, "hi, we got your application"},
		{alice.ID, "great, when can we talk?"},
	} {
		sent, err := svc.SendMessage(ctx, m.sender, conv.ConversationID, &dto.SendMessageRequest{Content: m.content})
		require.NoError(t, err)
		assert.True(t, sent.IsSelf)
	}

	history, err := svc.GetMessages(ctx, bob.ID, conv.ConversationID)
	require.NoError(t, err)
	require.Len(t, history.Messages, 3)

	assert.Equal(t, "hello", history.Messages[0].Content)
	assert.False(t, history.Messages[0].IsSelf)
	assert.True(t, history.Messages[1].IsSelf)
	assert.False(t, history.Messages[2].IsSelf)
	for i := 1; i < len(history.Messages); i++ {
		assert.False(t, history.Messages[i].SentAt.Before(history.Messages[i-1].SentAt))
	}

	// Outsiders cannot read or write.
	_, err = svc.GetMessages(ctx, eve.ID, conv.ConversationID)
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)
	_, err = svc.SendMessage(ctx, eve.ID, conv.ConversationID, &dto.SendMessageRequest{Content: "let me in"})
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)
}

func TestSendMessageBounds(t *testing.T) {
	svc, alice, bob, _ := newMessagingFixture(t)
	ctx := context.Background()

	conv, err := svc.CreateConversation(ctx, alice.ID, &dto.CreateConversationRequest{ParticipantID: bob.ID})
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, alice.ID, conv.ConversationID, &dto.SendMessageRequest{
		Content: strings.Repeat("a", dto.MaxMessageLength+1),
	})
	assert.ErrorIs(t, err, apperrors.ErrMessageTooLong)

	_, err = svc.SendMessage(ctx, alice.ID, conv.ConversationID, &dto.SendMessageRequest{
		Content: strings.Repeat("a", dto.MaxMessageLength),
	})
	assert.NoError(t, err)

	_, err = svc.SendMessage(ctx, alice.ID, 999, &dto.SendMessageRequest{Content: "anyone there?"})
	assert.ErrorIs(t, err, apperrors.ErrConversationNotFound)
}
