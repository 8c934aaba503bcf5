package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/app/repositories"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
)

// MessagingService defines the interface for direct messaging operations.
// Every method takes the caller's user ID; participant checks happen here,
// not in the handlers.
type MessagingService interface {
	CreateConversation(ctx context.Context, callerID int64, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error)
	ListConversations(ctx context.Context, callerID int64) ([]dto.ConversationResponse, error)
	GetMessages(ctx context.Context, callerID, conversationID int64) (*dto.ConversationMessagesResponse, error)
	SendMessage(ctx context.Context, callerID, conversationID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
}

// messagingServiceImpl implements MessagingService
type messagingServiceImpl struct {
	messagingRepo repositories.IMessagingRepository
	userRepo      repositories.IUserRepository
	logger        zerolog.Logger
}

// NewMessagingService creates a new MessagingService
func NewMessagingService(messagingRepo repositories.IMessagingRepository, userRepo repositories.IUserRepository, logger zerolog.Logger) MessagingService {
	return &messagingServiceImpl{
		messagingRepo: messagingRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

// CreateConversation opens a conversation between the caller and another
// user. The pair is unordered; a duplicate in either ordering is a conflict.
func (s *messagingServiceImpl) CreateConversation(ctx context.Context, callerID int64, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error) {
	if req.ParticipantID == callerID {
		return nil, apperrors.ErrSelfConversation
	}

	if _, err := s.userRepo.GetByID(ctx, req.ParticipantID); err != nil {
		return nil, err
	}

	conversation := &models.Conversation{
		Participant1ID: callerID,
		Participant2ID: req.ParticipantID,
	}
	if err := s.messagingRepo.CreateConversation(ctx, conversation); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("conversationID", conversation.ID).
		Int64("callerID", callerID).
		Int64("participantID", req.ParticipantID).
		Msg("Conversation created")

	return &dto.CreateConversationResponse{ConversationID: conversation.ID}, nil
}

// ListConversations lists the caller's conversations, projecting only the
// other participant's identity
func (s *messagingServiceImpl) ListConversations(ctx context.Context, callerID int64) ([]dto.ConversationResponse, error) {
	conversations, err := s.messagingRepo.GetConversationsByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		otherID := conversation.OtherParticipant(callerID)

		// A deleted account degrades to an id-only entry; anything else
		// is a real failure.
		interlocutor := dto.InterlocutorResponse{ID: otherID}
		other, err := s.userRepo.GetByID(ctx, otherID)
		switch {
		case err == nil:
			interlocutor.Username = other.Username
			interlocutor.Role = string(other.RoleName)
		case !errors.Is(err, apperrors.ErrUserNotFound):
			return nil, err
		}

		items = append(items, dto.ConversationResponse{
			ConversationID: conversation.ID,
			Interlocutor:   interlocutor,
		})
	}

	return items, nil
}

// GetMessages returns the full history of a conversation in send order.
// Only participants may read it.
func (s *messagingServiceImpl) GetMessages(ctx context.Context, callerID, conversationID int64) (*dto.ConversationMessagesResponse, error) {
	conversation, err := s.messagingRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(callerID) {
		return nil, apperrors.ErrNotParticipant
	}

	messages, err := s.messagingRepo.GetMessagesByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		items = append(items, dto.MessageResponse{
			ID:       message.ID,
			SenderID: message.SenderID,
			Content:  message.Content,
			SentAt:   message.SentAt,
			IsSelf:   message.SenderID == callerID,
		})
	}

	return &dto.ConversationMessagesResponse{
		ConversationID: conversationID,
		Messages:       items,
	}, nil
}

// SendMessage appends a message to a conversation the caller participates in
func (s *messagingServiceImpl) SendMessage(ctx context.Context, callerID, conversationID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if utf8.RuneCountInString(req.Content) > dto.MaxMessageLength {
		return nil, apperrors.ErrMessageTooLong
	}

	conversation, err := s.messagingRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(callerID) {
		return nil, apperrors.ErrNotParticipant
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       callerID,
		Content:        req.Content,
	}
	if err := s.messagingRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	return &dto.MessageResponse{
		ID:       message.ID,
		SenderID: message.SenderID,
		Content:  message.Content,
		SentAt:   message.SentAt,
		IsSelf:   true,
	}, nil
}
