package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
)

// IMessagingRepository defines the interface for conversation and message
// database operations
type IMessagingRepository interface {
	CreateConversation(ctx context.Context, conversation *models.Conversation) error
	FindConversationByParticipants(ctx context.Context, userA, userB int64) (*models.Conversation, error)
	GetConversationByID(ctx context.Context, id int64) (*models.Conversation, error)
	GetConversationsByUser(ctx context.Context, userID int64) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessagesByConversation(ctx context.Context, conversationID int64) ([]*models.Message, error)
}

// MessagingRepository handles database operations for conversations and
// their messages
type MessagingRepository struct {
	db *pgxpool.Pool
}

// NewMessagingRepository creates a new MessagingRepository
func NewMessagingRepository(db *pgxpool.Pool) *MessagingRepository {
	return &MessagingRepository{db: db}
}

// CreateConversation inserts a new conversation. The unique index on
// (least(participant1, participant2), greatest(participant1, participant2))
// rejects a duplicate pair in either ordering, so a concurrent create
// surfaces as ErrConversationExists.
func (r *MessagingRepository) CreateConversation(ctx context.Context, conversation *models.Conversation) error {
	query := `
		INSERT INTO conversations (participant1_id, participant2_id)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		conversation.Participant1ID,
		conversation.Participant2ID,
	).Scan(&conversation.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConversationExists
		}
		return fmt.Errorf("error creating conversation: %w", err)
	}

	return nil
}

// FindConversationByParticipants retrieves the conversation between two
// users, regardless of which one opened it
func (r *MessagingRepository) FindConversationByParticipants(ctx context.Context, userA, userB int64) (*models.Conversation, error) {
	query := `
		SELECT id, participant1_id, participant2_id
		FROM conversations
		WHERE least(participant1_id, participant2_id) = least($1, $2)
		  AND greatest(participant1_id, participant2_id) = greatest($1, $2)
	`

	var conversation models.Conversation
	err := r.db.QueryRow(ctx, query, userA, userB).Scan(
		&conversation.ID,
		&conversation.Participant1ID,
		&conversation.Participant2ID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}

	return &conversation, nil
}

// GetConversationByID retrieves a conversation by ID
func (r *MessagingRepository) GetConversationByID(ctx context.Context, id int64) (*models.Conversation, error) {
	query := `
		SELECT id, participant1_id, participant2_id
		FROM conversations
		WHERE id = $1
	`

	var conversation models.Conversation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&conversation.ID,
		&conversation.Participant1ID,
		&conversation.Participant2ID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}

	return &conversation, nil
}

// GetConversationsByUser retrieves all conversations the user participates in
func (r *MessagingRepository) GetConversationsByUser(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	query := `
		SELECT id, participant1_id, participant2_id
		FROM conversations
		WHERE participant1_id = $1 OR participant2_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		var conversation models.Conversation
		err := rows.Scan(
			&conversation.ID,
			&conversation.Participant1ID,
			&conversation.Participant2ID,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		conversations = append(conversations, &conversation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversations: %w", err)
	}

	return conversations, nil
}

// CreateMessage appends a message to a conversation
func (r *MessagingRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, sent_at
	`

	err := r.db.QueryRow(ctx, query,
		message.ConversationID,
		message.SenderID,
		message.Content,
	).Scan(&message.ID, &message.SentAt)
	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}

	return nil
}

// GetMessagesByConversation retrieves all messages of a conversation in send
// order. The id tie-break keeps messages with equal timestamps in a stable
// order.
func (r *MessagingRepository) GetMessagesByConversation(ctx context.Context, conversationID int64) ([]*models.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, content, sent_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY sent_at, id
	`

	rows, err := r.db.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var message models.Message
		err := rows.Scan(
			&message.ID,
			&message.ConversationID,
			&message.SenderID,
			&message.Content,
			&message.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
