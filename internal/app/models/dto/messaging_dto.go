package dto

import "time"

// MaxMessageLength bounds the content of a single message.
const MaxMessageLength = 1000

// CreateConversationRequest opens a conversation between the caller and
// another user
type CreateConversationRequest struct {
	ParticipantID int64 `json:"participantId" binding:"required"`
}

// CreateConversationResponse returns the created conversation's id
type CreateConversationResponse struct {
	ConversationID int64 `json:"conversationId"`
}

// InterlocutorResponse is the public identity of the other participant
type InterlocutorResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ConversationResponse lists one conversation from the caller's point of
// view; the caller's own identity is never projected.
type ConversationResponse struct {
	ConversationID int64                `json:"conversationId"`
	Interlocutor   InterlocutorResponse `json:"interlocutor"`
}

// SendMessageRequest appends a message to a conversation
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// MessageResponse represents one message in a conversation history
type MessageResponse struct {
	ID       int64     `json:"id"`
	SenderID int64     `json:"senderId"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sentAt"`
	IsSelf   bool      `json:"isSelf"`
}

// ConversationMessagesResponse is the full ordered history of a conversation
type ConversationMessagesResponse struct {
	ConversationID int64             `json:"conversationId"`
	Messages       []MessageResponse `json:"messages"`
}
