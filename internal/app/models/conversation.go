package models

import "time"

// Conversation defines a private conversation between two users. The pair is
// unordered: (A,B) and (B,A) are the same conversation, enforced by a unique
// index on (least(p1,p2), greatest(p1,p2)).
type Conversation struct {
	ID             int64 `json:"id" db:"id"`
	Participant1ID int64 `json:"participant1Id" db:"participant1_id"`
	Participant2ID int64 `json:"participant2Id" db:"participant2_id"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID int64) bool {
	return c.Participant1ID == userID || c.Participant2ID == userID
}

// OtherParticipant returns the participant that is not userID. The caller is
// expected to have checked HasParticipant first.
func (c *Conversation) OtherParticipant(userID int64) int64 {
	if c.Participant1ID == userID {
		return c.Participant2ID
	}
	return c.Participant1ID
}

// Message defines an immutable message inside a conversation, ordered by
// (sent_at, id).
type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversationId" db:"conversation_id"`
	SenderID       int64     `json:"senderId" db:"sender_id"`
	Content        string    `json:"content" db:"content"`
	SentAt         time.Time `json:"sentAt" db:"sent_at"`
}
