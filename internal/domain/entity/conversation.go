package entity

import "time"

// Conversation is a 1:1 chat between exactly two users. A pair of users has
// at most one conversation; participant order carries no meaning.
type Conversation struct {
	ID           string           `json:"id" firestore:"id"`
	Participants []string         `json:"participants" firestore:"participants"`
	LastMessage  *MessageSnapshot `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	CreatedAt    time.Time        `json:"created_at" firestore:"createdAt"`
}

// MessageSnapshot is the denormalized copy of the most recent message kept on
// the parent conversation for cheap inbox rendering.
type MessageSnapshot struct {
	MessageID string    `json:"message_id" firestore:"messageId"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Content   string    `json:"content" firestore:"content"`
	ImageURL  string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID. Empty string
// when userID is not a participant.
func (c *Conversation) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
