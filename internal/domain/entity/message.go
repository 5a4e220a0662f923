package entity

import "time"

type Reaction struct {
	UserID string `json:"user_id" firestore:"userId"`
	Emoji  string `json:"emoji" firestore:"emoji"`
}

type Message struct {
	ID             string     `json:"id" firestore:"id"`
	ConversationID string     `json:"conversation_id" firestore:"conversationId"`
	SenderID       string     `json:"sender_id" firestore:"senderId"`
	Content        string     `json:"content" firestore:"content"`
	ImageURL       string     `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Timestamp      time.Time  `json:"timestamp" firestore:"timestamp"`
	ReadBy         []string   `json:"read_by" firestore:"readBy"`
	Reactions      []Reaction `json:"reactions" firestore:"reactions"`
	IsEdited       bool       `json:"is_edited" firestore:"isEdited"`
}

func (m *Message) ReadByUser(userID string) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleReaction adds the (userID, emoji) pair, or removes it when already
// present, and returns the resulting list.
func ToggleReaction(reactions []Reaction, userID, emoji string) []Reaction {
	for i, r := range reactions {
		if r.UserID == userID && r.Emoji == emoji {
			return append(reactions[:i:i], reactions[i+1:]...)
		}
	}
	return append(reactions, Reaction{UserID: userID, Emoji: emoji})
}

func (m *Message) Snapshot() *MessageSnapshot {
	return &MessageSnapshot{
		MessageID: m.ID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		ImageURL:  m.ImageURL,
		Timestamp: m.Timestamp,
	}
}
