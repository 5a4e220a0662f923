package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleReaction(t *testing.T) {
	var reactions []Reaction

	reactions = ToggleReaction(reactions, "u1", "👍")
	assert.Equal(t, []Reaction{{UserID: "u1", Emoji: "👍"}}, reactions)

	// Distinct pairs coexist: other user, other emoji.
	reactions = ToggleReaction(reactions, "u2", "👍")
	reactions = ToggleReaction(reactions, "u1", "🔥")
	assert.Len(t, reactions, 3)

	// Toggling an existing pair removes exactly that pair.
	reactions = ToggleReaction(reactions, "u1", "👍")
	assert.Equal(t, []Reaction{{UserID: "u2", Emoji: "👍"}, {UserID: "u1", Emoji: "🔥"}}, reactions)

	// Toggle twice is the identity.
	before := append([]Reaction(nil), reactions...)
	reactions = ToggleReaction(reactions, "u2", "🎉")
	reactions = ToggleReaction(reactions, "u2", "🎉")
	assert.Equal(t, before, reactions)
}

func TestConversationParticipants(t *testing.T) {
	c := &Conversation{Participants: []string{"alice", "bob"}}

	assert.True(t, c.HasParticipant("alice"))
	assert.False(t, c.HasParticipant("carol"))
	assert.Equal(t, "bob", c.OtherParticipant("alice"))
	assert.Equal(t, "alice", c.OtherParticipant("bob"))
}

func TestMessageSnapshot(t *testing.T) {
	m := &Message{ID: "m1", SenderID: "alice", Content: "hi", ImageURL: "https://x/y.png"}
	s := m.Snapshot()

	assert.Equal(t, "m1", s.MessageID)
	assert.Equal(t, "alice", s.SenderID)
	assert.Equal(t, "hi", s.Content)
	assert.Equal(t, "https://x/y.png", s.ImageURL)
}
