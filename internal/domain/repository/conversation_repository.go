package repository

import (
	"context"

	"iecnexus/internal/domain/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	FindByParticipants(ctx context.Context, userA, userB string) (*entity.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error)
	SetLastMessage(ctx context.Context, conversationID string, snapshot *entity.MessageSnapshot) error
	Delete(ctx context.Context, id string) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessage(ctx context.Context, conversationID, messageID string) (*entity.Message, error)

	// ListMessagesPage returns up to pageSize messages newest-first. cursor is
	// the id of the oldest message of the previous page; empty means start
	// from the newest. nextCursor is empty when there is no more history.
	ListMessagesPage(ctx context.Context, conversationID, cursor string, pageSize int) (messages []*entity.Message, nextCursor string, err error)

	// MarkAllRead adds userID to readBy on every message of the conversation
	// that does not carry it yet. Idempotent.
	MarkAllRead(ctx context.Context, conversationID, userID string) error

	// UpdateMessageContent performs a single conditional write: the message
	// must exist in the conversation and be authored by senderID, otherwise a
	// NOT_FOUND error is returned without revealing which condition failed.
	UpdateMessageContent(ctx context.Context, conversationID, messageID, senderID, content string) (*entity.Message, error)

	// DeleteMessage has the same ownership precondition as
	// UpdateMessageContent and hard-deletes the message.
	DeleteMessage(ctx context.Context, conversationID, messageID, senderID string) error

	// ToggleReaction flips the (userID, emoji) pair on the message and
	// returns the resulting reaction list.
	ToggleReaction(ctx context.Context, conversationID, messageID, userID, emoji string) ([]entity.Reaction, error)

	// LatestMessage returns the newest message of the conversation, or a
	// NOT_FOUND error when the conversation has none.
	LatestMessage(ctx context.Context, conversationID string) (*entity.Message, error)

	DeleteAllMessages(ctx context.Context, conversationID string) error
}
