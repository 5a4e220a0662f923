package repository

import (
	"context"

	"iecnexus/internal/domain/entity"
)

type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) error
	GetByID(ctx context.Context, id string) (*entity.Group, error)
	GetByInviteCode(ctx context.Context, code string) (*entity.Group, error)
	ListByMember(ctx context.Context, userID string) ([]*entity.Group, error)
	Update(ctx context.Context, group *entity.Group) error
	Delete(ctx context.Context, id string) error

	// AddMember appends the member inside a transaction. Returns false when
	// the user was already a member (no write, no error).
	AddMember(ctx context.Context, groupID string, member entity.GroupMember) (bool, error)
	RemoveMember(ctx context.Context, groupID, userID string) error
	SetMemberRole(ctx context.Context, groupID, userID, role string) error

	CreateMessage(ctx context.Context, message *entity.GroupMessage) error
	ListMessagesPage(ctx context.Context, groupID, cursor string, pageSize int) (messages []*entity.GroupMessage, nextCursor string, err error)
	MarkAllRead(ctx context.Context, groupID, userID string) error
	ToggleReaction(ctx context.Context, groupID, messageID, userID, emoji string) ([]entity.Reaction, error)
	DeleteAllMessages(ctx context.Context, groupID string) error

	CreateAnnouncement(ctx context.Context, announcement *entity.Announcement) error
	ListAnnouncements(ctx context.Context, groupID string) ([]*entity.Announcement, error)
	DeleteAllAnnouncements(ctx context.Context, groupID string) error
}
