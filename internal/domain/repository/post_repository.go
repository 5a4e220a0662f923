package repository

import (
	"context"

	"iecnexus/internal/domain/entity"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	ListPage(ctx context.Context, cursor string, pageSize int) (posts []*entity.Post, nextCursor string, err error)
	Delete(ctx context.Context, id string) error

	// ToggleLike flips userID's membership in the post's like set and returns
	// the state and like count after the call.
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, likeCount int, err error)

	// CreateComment inserts the comment and increments the post's
	// commentCount inside one transaction.
	CreateComment(ctx context.Context, comment *entity.Comment) error
	ListComments(ctx context.Context, postID string) ([]*entity.Comment, error)
	DeleteAllComments(ctx context.Context, postID string) error
}
