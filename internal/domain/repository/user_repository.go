package repository

import (
	"context"

	"iecnexus/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SetDeviceToken(ctx context.Context, userID, token string) error
	SetBanned(ctx context.Context, userID string, banned bool) error

	// ToggleFollow flips the follow relationship from followerID to targetID.
	// Both sides (following on the follower, followers on the target) are
	// written in a single transaction. Returns whether followerID is
	// following targetID after the call.
	ToggleFollow(ctx context.Context, followerID, targetID string) (bool, error)

	SearchByName(ctx context.Context, prefix string, limit int) ([]*entity.User, error)
	TopByScore(ctx context.Context, limit int) ([]*entity.User, error)
	AddScore(ctx context.Context, userID string, delta int) error
	ResetAllScores(ctx context.Context) error
	ListWithDeviceTokens(ctx context.Context) ([]*entity.User, error)
}
