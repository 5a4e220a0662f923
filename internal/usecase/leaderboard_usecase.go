package usecase

import (
	"context"

	"iecnexus/internal/domain/entity"
	"iecnexus/internal/domain/repository"
	"iecnexus/pkg/errors"
	"iecnexus/pkg/logger"
)

// LeaderboardCache is a read-through snapshot cache; Get returns (nil, nil)
// on a miss. A nil cache disables caching entirely.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]*entity.PublicProfile, error)
	Set(ctx context.Context, entries []*entity.PublicProfile) error
	Invalidate(ctx context.Context) error
}

type LeaderboardUseCase struct {
	userRepo   repository.UserRepository
	cache      LeaderboardCache
	dispatcher NotificationDispatcher
	size       int
}

func NewLeaderboardUseCase(
	userRepo repository.UserRepository,
	cache LeaderboardCache,
	dispatcher NotificationDispatcher,
	size int,
) *LeaderboardUseCase {
	return &LeaderboardUseCase{
		userRepo:   userRepo,
		cache:      cache,
		dispatcher: dispatcher,
		size:       size,
	}
}

// Top returns the non-banned users with the highest scores. Cache failures
// degrade to a direct read.
func (uc *LeaderboardUseCase) Top(ctx context.Context) ([]*entity.PublicProfile, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx)
		if err != nil {
			logger.Warn("leaderboard: cache read: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	users, err := uc.userRepo.TopByScore(ctx, uc.size)
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.PublicProfile, 0, len(users))
	for _, user := range users {
		entries = append(entries, user.Public())
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, entries); err != nil {
			logger.Warn("leaderboard: cache write: %v", err)
		}
	}

	return entries, nil
}

// AddScore credits points, typically for an accepted daily-challenge
// solution, and drops the cached snapshot.
func (uc *LeaderboardUseCase) AddScore(ctx context.Context, userID string, delta int) error {
	if delta == 0 {
		return errors.BadRequest("Score delta must be non-zero", nil)
	}
	if err := uc.userRepo.AddScore(ctx, userID, delta); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// ResetWeekly zeroes every score and broadcasts the outgoing winner to all
// users holding a device token. Returns the winner, or nil when the board
// was empty.
func (uc *LeaderboardUseCase) ResetWeekly(ctx context.Context) (*entity.PublicProfile, error) {
	top, err := uc.userRepo.TopByScore(ctx, 1)
	if err != nil {
		return nil, err
	}

	var winner *entity.PublicProfile
	if len(top) > 0 && top[0].Score > 0 {
		winner = top[0].Public()
	}

	if err := uc.userRepo.ResetAllScores(ctx); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	if winner != nil {
		uc.dispatcher.BroadcastAsync(
			"Weekly leaderboard reset",
			winner.Name+" topped this week's leaderboard. A new week begins now!",
			"/leaderboard",
			CategoryLeaderboard,
		)
	}

	return winner, nil
}

func (uc *LeaderboardUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		logger.Warn("leaderboard: cache invalidate: %v", err)
	}
}
