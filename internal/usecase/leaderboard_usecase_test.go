package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iecnexus/internal/domain/entity"
)

func newLeaderboardFixture(t *testing.T, cache LeaderboardCache) (*LeaderboardUseCase, *memUserRepo, *recordingDispatcher) {
	t.Helper()
	userRepo := newMemUserRepo(
		&entity.User{ID: "first", Name: "Fiona", Role: entity.RoleStudent, Score: 300, FCMToken: "tok-1"},
		&entity.User{ID: "second", Name: "Sami", Role: entity.RoleStudent, Score: 200},
		&entity.User{ID: "third", Name: "Tia", Role: entity.RoleStudent, Score: 100},
		&entity.User{ID: "cheater", Name: "Chad", Role: entity.RoleStudent, Score: 999, IsBanned: true},
	)
	dispatcher := &recordingDispatcher{}
	uc := NewLeaderboardUseCase(userRepo, cache, dispatcher, 2)
	return uc, userRepo, dispatcher
}

func TestTopExcludesBannedAndCaps(t *testing.T) {
	uc, _, _ := newLeaderboardFixture(t, nil)

	entries, err := uc.Top(context.Background())
	require.NoError(t, err)

	// Size 2, so only the top two non-banned users appear, in order.
	require.Len(t, entries, 2)
	assert.Equal(t, "Fiona", entries[0].Name)
	assert.Equal(t, "Sami", entries[1].Name)
}

func TestTopCacheReadThrough(t *testing.T) {
	cache := &stubCache{}
	uc, repo, _ := newLeaderboardFixture(t, cache)
	ctx := context.Background()

	_, err := uc.Top(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.topCalls)
	assert.Equal(t, 1, cache.sets)

	// Second read is served from the cache.
	entries, err := uc.Top(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 1, repo.topCalls)
}

func TestAddScore(t *testing.T) {
	cache := &stubCache{}
	uc, repo, _ := newLeaderboardFixture(t, cache)
	ctx := context.Background()

	err := uc.AddScore(ctx, "third", 0)
	assertAppError(t, err, "BAD_REQUEST")

	require.NoError(t, uc.AddScore(ctx, "third", 50))
	assert.Equal(t, 150, repo.users["third"].Score)
	assert.Equal(t, 1, cache.invalidates)
}

func TestResetWeekly(t *testing.T) {
	cache := &stubCache{}
	uc, repo, dispatcher := newLeaderboardFixture(t, cache)
	ctx := context.Background()

	winner, err := uc.ResetWeekly(ctx)
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, "Fiona", winner.Name)

	for _, user := range repo.users {
		assert.Zero(t, user.Score)
	}
	assert.Equal(t, 1, cache.invalidates)

	require.Len(t, dispatcher.broadcasts, 1)
	assert.Contains(t, dispatcher.broadcasts[0].Body, "Fiona")
	assert.Equal(t, CategoryLeaderboard, dispatcher.broadcasts[0].Category)
}

func TestResetWeeklyEmptyBoard(t *testing.T) {
	userRepo := newMemUserRepo()
	dispatcher := &recordingDispatcher{}
	uc := NewLeaderboardUseCase(userRepo, nil, dispatcher, 50)

	winner, err := uc.ResetWeekly(context.Background())
	require.NoError(t, err)
	assert.Nil(t, winner)
	assert.Empty(t, dispatcher.broadcasts)
	assert.Equal(t, 1, userRepo.resetCalls)
}

func TestResetWeeklyAllZeroScores(t *testing.T) {
	userRepo := newMemUserRepo(
		&entity.User{ID: "idle", Name: "Ida", Role: entity.RoleStudent, Score: 0},
	)
	dispatcher := &recordingDispatcher{}
	uc := NewLeaderboardUseCase(userRepo, nil, dispatcher, 50)

	// Nobody earned points this week: no winner, no broadcast.
	winner, err := uc.ResetWeekly(context.Background())
	require.NoError(t, err)
	assert.Nil(t, winner)
	assert.Empty(t, dispatcher.broadcasts)
}
