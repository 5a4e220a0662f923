package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"iecnexus/internal/domain/entity"
)

const (
	leaderboardKey = "leaderboard:top"
	leaderboardTTL = time.Minute
)

// RedisLeaderboard caches the computed top-N snapshot so the public
// leaderboard endpoint does not hit Firestore on every request.
type RedisLeaderboard struct {
	cli *redis.Client
}

// Connect connects to the Redis server and pings it to ensure the connection
// is working.
func Connect(ctx context.Context, addr string) (*RedisLeaderboard, error) {
	cli := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisLeaderboard{
		cli: cli,
	}, nil
}

// Get returns the cached snapshot, or (nil, nil) on a miss.
func (r *RedisLeaderboard) Get(ctx context.Context) ([]*entity.PublicProfile, error) {
	data, err := r.cli.Get(ctx, leaderboardKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	var entries []*entity.PublicProfile
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal leaderboard: %w", err)
	}
	return entries, nil
}

func (r *RedisLeaderboard) Set(ctx context.Context, entries []*entity.PublicProfile) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal leaderboard: %w", err)
	}
	if err := r.cli.Set(ctx, leaderboardKey, data, leaderboardTTL).Err(); err != nil {
		return fmt.Errorf("set leaderboard: %w", err)
	}
	return nil
}

func (r *RedisLeaderboard) Invalidate(ctx context.Context) error {
	if err := r.cli.Del(ctx, leaderboardKey).Err(); err != nil {
		return fmt.Errorf("invalidate leaderboard: %w", err)
	}
	return nil
}

func (r *RedisLeaderboard) Close() error {
	return r.cli.Close()
}
