package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func photoCacheKey(roomID uuid.UUID, suffix string) string {
	return fmt.Sprintf("photos:%s:%s", roomID, suffix)
}

func statsCacheKey(roomID uuid.UUID) string {
	return fmt.Sprintf("roomstats:%s", roomID)
}

// invalidateRoomCache drops every cached read for a room. Invoked after any
// write that changes the gallery or its counters; best-effort, a cache miss
// is always safe.
func invalidateRoomCache(ctx context.Context, rdb *redis.Client, roomID uuid.UUID) {
	if rdb == nil {
		return
	}
	keys, _ := rdb.Keys(ctx, photoCacheKey(roomID, "*")).Result()
	keys = append(keys, statsCacheKey(roomID))
	_ = rdb.Del(ctx, keys...).Err()
}
