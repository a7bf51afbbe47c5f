package redisrepo

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	onlineSetKey  = "skillswap:presence:online"
	lastSeenKeyFx = "skillswap:presence:last_seen:"
	lastSeenTTL   = 30 * 24 * time.Hour
)

// PresenceRepo mirrors presence transitions into Redis. The gateway reads the
// online flag and last-seen back when it has no local record of a user.
type PresenceRepo struct {
	client *redis.Client
}

func NewPresenceRepo(client *redis.Client) *PresenceRepo {
	return &PresenceRepo{client: client}
}

func lastSeenKey(userID string) string {
	return lastSeenKeyFx + userID
}

// SetOnline marks userID online
func (r *PresenceRepo) SetOnline(ctx context.Context, userID string) error {
	if err := r.client.SAdd(ctx, onlineSetKey, userID).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeTransientStore, "failed to mark user online")
	}
	return nil
}

// SetOffline clears the online flag and records lastSeen
func (r *PresenceRepo) SetOffline(ctx context.Context, userID string, lastSeen time.Time) error {
	pipe := r.client.TxPipeline()
	pipe.SRem(ctx, onlineSetKey, userID)
	pipe.Set(ctx, lastSeenKey(userID), lastSeen.UTC().UnixMilli(), lastSeenTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeTransientStore, "failed to mark user offline")
	}
	return nil
}

// IsOnline reports whether the online set holds userID
func (r *PresenceRepo) IsOnline(ctx context.Context, userID string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, onlineSetKey, userID).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeTransientStore, "failed to read presence")
	}
	return ok, nil
}

// LastSeen returns the recorded last-seen time, or nil when none is stored
func (r *PresenceRepo) LastSeen(ctx context.Context, userID string) (*time.Time, error) {
	raw, err := r.client.Get(ctx, lastSeenKey(userID)).Result()
	if stderrors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTransientStore, "failed to read last seen")
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "corrupt last seen value")
	}
	ts := time.UnixMilli(ms).UTC()
	return &ts, nil
}

// Reset drops the online set. The server calls it at startup; one gateway
// process owns the set, and none of its connections survive a restart.
func (r *PresenceRepo) Reset(ctx context.Context) error {
	if err := r.client.Del(ctx, onlineSetKey).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeTransientStore, "failed to reset presence")
	}
	return nil
}
