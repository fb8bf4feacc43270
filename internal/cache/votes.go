package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	voteKeyPrefix       = "feedbackboard:votes:"
	generationKeyPrefix = "feedbackboard:votes-gen:"

	// generationTTL must outlive any single read-through by a wide margin
	generationTTL = 24 * time.Hour
)

// VoteCountCache is a Redis read-through cache of per-feedback vote counts.
// The database stays authoritative; entries expire after ttl and are
// deleted whenever the count changes.
//
// Every change also bumps a per-feedback generation. A reader takes the
// generation before counting in the database and Set only stores the count
// if the generation is still the same, so a count read before a vote can
// never be written back after that vote's invalidation.
type VoteCountCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVoteCountCache(client *redis.Client, ttl time.Duration) *VoteCountCache {
	return &VoteCountCache{client: client, ttl: ttl}
}

func voteKey(feedbackID uint) string {
	return voteKeyPrefix + strconv.FormatUint(uint64(feedbackID), 10)
}

func generationKey(feedbackID uint) string {
	return generationKeyPrefix + strconv.FormatUint(uint64(feedbackID), 10)
}

// Get returns the cached count. ok is false on a miss.
func (c *VoteCountCache) Get(ctx context.Context, feedbackID uint) (count int64, ok bool, err error) {
	count, err = c.client.Get(ctx, voteKey(feedbackID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read vote count for feedback %d: %w", feedbackID, err)
	}
	return count, true, nil
}

// Generation returns the current change generation of feedbackID, 0 if it
// never changed.
func (c *VoteCountCache) Generation(ctx context.Context, feedbackID uint) (int64, error) {
	gen, err := readGeneration(ctx, c.client, feedbackID)
	if err != nil {
		return 0, fmt.Errorf("failed to read vote generation for feedback %d: %w", feedbackID, err)
	}
	return gen, nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd stringGetter, feedbackID uint) (int64, error) {
	gen, err := cmd.Get(ctx, generationKey(feedbackID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set stores count if the generation still equals gen. A count computed
// before a concurrent change is dropped silently.
func (c *VoteCountCache) Set(ctx context.Context, feedbackID uint, gen, count int64) error {
	genKey := generationKey(feedbackID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, feedbackID)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, voteKey(feedbackID), count, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil, errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("failed to cache vote count for feedback %d: %w", feedbackID, err)
	}
}

var errStaleGeneration = errors.New("vote generation changed")

// Invalidate bumps the generation of feedbackID and drops its cached count
func (c *VoteCountCache) Invalidate(ctx context.Context, feedbackID uint) error {
	genKey := generationKey(feedbackID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, voteKey(feedbackID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate vote count for feedback %d: %w", feedbackID, err)
	}
	return nil
}

// Ping reports whether Redis is reachable
func (c *VoteCountCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
