package counter

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "post:clicks:"
	pendingKey = "post:clicks:pending"
)

// ClickWriter persists click increments on the posts table.
type ClickWriter interface {
	AddClicks(ctx context.Context, postID uint, n int64) error
}

// DBClickCounter writes every click straight to the database.
type DBClickCounter struct {
	writer ClickWriter
}

func NewDBClickCounter(writer ClickWriter) *DBClickCounter {
	return &DBClickCounter{writer: writer}
}

func (c *DBClickCounter) Incr(ctx context.Context, postID uint) error {
	return c.writer.AddClicks(ctx, postID, 1)
}

// RedisClickCounter buffers clicks in Redis until a Flusher drains them.
type RedisClickCounter struct {
	client *redis.Client
}

func NewRedisClickCounter(client *redis.Client) *RedisClickCounter {
	return &RedisClickCounter{client: client}
}

func clickKey(postID uint) string {
	return keyPrefix + strconv.FormatUint(uint64(postID), 10)
}

// Incr counts one click and marks the post as pending.
func (c *RedisClickCounter) Incr(ctx context.Context, postID uint) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, clickKey(postID))
	pipe.SAdd(ctx, pendingKey, postID)
	_, err := pipe.Exec(ctx)
	return err
}

// Drain pops up to batch pending posts and returns their buffered counts,
// resetting them in Redis. A post clicked again while draining is re-marked
// pending by Incr, so no click is lost. On error the counts drained so far
// are still returned and the posts not yet drained stay pending.
func (c *RedisClickCounter) Drain(ctx context.Context, batch int64) (map[uint]int64, error) {
	members, err := c.client.SPopN(ctx, pendingKey, batch).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("pop pending posts: %w", err)
	}

	counts := make(map[uint]int64, len(members))
	for i, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		n, err := c.client.GetDel(ctx, clickKey(uint(id))).Int64()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			err = fmt.Errorf("drain clicks of post %d: %w", id, err)
			return counts, errors.Join(err, c.markPending(ctx, members[i:]))
		}
		if n > 0 {
			counts[uint(id)] = n
		}
	}
	return counts, nil
}

// markPending returns popped members to the pending set so the next drain
// picks them up again.
func (c *RedisClickCounter) markPending(ctx context.Context, members []string) error {
	ids := make([]interface{}, len(members))
	for i, m := range members {
		ids[i] = m
	}
	if err := c.client.SAdd(ctx, pendingKey, ids...).Err(); err != nil {
		return fmt.Errorf("re-mark %d pending posts: %w", len(members), err)
	}
	return nil
}

// Restore puts back clicks that could not be written to the database.
func (c *RedisClickCounter) Restore(ctx context.Context, postID uint, n int64) error {
	pipe := c.client.TxPipeline()
	pipe.IncrBy(ctx, clickKey(postID), n)
	pipe.SAdd(ctx, pendingKey, postID)
	_, err := pipe.Exec(ctx)
	return err
}
