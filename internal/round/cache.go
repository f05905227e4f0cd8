package round

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gokatarajesh/quiz-bank/internal/grading"
)

// RedisSessionStore keeps round sessions in Redis so any API instance can grade them.
// The session document lives under round:<id>; per-position results live in the
// hash round:<id>:results so answers never rewrite each other.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ SessionStore = (*RedisSessionStore)(nil)

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (c *RedisSessionStore) key(id string) string {
	return "round:" + id
}

func (c *RedisSessionStore) resultsKey(id string) string {
	return "round:" + id + ":results"
}

func (c *RedisSessionStore) Save(ctx context.Context, sess Session) error {
	base := sess
	base.Results = nil
	data, err := json.Marshal(base)
	if err != nil {
		return err
	}

	fields := make([]interface{}, 0, 2*len(sess.Results))
	for pos, r := range sess.Results {
		raw, err := json.Marshal(r)
		if err != nil {
			return err
		}
		fields = append(fields, strconv.Itoa(pos), raw)
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.key(sess.ID), data, c.ttl)
		pipe.Del(ctx, c.resultsKey(sess.ID))
		if len(fields) > 0 {
			pipe.HSet(ctx, c.resultsKey(sess.ID), fields...)
			pipe.Expire(ctx, c.resultsKey(sess.ID), c.ttl)
		}
		return nil
	})
	return err
}

// RecordResult writes one position's result into the round's results hash.
func (c *RedisSessionStore) RecordResult(ctx context.Context, id string, result grading.Result) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}

	// EXPIRE doubles as the existence check and keeps an active round alive.
	alive, err := c.client.Expire(ctx, c.key(id), c.ttl).Result()
	if err != nil {
		return err
	}
	if !alive {
		return ErrRoundNotFound
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.resultsKey(id), strconv.Itoa(result.Position), raw)
		pipe.Expire(ctx, c.resultsKey(id), c.ttl)
		return nil
	})
	return err
}

func (c *RedisSessionStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}

	fields, err := c.client.HGetAll(ctx, c.resultsKey(id)).Result()
	if err != nil {
		return nil, err
	}
	sess.Results = make(map[int]grading.Result, len(fields))
	for field, raw := range fields {
		pos, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("round %s: bad result field %q", id, field)
		}
		var r grading.Result
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, err
		}
		sess.Results[pos] = r
	}
	return &sess, nil
}
