package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

var (
	ErrNilClient   = errors.New("redis client is nil")
	ErrInvalidUser = contractx.ErrInvalidUser
)

const (
	defaultKeyPrefix = "lms:interactions:"
	defaultTTL       = 7 * 24 * time.Hour
	defaultMaxItems  = 50
)

// Option customizes RedisLog.
type Option func(*RedisLog)

func WithKeyPrefix(prefix string) Option {
	return func(s *RedisLog) {
		trimmed := strings.TrimSpace(prefix)
		if trimmed != "" {
			s.keyPrefix = trimmed
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(s *RedisLog) {
		s.ttl = ttl
	}
}

// WithMaxItems bounds the per-user list kept in redis.
func WithMaxItems(n int) Option {
	return func(s *RedisLog) {
		s.maxItems = n
	}
}

// RedisLog keeps the most recent interactions of each user in a capped redis list.
type RedisLog struct {
	client    redis.Cmdable
	keyPrefix string
	ttl       time.Duration
	maxItems  int
}

func NewRedisLog(client redis.Cmdable, opts ...Option) (*RedisLog, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	store := &RedisLog{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		ttl:       defaultTTL,
		maxItems:  defaultMaxItems,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}

	if store.ttl < 0 {
		return nil, errors.New("ttl must be >= 0")
	}
	if store.maxItems <= 0 {
		return nil, errors.New("max items must be > 0")
	}
	return store, nil
}

func (s *RedisLog) Record(ctx context.Context, in contractx.Interaction) error {
	key, err := s.redisKey(in.UserID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, int64(s.maxItems-1))
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record interaction: %w", err)
	}
	return nil
}

// History returns up to limit interactions, newest first.
func (s *RedisLog) History(ctx context.Context, userID string, limit int) ([]contractx.Interaction, error) {
	key, err := s.redisKey(userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.maxItems {
		limit = s.maxItems
	}

	raw, err := s.client.LRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}

	out := make([]contractx.Interaction, 0, len(raw))
	for _, item := range raw {
		var in contractx.Interaction
		if err := json.Unmarshal([]byte(item), &in); err != nil {
			return nil, fmt.Errorf("unmarshal interaction: %w", err)
		}
		out = append(out, in)
	}
	return out, nil
}

func (s *RedisLog) Clear(ctx context.Context, userID string) error {
	key, err := s.redisKey(userID)
	if err != nil {
		return err
	}
	return s.client.Del(ctx, key).Err()
}

func (s *RedisLog) redisKey(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrInvalidUser
	}
	return s.keyPrefix + userID, nil
}
