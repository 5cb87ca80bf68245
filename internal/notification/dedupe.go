package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DedupeTTL is how long a sent notification blocks a repeat.
const DedupeTTL = 7 * 24 * time.Hour

const dedupeKeyPrefix = "notify:sent:"

// Deduper guards against sending the same notification twice when an event
// is redelivered.
type Deduper interface {
	// Claim reports whether the caller is the first to send key.
	Claim(ctx context.Context, key string) (bool, error)
	// Release forgets key so a failed send can be retried.
	Release(ctx context.Context, key string) error
}

// RedisDeduper records sent notifications with SET NX.
type RedisDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDeduper connects to the Redis instance at redisURL.
func NewRedisDeduper(redisURL string, tlsInsecure bool) (*RedisDeduper, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if tlsInsecure {
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{}
		}
		opt.TLSConfig.InsecureSkipVerify = true
	}
	return NewRedisDeduperFromClient(redis.NewClient(opt), DedupeTTL), nil
}

func NewRedisDeduperFromClient(client *redis.Client, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{client: client, ttl: ttl}
}

func (d *RedisDeduper) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, dedupeKeyPrefix+key, time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	return ok, nil
}

func (d *RedisDeduper) Release(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, dedupeKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}

func (d *RedisDeduper) Close() error {
	return d.client.Close()
}

// NoopDeduper lets every notification through. Used without Redis.
type NoopDeduper struct{}

func (NoopDeduper) Claim(context.Context, string) (bool, error) { return true, nil }
func (NoopDeduper) Release(context.Context, string) error       { return nil }
