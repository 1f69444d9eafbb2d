package redisstore

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/darasahub/njia/core"
	"github.com/darasahub/njia/core/session"
)

const keyPrefix = "njia:"

// Store is the durable storage tier, backed by redis so that a "remember
// me" session survives process restarts. Entries carry a TTL capped at the
// remember-me expiration delta; the session manager's own expiry check
// remains authoritative.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ session.Tier = (*Store)(nil)

func Open(conf *core.Config) (*Store, error) {
	opts, err := redis.ParseURL(conf.RedisURL)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "redisstore: parse url")
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "redisstore: ping")
	}
	return &Store{rdb: rdb, ttl: conf.RememberMeExpirationDelta}, nil
}

func (s *Store) Get(key string) (string, error) {
	val, err := s.rdb.Get(context.Background(), keyPrefix+key).Result()
	if err == redis.Nil {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", pkgerrors.Wrap(err, "redisstore: get")
	}
	return val, nil
}

func (s *Store) Set(key, value string) error {
	if err := s.rdb.Set(context.Background(), keyPrefix+key, value, s.ttl).Err(); err != nil {
		return pkgerrors.Wrap(err, "redisstore: set")
	}
	return nil
}

func (s *Store) Remove(key string) error {
	if err := s.rdb.Del(context.Background(), keyPrefix+key).Err(); err != nil {
		return pkgerrors.Wrap(err, "redisstore: remove")
	}
	return nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
