package redisx

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// Storage implements fiber.Storage on top of redis so the limiter and csrf
// middleware share state across instances. Keys are namespaced by prefix.
type Storage struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewStorage(rdb redis.UniversalClient, prefix string) *Storage {
	return &Storage{rdb: rdb, prefix: prefix}
}

func (s *Storage) key(k string) string { return s.prefix + k }

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}

// Get returns nil, nil for a missing key as fiber expects.
func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	c, cancel := opCtx()
	defer cancel()
	b, err := s.rdb.Get(c, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	c, cancel := opCtx()
	defer cancel()
	return s.rdb.Set(c, s.key(key), val, exp).Err()
}

func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}
	c, cancel := opCtx()
	defer cancel()
	return s.rdb.Del(c, s.key(key)).Err()
}

// Reset drops every key under the prefix.
func (s *Storage) Reset() error {
	c, cancel := opCtx()
	defer cancel()
	iter := s.rdb.Scan(c, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(c) {
		if err := s.rdb.Del(c, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *Storage) Close() error { return s.rdb.Close() }

func Ping(rdb redis.UniversalClient) error {
	c, cancel := opCtx()
	defer cancel()
	return rdb.Ping(c).Err()
}
