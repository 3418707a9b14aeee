// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package dedup remembers which inbound messages were already handled.
// Twilio re-delivers a webhook when it doesn't get a timely 200, and a
// re-delivered "subscribe" or vote must not be dispatched twice.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// seenTTL bounds how long a MessageSid is remembered. Twilio gives up
// re-delivering well inside a day.
const seenTTL = 24 * time.Hour

// Store tracks handled MessageSids in Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// New connects to Redis and verifies the connection.
func New(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient creates a store from an existing Redis client.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client, prefix: "seen:"}
}

// Seen marks a MessageSid handled and reports whether it already was.
// The first caller for a given sid gets false; everyone after gets true
// until the entry expires.
func (s *Store) Seen(ctx context.Context, messageSID string) (bool, error) {
	fresh, err := s.client.SetNX(ctx, s.prefix+messageSID, 1, seenTTL).Result()
	if err != nil {
		return false, fmt.Errorf("mark message seen: %w", err)
	}
	return !fresh, nil
}

// Ping checks if Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
