// Package cache holds the optional Redis read-through cache for user profiles.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const profileKeyPrefix = "profile:"

// Profile is the public part of a user record. It never carries the password digest.
type Profile struct {
	Username string  `json:"username"`
	FullName *string `json:"full_name"`
	Email    string  `json:"email"`
}

// ProfileCache stores profiles by username. Users are immutable once created,
// so entries only expire by TTL.
type ProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProfileCache(rdb *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{rdb: rdb, ttl: ttl}
}

// Connect creates a client for addr and checks it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Get returns the cached profile. Misses and Redis failures both report false;
// the caller falls back to the store.
func (c *ProfileCache) Get(ctx context.Context, username string) (*Profile, bool) {
	val, err := c.rdb.Get(ctx, profileKeyPrefix+username).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Error reading profile cache for %q: %v", username, err)
		}
		return nil, false
	}

	var p Profile
	if err := json.Unmarshal(val, &p); err != nil {
		log.Printf("Discarding corrupt profile cache entry for %q: %v", username, err)
		return nil, false
	}
	return &p, true
}

// Set stores p. Failures are logged and otherwise ignored.
func (c *ProfileCache) Set(ctx context.Context, p *Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("Error marshaling profile for cache: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, profileKeyPrefix+p.Username, data, c.ttl).Err(); err != nil {
		log.Printf("Error writing profile cache for %q: %v", p.Username, err)
	}
}
