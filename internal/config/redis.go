package config

import "github.com/go-redis/redis/v8"

// NewRedisClient returns a client for the idempotent key store at addr.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}
