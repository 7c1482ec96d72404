package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// ConnectRedis opens a Redis client for the catalog cache. The client is
// returned rather than stored globally so callers can treat a failed ping
// as "cache disabled" instead of a boot failure.
func ConnectRedis(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
