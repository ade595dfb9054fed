package database

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client from a redis:// URL and verifies the
// connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL cannot be empty")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Println("Successfully connected to Redis.")
	return client, nil
}

// CloseRedisClient closes the Redis client.
func CloseRedisClient(client *redis.Client) {
	if client != nil {
		if err := client.Close(); err != nil {
			log.Printf("Error closing Redis client: %v\n", err)
		} else {
			log.Println("Redis client closed.")
		}
	}
}
