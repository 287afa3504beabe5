package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mindly-app/duel-engine/internal/models"
)

// Cache stores recent trivia responses in Redis so a burst of duels on the
// same subject does not hammer the provider. Cache failures degrade to a
// direct fetch and are only logged.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache connects to Redis and returns a Cache
func NewCache(address, password string, db int, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{
		client: client,
		ttl:    ttl,
	}, nil
}

func cacheKey(subject models.Subject, difficulty models.Difficulty, amount int) string {
	return fmt.Sprintf("trivia:%s:%s:%d", subject, difficulty, amount)
}

// Get returns cached questions for the parameters, if present
func (c *Cache) Get(ctx context.Context, subject models.Subject, difficulty models.Difficulty, amount int) ([]models.Question, bool) {
	data, err := c.client.Get(ctx, cacheKey(subject, difficulty, amount)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("trivia cache read failed", "error", err)
		}
		return nil, false
	}

	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		slog.Warn("trivia cache entry malformed", "error", err)
		return nil, false
	}

	return questions, true
}

// Set stores questions for the parameters with the configured TTL
func (c *Cache) Set(ctx context.Context, subject models.Subject, difficulty models.Difficulty, amount int, questions []models.Question) {
	data, err := json.Marshal(questions)
	if err != nil {
		slog.Warn("failed to marshal trivia cache entry", "error", err)
		return
	}

	if err := c.client.Set(ctx, cacheKey(subject, difficulty, amount), data, c.ttl).Err(); err != nil {
		slog.Warn("trivia cache write failed", "error", err)
	}
}

// Ping checks Redis connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}
