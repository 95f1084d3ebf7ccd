package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Contexts expire after a day so abandoned listings clean themselves up.
const listContextTTL = 24 * time.Hour

// RedisManager stores conversational context in Redis, surviving restarts
// and shared across replicas.
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func listContextKey(userID int64) string {
	return fmt.Sprintf("user:%d:list", userID)
}

// SetListContext sets the list pagination context for a user
func (m *RedisManager) SetListContext(userID int64, lc ListContext) {
	data, err := json.Marshal(lc)
	if err != nil {
		return
	}
	m.client.Set(context.Background(), listContextKey(userID), data, listContextTTL)
}

// GetListContext gets the list pagination context for a user
func (m *RedisManager) GetListContext(userID int64) (ListContext, bool) {
	result := m.client.Get(context.Background(), listContextKey(userID))
	if result.Err() != nil {
		return ListContext{}, false
	}

	var lc ListContext
	if err := json.Unmarshal([]byte(result.Val()), &lc); err != nil {
		return ListContext{}, false
	}
	return lc, true
}

// ClearListContext clears the list pagination context for a user
func (m *RedisManager) ClearListContext(userID int64) {
	m.client.Del(context.Background(), listContextKey(userID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
