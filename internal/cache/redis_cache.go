package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/kelly-sizer-service/internal/models"
)

// ErrNotFound is returned when a sheet is absent or expired
var ErrNotFound = errors.New("sheet not found in cache")

// RedisCache caches sized sheets in Redis
type RedisCache struct {
	client      *redis.Client
	ttl         time.Duration
	pageHistory int64
	logger      zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr        string // e.g., "localhost:6379"
	Password    string
	DB          int
	TTL         time.Duration // e.g., 30 * time.Minute
	PageHistory int           // sheet ids kept per page
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return NewRedisCacheWithClient(client, config, logger)
}

// NewRedisCacheWithClient creates a cache on an existing client
func NewRedisCacheWithClient(client *redis.Client, config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	history := int64(config.PageHistory)
	if history <= 0 {
		history = 1
	}

	return &RedisCache{
		client:      client,
		ttl:         config.TTL,
		pageHistory: history,
		logger:      logger.With().Str("component", "redis_cache").Logger(),
	}
}

func sheetKey(id string) string {
	return fmt.Sprintf("sheet:%s", id)
}

func pageKey(pageURL string) string {
	return fmt.Sprintf("page:%s:sheets", models.PageKey(pageURL))
}

// Set caches a sheet and records it in its page's history
func (c *RedisCache) Set(ctx context.Context, sheet *models.Sheet) error {
	data, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal sheet: %w", err)
	}

	key := sheetKey(sheet.ID)

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	if sheet.PageURL != "" {
		page := pageKey(sheet.PageURL)
		pipe.LPush(ctx, page, sheet.ID)
		pipe.LTrim(ctx, page, 0, c.pageHistory-1)
		pipe.Expire(ctx, page, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Int("row_count", sheet.RowCount).
		Dur("ttl", c.ttl).
		Msg("cached sheet")

	return nil
}

// Get retrieves a cached sheet
func (c *RedisCache) Get(ctx context.Context, id string) (*models.Sheet, error) {
	data, err := c.client.Get(ctx, sheetKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var sheet models.Sheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sheet: %w", err)
	}

	return &sheet, nil
}

// GetByPage retrieves the recent sheets of a page, newest first.
// Expired or corrupt entries are skipped.
func (c *RedisCache) GetByPage(ctx context.Context, pageURL string) ([]*models.Sheet, error) {
	ids, err := c.client.LRange(ctx, pageKey(pageURL), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read page history: %w", err)
	}

	sheets := make([]*models.Sheet, 0, len(ids))
	for _, id := range ids {
		sheet, err := c.Get(ctx, id)
		if err != nil {
			c.logger.Warn().Err(err).Str("sheet_id", id).Msg("skipping sheet in page history")
			continue
		}
		sheets = append(sheets, sheet)
	}

	return sheets, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
