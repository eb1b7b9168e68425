package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/kelly-sizer-service/internal/models"
)

// ErrNotFound is returned when a profile has no stored settings
var ErrNotFound = errors.New("settings not found")

// RedisStore persists sizing settings per profile. Entries never expire.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a settings store on an existing Redis client
func NewRedisStore(client *redis.Client, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger.With().Str("component", "settings_store").Logger(),
	}
}

func settingsKey(profile string) string {
	return fmt.Sprintf("settings:%s", profile)
}

// Get returns the stored settings of a profile
func (s *RedisStore) Get(ctx context.Context, profile string) (*models.Settings, error) {
	data, err := s.client.Get(ctx, settingsKey(profile)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get settings from Redis: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &settings, nil
}

// Save stores the settings of a profile, replacing any previous value
func (s *RedisStore) Save(ctx context.Context, settings *models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := s.client.Set(ctx, settingsKey(settings.Profile), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save settings to Redis: %w", err)
	}

	s.logger.Info().
		Str("profile", settings.Profile).
		Str("bankroll", settings.Bankroll.String()).
		Float64("kelly_multiplier", settings.KellyMultiplier).
		Msg("settings saved")

	return nil
}
