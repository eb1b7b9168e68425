package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempConfig writes content to a temporary YAML file and returns its path
func writeTempConfig(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	return tmpFile.Name()
}

// TestLoadConfig_Defaults tests loading configuration with default values
func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify server defaults
	assert.Equal(t, 8082, config.Server.Port)
	assert.Equal(t, 15*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, config.Server.WriteTimeout)
	assert.Equal(t, []string{"https://oddsjam.com", "chrome-extension://*"}, config.Server.AllowedOrigins)

	// Verify Kafka defaults
	assert.True(t, config.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "scraped_tables", config.Kafka.Topic)
	assert.Equal(t, "kelly-sizer", config.Kafka.GroupID)

	// Verify Redis defaults
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
	assert.Equal(t, "", config.Redis.Password)
	assert.Equal(t, 0, config.Redis.DB)
	assert.Equal(t, 30*time.Minute, config.Redis.TTL)
	assert.Equal(t, 20, config.Redis.PageHistory)

	// Verify sizing defaults
	assert.Equal(t, "default", config.Sizing.DefaultProfile)
	assert.Equal(t, 5000.0, config.Sizing.DefaultBankroll)
	assert.Equal(t, 1.05, config.Sizing.DefaultKellyMultiplier)

	// Verify logging defaults
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
}

// TestLoadConfig_WithFile tests loading configuration from file
func TestLoadConfig_WithFile(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: 9090
  read_timeout: 45s
  write_timeout: 45s
  allowed_origins:
    - https://example.com

kafka:
  enabled: false
  brokers:
    - broker1:9092
    - broker2:9092
  topic: test_topic
  group_id: test_group

redis:
  addr: redis:6379
  password: test_password
  db: 1
  ttl: 10m
  page_history: 5

sizing:
  default_profile: house
  default_bankroll: 2500
  default_kelly_multiplier: 0.5

logging:
  level: debug
  format: console
`)

	config, err := LoadConfig(path)

	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 45*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 45*time.Second, config.Server.WriteTimeout)
	assert.Equal(t, []string{"https://example.com"}, config.Server.AllowedOrigins)

	assert.False(t, config.Kafka.Enabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "test_topic", config.Kafka.Topic)
	assert.Equal(t, "test_group", config.Kafka.GroupID)

	assert.Equal(t, "redis:6379", config.Redis.Addr)
	assert.Equal(t, "test_password", config.Redis.Password)
	assert.Equal(t, 1, config.Redis.DB)
	assert.Equal(t, 10*time.Minute, config.Redis.TTL)
	assert.Equal(t, 5, config.Redis.PageHistory)

	assert.Equal(t, "house", config.Sizing.DefaultProfile)
	assert.Equal(t, 2500.0, config.Sizing.DefaultBankroll)
	assert.Equal(t, 0.5, config.Sizing.DefaultKellyMultiplier)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "console", config.Logging.Format)
}

// TestLoadConfig_InvalidFile tests loading with non-existent file
func TestLoadConfig_InvalidFile(t *testing.T) {
	config, err := LoadConfig("/nonexistent/config.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
}

// TestLoadConfig_MalformedFile tests loading with values of the wrong type
func TestLoadConfig_MalformedFile(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: invalid_port
  read_timeout: not_a_duration
`)

	config, err := LoadConfig(path)

	assert.Error(t, err)
	assert.Nil(t, config)
}

// TestLoadConfig_PartialFile tests loading with partial configuration
func TestLoadConfig_PartialFile(t *testing.T) {
	path := writeTempConfig(t, `
sizing:
  default_bankroll: 1000

# Other configs will use defaults
`)

	config, err := LoadConfig(path)

	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, 1000.0, config.Sizing.DefaultBankroll)
	assert.Equal(t, 1.05, config.Sizing.DefaultKellyMultiplier)
	assert.Equal(t, 8082, config.Server.Port)
	assert.Equal(t, "scraped_tables", config.Kafka.Topic)
}

// TestLoadConfig_EnvironmentVariables tests environment variable overrides
func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("KELLY_SIZER_SERVER_PORT", "7777")
	t.Setenv("KELLY_SIZER_REDIS_ADDR", "env-redis:6379")
	t.Setenv("KELLY_SIZER_SIZING_DEFAULT_BANKROLL", "12000")
	t.Setenv("KELLY_SIZER_SIZING_DEFAULT_KELLY_MULTIPLIER", "0.25")

	config, err := LoadConfig("")

	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, 7777, config.Server.Port)
	assert.Equal(t, "env-redis:6379", config.Redis.Addr)
	assert.Equal(t, 12000.0, config.Sizing.DefaultBankroll)
	assert.Equal(t, 0.25, config.Sizing.DefaultKellyMultiplier)
}

// TestToSettings tests conversion of sizing defaults to settings
func TestToSettings(t *testing.T) {
	sizing := SizingConfig{
		DefaultProfile:         "default",
		DefaultBankroll:        5000,
		DefaultKellyMultiplier: 1.05,
	}

	settings := sizing.ToSettings("alice")

	assert.Equal(t, "alice", settings.Profile)
	assert.True(t, decimal.NewFromInt(5000).Equal(settings.Bankroll))
	assert.Equal(t, 1.05, settings.KellyMultiplier)
	assert.True(t, settings.UpdatedAt.IsZero())

	params := settings.ToParams()
	assert.Equal(t, 5000.0, params.Bankroll)
	assert.Equal(t, 1.05, params.KellyMultiplier)
}

// TestLoggingConfig tests logging configuration values
func TestLoggingConfig(t *testing.T) {
	tests := []struct {
		name   string
		config LoggingConfig
	}{
		{"JSON production logging", LoggingConfig{Level: "info", Format: "json"}},
		{"Console development logging", LoggingConfig{Level: "debug", Format: "console"}},
		{"Error logging", LoggingConfig{Level: "error", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validLevels := []string{"debug", "info", "warn", "error"}
			assert.Contains(t, validLevels, tt.config.Level)

			validFormats := []string{"json", "console"}
			assert.Contains(t, validFormats, tt.config.Format)
		})
	}
}
