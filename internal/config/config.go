package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/cypherlabdev/kelly-sizer-service/internal/models"
)

// Config holds all configuration for kelly-sizer-service
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Sizing  SizingConfig  `mapstructure:"sizing"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"` // extension and page origins allowed by CORS
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"` // Topic to consume from (scraped_tables)
	GroupID string   `mapstructure:"group_id"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	TTL         time.Duration `mapstructure:"ttl"`           // sheet retention
	PageHistory int           `mapstructure:"page_history"` // sheets remembered per page
}

// SizingConfig holds the defaults used when a profile has no stored settings
type SizingConfig struct {
	DefaultProfile         string  `mapstructure:"default_profile"`
	DefaultBankroll        float64 `mapstructure:"default_bankroll"`
	DefaultKellyMultiplier float64 `mapstructure:"default_kelly_multiplier"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.allowed_origins", []string{"https://oddsjam.com", "chrome-extension://*"})

	v.SetDefault("kafka.enabled", true)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "scraped_tables")
	v.SetDefault("kafka.group_id", "kelly-sizer")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*time.Minute)
	v.SetDefault("redis.page_history", 20)

	v.SetDefault("sizing.default_profile", models.DefaultProfile)
	v.SetDefault("sizing.default_bankroll", 5000.0)
	v.SetDefault("sizing.default_kelly_multiplier", 1.05)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("KELLY_SIZER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// ToSettings converts the sizing defaults to settings for the given profile
func (c *SizingConfig) ToSettings(profile string) models.Settings {
	return models.Settings{
		Profile:         profile,
		Bankroll:        decimal.NewFromFloat(c.DefaultBankroll),
		KellyMultiplier: c.DefaultKellyMultiplier,
	}
}
