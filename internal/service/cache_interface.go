package service

import (
	"context"

	"github.com/cypherlabdev/kelly-sizer-service/internal/models"
)

// Cache is an interface that abstracts sheet cache operations
// This allows for easier testing and mocking
type Cache interface {
	Set(ctx context.Context, sheet *models.Sheet) error
	Get(ctx context.Context, id string) (*models.Sheet, error)
	GetByPage(ctx context.Context, pageURL string) ([]*models.Sheet, error)
	Ping(ctx context.Context) error
	Close() error
}

// SettingsStore abstracts persisted per-profile sizing settings
type SettingsStore interface {
	Get(ctx context.Context, profile string) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
}
