package service

import (
	"context"

	"github.com/cypherlabdev/kelly-sizer-service/internal/models"
	"github.com/cypherlabdev/kelly-sizer-service/pkg/kelly"
)

// Sizer is an interface that abstracts the odds engine
// This allows for easier testing and mocking
type Sizer interface {
	SizeTable(raw string, params kelly.Params) []kelly.RowResult
	SizeBet(trueOdds, bookOdds string, params kelly.Params) kelly.BetSize
}

// TableSizer sizes a scrape end to end; implemented by SizingService and used by the Kafka consumer
type TableSizer interface {
	SizeTable(ctx context.Context, table *models.ScrapedTable, source string) (*models.Sheet, error)
}
