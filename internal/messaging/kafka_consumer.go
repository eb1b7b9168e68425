package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/kelly-sizer-service/internal/metrics"
	"github.com/cypherlabdev/kelly-sizer-service/internal/models"
	"github.com/cypherlabdev/kelly-sizer-service/internal/service"
)

// KafkaConsumer consumes scraped odds tables from Kafka and sizes them
type KafkaConsumer struct {
	reader *kafka.Reader
	sizer  service.TableSizer
	logger zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "scraped_tables"
	GroupID string   // e.g., "kelly-sizer"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	sizer service.TableSizer,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1,    // scrapes are small and latency matters
		MaxBytes:       10e6, // 10MB
		CommitInterval: 1000, // Commit every 1 second
	})

	return &KafkaConsumer{
		reader: reader,
		sizer:  sizer,
		logger: logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start consumes messages until ctx is canceled
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.logger.Info().Msg("stopping Kafka consumer")
				return nil
			}
			if errors.Is(err, io.EOF) {
				// reader closed
				return nil
			}
			c.logger.Error().Err(err).Msg("failed to fetch message")
			continue
		}

		if err := c.processMessage(ctx, msg); err != nil {
			c.logger.Error().
				Err(err).
				Int64("offset", msg.Offset).
				Str("key", string(msg.Key)).
				Msg("failed to process message")
			// Don't commit if processing failed
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error().Err(err).Msg("failed to commit message")
		}
	}
}

// processMessage sizes the scrape carried by a single Kafka message
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var kafkaMsg models.KafkaScrapedTableMessage
	if err := json.Unmarshal(msg.Value, &kafkaMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	table := &kafkaMsg.Table
	if table.ScrapeID == "" {
		table.ScrapeID = string(msg.Key)
	}
	if table.ScrapedAt.IsZero() {
		table.ScrapedAt = kafkaMsg.Timestamp
	}

	c.logger.Debug().
		Str("scrape_id", table.ScrapeID).
		Str("page_url", table.PageURL).
		Int("text_bytes", len(table.Text)).
		Msg("processing scraped table")

	sheet, err := c.sizer.SizeTable(ctx, table, metrics.SourceKafka)
	if err != nil {
		return fmt.Errorf("failed to size table: %w", err)
	}

	c.logger.Info().
		Str("sheet_id", sheet.ID).
		Int("row_count", sheet.RowCount).
		Int("unsized_count", sheet.UnsizedCount).
		Msg("processed scraped table")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
