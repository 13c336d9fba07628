package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thalha-dev/vouge-vista/internal/domain"
	pkgkafka "github.com/thalha-dev/vouge-vista/pkg/kafka"
)

// Kafka topic constants for catalog domain events.
const (
	TopicShoeCreated = "vougevista.shoe.created"
	TopicShoeUpdated = "vougevista.shoe.updated"
	TopicShoeDeleted = "vougevista.shoe.deleted"
)

// Aggregate type constant.
const AggregateTypeShoe = "shoe"

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// ShoeData is the payload for shoe.created and shoe.updated events.
type ShoeData struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Brand          string   `json:"brand"`
	Price          float64  `json:"price"`
	Size           float64  `json:"size"`
	Color          string   `json:"color"`
	AvailableCount int      `json:"available_count"`
	ImageURLs      []string `json:"image_urls"`
}

// ShoeDeletedData is the payload for a shoe.deleted event.
type ShoeDeletedData struct {
	ID string `json:"id"`
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func shoeData(s *domain.Shoe) ShoeData {
	urls := make([]string, len(s.Images))
	for i, img := range s.Images {
		urls[i] = img.URL
	}

	return ShoeData{
		ID:             s.ID,
		Name:           s.Name,
		Brand:          s.Brand,
		Price:          s.Price,
		Size:           s.Size,
		Color:          s.Color,
		AvailableCount: s.AvailableCount,
		ImageURLs:      urls,
	}
}

// PublishShoeCreated publishes a shoe.created event.
func (p *Producer) PublishShoeCreated(ctx context.Context, s *domain.Shoe) error {
	return p.publish(ctx, TopicShoeCreated, s.ID, shoeData(s))
}

// PublishShoeUpdated publishes a shoe.updated event.
func (p *Producer) PublishShoeUpdated(ctx context.Context, s *domain.Shoe) error {
	return p.publish(ctx, TopicShoeUpdated, s.ID, shoeData(s))
}

// PublishShoeDeleted publishes a shoe.deleted event.
func (p *Producer) PublishShoeDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, TopicShoeDeleted, id, ShoeDeletedData{ID: id})
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID string, data any) error {
	evt, err := pkgkafka.NewEvent(topic, aggregateID, AggregateTypeShoe, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published catalog event",
		slog.String("topic", topic),
		slog.String("shoe_id", aggregateID),
	)

	return nil
}
