package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/michaelgivor/stackshop-app/internal/products"
)

const TopicProductCreated = `storefront-api.product-created`

// ProductCreatedEvent is the payload published when a product lands in the
// catalog. Downstream consumers only need the identifying fields.
type ProductCreatedEvent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"created_at"` // Timestamp of creation
}

type Conf struct {
	client *kgo.Client
}

func NewConf(host, port string) (*Conf, error) {
	if host == "" || port == "" {
		return nil, fmt.Errorf("kafka host or port is empty")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(host+":"+port),
		kgo.AllowAutoTopicCreation(),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping kafka brokers: %w", err)
	}

	return &Conf{client: client}, nil
}

// ProduceProductCreated publishes the product-created event, keyed by
// product id so per-product ordering holds.
func (c *Conf) ProduceProductCreated(ctx context.Context, p products.Product) error {
	event := ProductCreatedEvent{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.StringFixed(2),
		CreatedAt: p.CreatedAt,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product created event: %w", err)
	}

	record := &kgo.Record{
		Topic: TopicProductCreated,
		Key:   []byte(p.ID),
		Value: value,
	}
	if err := c.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce product created event: %w", err)
	}
	return nil
}

func (c *Conf) Close() {
	c.client.Close()
}
