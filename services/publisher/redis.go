package publisher

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"jmorel/hellohunt/internal/scraper"
)

// RedisPublisher implements Publisher using a Redis stream
type RedisPublisher struct {
	client *redis.Client
	ctx    context.Context
	stream string
}

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(ctx context.Context, addr string, db int, stream string) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisPublisher{
		client: client,
		ctx:    ctx,
		stream: stream,
	}
}

// Append publishes a job listing to the Redis stream, one field per
// column so downstream consumers can read rows without decoding JSON
func (p *RedisPublisher) Append(listing scraper.JobListing, letterPath string) error {
	return p.client.XAdd(p.ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"date":          time.Now().Format("2006-01-02 15:04:05"),
			"title":         listing.Title,
			"company":       listing.Company,
			"location":      listing.Location,
			"contract_type": listing.ContractType,
			"description":   listing.Description,
			"link":          listing.Link,
			"letter_path":   letterPath,
		},
	}).Err()
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
