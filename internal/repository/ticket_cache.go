package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/support-chatbot/internal/domain"
)

// TicketCache is a read-through cache for ticket point lookups. A nil
// cache or an unreachable Redis degrades to direct reads.
type TicketCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTicketCache wraps a redis client; ttl <= 0 disables expiry.
func NewTicketCache(client *redis.Client, ttl time.Duration) *TicketCache {
	return &TicketCache{client: client, ttl: ttl}
}

func cacheKey(id string) string {
	return "ticket:" + id
}

// Get returns the cached ticket or (nil, nil) on a miss.
func (c *TicketCache) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var ticket domain.Ticket
	if err := json.Unmarshal(raw, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Set stores a ticket snapshot.
func (c *TicketCache) Set(ctx context.Context, ticket *domain.Ticket) error {
	if c == nil || c.client == nil || ticket == nil {
		return nil
	}
	raw, err := json.Marshal(ticket)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(ticket.ID), raw, c.ttl).Err()
}

// Invalidate drops a cached ticket after a mutation.
func (c *TicketCache) Invalidate(ctx context.Context, id string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, cacheKey(id)).Err()
}
