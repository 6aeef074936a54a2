package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"pdfsearch/internal/model"
)

// PageCache keeps the page set of recently searched documents in Redis.
// Documents never change after ingestion, so entries are only ever expired.
type PageCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

type pageEntry struct {
	UserID uint         `json:"user_id"`
	Pages  []model.Page `json:"pages"`
}

func NewPageCache(client *redisv9.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PageCache{client: client, ttl: ttl}
}

// GetPages returns the cached pages of documentID when the entry belongs to
// userID. The bool reports a hit.
func (c *PageCache) GetPages(ctx context.Context, userID, documentID uint) ([]model.Page, bool, error) {
	raw, err := c.client.Get(ctx, c.key(documentID)).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get pages failed: %w", err)
	}

	var entry pageEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached pages failed: %w", err)
	}
	if entry.UserID != userID {
		return nil, false, nil
	}
	return entry.Pages, true, nil
}

func (c *PageCache) SetPages(ctx context.Context, doc *model.Document) error {
	payload, err := json.Marshal(pageEntry{UserID: doc.UserID, Pages: doc.Pages})
	if err != nil {
		return fmt.Errorf("marshal pages cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(doc.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set pages failed: %w", err)
	}
	return nil
}

func (c *PageCache) key(documentID uint) string {
	return fmt.Sprintf("document:pages:%d", documentID)
}
