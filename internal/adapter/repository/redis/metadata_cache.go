package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/marcos-nsantos/imgstore/internal/domain"
	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
)

const keyPrefix = "imgstore:meta:"

type MetadataCache struct {
	client goredis.UniversalClient
}

func NewMetadataCache(client goredis.UniversalClient) *MetadataCache {
	return &MetadataCache{client: client}
}

func (c *MetadataCache) Get(ctx context.Context, id string) (*entity.ImageMetadata, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("reading cached metadata: %w", err)
	}

	var meta entity.ImageMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decoding cached metadata: %w", err)
	}
	return &meta, nil
}

// Set stores meta for id. A zero ttl keeps the entry until it is deleted.
func (c *MetadataCache) Set(ctx context.Context, id string, meta *entity.ImageMetadata, ttl time.Duration) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := c.client.Set(ctx, key(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("caching metadata: %w", err)
	}
	return nil
}

func (c *MetadataCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("evicting metadata: %w", err)
	}
	return nil
}

func key(id string) string {
	return keyPrefix + id
}
