package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alanya-estates/property-service/internal/property/domain"
	"github.com/redis/go-redis/v9"
)

const propertyTTL = 1 * time.Hour

type PropertyCache struct {
	client *redis.Client
}

func NewPropertyCache(addr string) (*PropertyCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &PropertyCache{client: client}, nil
}

func (c *PropertyCache) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	data, err := c.client.Get(ctx, "property:"+id).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var property domain.Property
	if err := json.Unmarshal(data, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *PropertyCache) SetProperty(ctx context.Context, property *domain.Property) error {
	data, err := json.Marshal(property)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "property:"+property.ID, data, propertyTTL).Err()
}

func (c *PropertyCache) DeleteProperty(ctx context.Context, id string) error {
	return c.client.Del(ctx, "property:"+id).Err()
}

func (c *PropertyCache) Close() error {
	return c.client.Close()
}
