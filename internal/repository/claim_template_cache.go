package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"claim-service/internal/models"
	utils "claim-service/shared/modules/utils"

	"github.com/redis/go-redis/v9"
)

// ClaimTemplateCache stores built catalog templates in Redis as JSON.
type ClaimTemplateCache struct {
	redisClient *redis.Client
}

func NewClaimTemplateCache(redisClient *redis.Client) *ClaimTemplateCache {
	return &ClaimTemplateCache{redisClient: redisClient}
}

// GetTemplate returns (nil, nil) when the key is not cached.
func (c *ClaimTemplateCache) GetTemplate(ctx context.Context, key string) (*models.ClaimTemplate, error) {
	data, err := c.redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached template: %w", err)
	}

	var tmpl models.ClaimTemplate
	if err := utils.DeserializeModel(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to decode cached template: %w", err)
	}
	return &tmpl, nil
}

func (c *ClaimTemplateCache) SetTemplate(ctx context.Context, key string, tmpl models.ClaimTemplate, ttl time.Duration) error {
	data, err := utils.SerializeModel(tmpl)
	if err != nil {
		return err
	}
	return c.redisClient.Set(ctx, key, data, ttl).Err()
}

func (c *ClaimTemplateCache) FindKeysByPattern(ctx context.Context, pattern string) ([]string, error) {
	var keys []string

	iter := c.redisClient.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	return keys, nil
}

// PruneStale deletes cached templates built from a catalog version other
// than version and returns how many were removed.
func (c *ClaimTemplateCache) PruneStale(ctx context.Context, version string) (int, error) {
	keys, err := c.FindKeysByPattern(ctx, "claim_template:*")
	if err != nil {
		return 0, err
	}
	stale := staleTemplateKeys(keys, version)
	if len(stale) == 0 {
		return 0, nil
	}
	if err := c.redisClient.Del(ctx, stale...).Err(); err != nil {
		return 0, fmt.Errorf("failed to delete cached templates: %w", err)
	}
	return len(stale), nil
}

func staleTemplateKeys(keys []string, version string) []string {
	var stale []string
	for _, k := range keys {
		if !strings.HasSuffix(k, ":"+version) {
			stale = append(stale, k)
		}
	}
	return stale
}
