package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rxradar/backend/internal/domain/entities"
	"github.com/rxradar/backend/internal/domain/providers"
	"github.com/rxradar/backend/internal/domain/repositories"
	"github.com/rxradar/backend/internal/infrastructure/observability"
)

// CachedInteractionAdapter wraps an InteractionRepository with read-through
// caching. Interaction knowledge is static reference data, so entries get a
// long TTL. Only found records are cached; misses always go to the database.
type CachedInteractionAdapter struct {
	adapter repositories.InteractionRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedInteractionAdapter creates a new cached interaction adapter.
// metrics may be nil.
func NewCachedInteractionAdapter(adapter repositories.InteractionRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.InteractionRepository {
	return &CachedInteractionAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

// interactionTTL is one hour, in seconds
const interactionTTL = 3600

func interactionCacheKey(minName, maxName string) string {
	return fmt.Sprintf("interaction:%s:%s", minName, maxName)
}

// FindInteraction looks up the pair in cache first, then the database.
func (a *CachedInteractionAdapter) FindInteraction(ctx context.Context, ingredientA, ingredientB string) (*entities.InteractionRecord, error) {
	minName, maxName := entities.PairKey(ingredientA, ingredientB)
	cacheKey := interactionCacheKey(minName, maxName)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var record entities.InteractionRecord
		unmarshalErr := json.Unmarshal(cached, &record)
		if unmarshalErr == nil {
			if a.metrics != nil {
				observability.RecordCacheHit(ctx, a.metrics, cacheKey)
			}
			return &record, nil
		}
		// A corrupt entry falls through to the database.
		observability.LoggerFromContext(ctx).Warn().
			Err(unmarshalErr).
			Str("cache_key", cacheKey).
			Msg("failed to unmarshal cached interaction")
	}
	if a.metrics != nil {
		observability.RecordCacheMiss(ctx, a.metrics, cacheKey)
	}

	record, err := a.adapter.FindInteraction(ctx, ingredientA, ingredientB)
	if err != nil || record == nil {
		return record, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(record); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, interactionTTL); err != nil {
				observability.GetLogger().Warn().
					Err(err).
					Str("cache_key", cacheKey).
					Msg("failed to cache interaction")
			}
		}
	}()

	return record, nil
}
