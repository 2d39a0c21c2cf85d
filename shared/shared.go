package shared

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"stay/shared/cache"
	"stay/shared/constant"
	"stay/shared/dto"

	"github.com/rs/zerolog/log"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterByFields builds an AND group of equality filters, ordered by field name.
func FilterByFields(table string, fields map[string]any) dto.FilterGroup {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}

	sort.Strings(names)

	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	for _, name := range names {
		group.Filters = append(group.Filters, dto.Filter{
			Field:    name,
			Value:    fields[name],
			Operator: dto.FilterOperatorEq,
			Table:    table,
		})
	}

	return group
}

// BuildCacheKey joins a prefix with its parts using ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a stable key from pagination and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := []string{
		fmt.Sprintf("p%d", params.Page),
		fmt.Sprintf("l%d", params.Limit),
		params.SortBy,
		params.SortDir,
		where,
	}

	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, args[key]))
	}

	return BuildCacheKey(prefix, parts...)
}

// InvalidateCaches clears every key that starts with prefix. Failures are logged, not returned.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// Generation reads the invalidation counter at key. A missing counter reads as zero.
func Generation(ctx context.Context, c cache.RedisCache, key string) int64 {
	var generation int64

	if err := c.Get(ctx, key, &generation); err != nil && !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("failed to read cache generation")
	}

	return generation
}

// SaveAtGeneration caches value computed while the counter at generationKey read generation.
// The entry is dropped again when an invalidation bumped the counter in the meantime.
func SaveAtGeneration(ctx context.Context, c cache.RedisCache, key string, value any, ttl int, generationKey string, generation int64) {
	if err := c.Save(ctx, key, value, ttl); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to save cache")

		return
	}

	if Generation(ctx, c, generationKey) == generation {
		return
	}

	if err := c.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to drop stale cache")
	}
}

// InvalidateGeneration bumps the counter at generationKey before clearing prefix,
// so reads still in flight cannot re-populate what was cleared.
func InvalidateGeneration(ctx context.Context, c cache.RedisCache, generationKey, prefix string) {
	if _, err := c.Incr(ctx, generationKey, constant.CacheGenerationWindow); err != nil {
		log.Error().Err(err).Str("key", generationKey).Msg("failed to bump cache generation")
	}

	InvalidateCaches(ctx, c, prefix)
}

// ActorFromContext returns the authenticated user id and role set by the auth middleware.
func ActorFromContext(ctx context.Context) (userID, role string) {
	userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	return userID, role
}
