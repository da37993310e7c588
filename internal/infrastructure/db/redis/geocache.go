package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cementrack/tracking-api/internal/core/ports"
	"github.com/cementrack/tracking-api/internal/pkg/metrics"
)

// Cache TTLs. Forward results can shift when a provider refreshes its data;
// reverse results for a fixed coordinate are far more stable.
const (
	forwardTTL = 24 * time.Hour
	reverseTTL = 7 * 24 * time.Hour
)

// CachedGeocoder decorates a ports.Geocoder with a Redis read-through cache.
// Only successful resolutions are cached; provider errors always pass
// through, and a Redis failure degrades to calling the provider directly.
type CachedGeocoder struct {
	next   ports.Geocoder
	client *redis.Client
	logger zerolog.Logger
}

func NewCachedGeocoder(next ports.Geocoder, client *redis.Client, logger zerolog.Logger) *CachedGeocoder {
	return &CachedGeocoder{next: next, client: client, logger: logger}
}

func forwardKey(address string) string {
	return "geo:fwd:" + strings.ToLower(strings.TrimSpace(address))
}

func reverseKey(lat, lng float64) string {
	return fmt.Sprintf("geo:rev:%.5f:%.5f", lat, lng)
}

func (g *CachedGeocoder) Forward(ctx context.Context, address string) (*ports.GeocodeResult, error) {
	key := forwardKey(address)

	if payload, err := g.client.Get(ctx, key).Bytes(); err == nil {
		var res ports.GeocodeResult
		if err := json.Unmarshal(payload, &res); err == nil {
			metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
			return &res, nil
		}
		g.logger.Warn().Str("key", key).Msg("corrupt geocode cache entry, refetching")
	} else if !errors.Is(err, redis.Nil) {
		g.logger.Warn().Err(err).Msg("geocode cache read failed")
	}

	metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()
	res, err := g.next.Forward(ctx, address)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(res); err == nil {
		if err := g.client.Set(ctx, key, payload, forwardTTL).Err(); err != nil {
			g.logger.Warn().Err(err).Msg("geocode cache write failed")
		}
	}
	return res, nil
}

func (g *CachedGeocoder) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	key := reverseKey(lat, lng)

	if address, err := g.client.Get(ctx, key).Result(); err == nil {
		metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
		return address, nil
	} else if !errors.Is(err, redis.Nil) {
		g.logger.Warn().Err(err).Msg("geocode cache read failed")
	}

	metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()
	address, err := g.next.Reverse(ctx, lat, lng)
	if err != nil {
		return "", err
	}

	if err := g.client.Set(ctx, key, address, reverseTTL).Err(); err != nil {
		g.logger.Warn().Err(err).Msg("geocode cache write failed")
	}
	return address, nil
}
