package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cementrack/tracking-api/internal/core/domain"
	"github.com/cementrack/tracking-api/internal/core/ports"
)

type countingGeocoder struct {
	forwardCalls int
	reverseCalls int
	forwardErr   error
}

func (g *countingGeocoder) Forward(_ context.Context, address string) (*ports.GeocodeResult, error) {
	g.forwardCalls++
	if g.forwardErr != nil {
		return nil, g.forwardErr
	}
	return &ports.GeocodeResult{Lat: -23.5613, Lng: -46.6565, NormalizedAddress: address}, nil
}

func (g *countingGeocoder) Reverse(_ context.Context, lat, lng float64) (string, error) {
	g.reverseCalls++
	return "Av. Paulista, 1000 - São Paulo", nil
}

func newCacheUnderTest(t *testing.T) (*CachedGeocoder, *countingGeocoder, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	inner := &countingGeocoder{}
	return NewCachedGeocoder(inner, client, zerolog.Nop()), inner, mr
}

func TestCachedGeocoder_ForwardCachesSuccess(t *testing.T) {
	cache, inner, _ := newCacheUnderTest(t)
	ctx := context.Background()

	first, err := cache.Forward(ctx, "Av. Paulista, 1000")
	require.NoError(t, err)

	second, err := cache.Forward(ctx, "Av. Paulista, 1000")
	require.NoError(t, err)

	require.Equal(t, 1, inner.forwardCalls, "second lookup must be served from cache")
	require.Equal(t, first, second)
}

func TestCachedGeocoder_ForwardKeyIsCaseAndSpaceInsensitive(t *testing.T) {
	cache, inner, _ := newCacheUnderTest(t)
	ctx := context.Background()

	_, err := cache.Forward(ctx, "Av. Paulista, 1000")
	require.NoError(t, err)

	_, err = cache.Forward(ctx, "  AV. PAULISTA, 1000  ")
	require.NoError(t, err)

	require.Equal(t, 1, inner.forwardCalls)
}

func TestCachedGeocoder_ForwardDoesNotCacheErrors(t *testing.T) {
	cache, inner, _ := newCacheUnderTest(t)
	ctx := context.Background()

	inner.forwardErr = domain.ErrAddressNotFound
	_, err := cache.Forward(ctx, "nowhere")
	require.ErrorIs(t, err, domain.ErrAddressNotFound)

	inner.forwardErr = nil
	_, err = cache.Forward(ctx, "nowhere")
	require.NoError(t, err)
	require.Equal(t, 2, inner.forwardCalls, "a failed lookup must not poison the cache")
}

func TestCachedGeocoder_ForwardExpiry(t *testing.T) {
	cache, inner, mr := newCacheUnderTest(t)
	ctx := context.Background()

	_, err := cache.Forward(ctx, "Av. Paulista, 1000")
	require.NoError(t, err)

	mr.FastForward(forwardTTL + 1)

	_, err = cache.Forward(ctx, "Av. Paulista, 1000")
	require.NoError(t, err)
	require.Equal(t, 2, inner.forwardCalls, "expired entry must hit the provider again")
}

func TestCachedGeocoder_ReverseCachesSuccess(t *testing.T) {
	cache, inner, _ := newCacheUnderTest(t)
	ctx := context.Background()

	first, err := cache.Reverse(ctx, -23.5613, -46.6565)
	require.NoError(t, err)

	second, err := cache.Reverse(ctx, -23.5613, -46.6565)
	require.NoError(t, err)

	require.Equal(t, 1, inner.reverseCalls)
	require.Equal(t, first, second)

	// distinct coordinates get their own entry
	_, err = cache.Reverse(ctx, -22.9068, -43.1729)
	require.NoError(t, err)
	require.Equal(t, 2, inner.reverseCalls)
}

func TestCachedGeocoder_RedisDownFallsThrough(t *testing.T) {
	cache, inner, mr := newCacheUnderTest(t)
	ctx := context.Background()
	mr.Close()

	res, err := cache.Forward(ctx, "Av. Paulista, 1000")
	require.NoError(t, err, "provider must still be reachable when redis is down")
	require.NotNil(t, res)
	require.Equal(t, 1, inner.forwardCalls)
}
