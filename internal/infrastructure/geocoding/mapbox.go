// Package geocoding implements the Geocoder port against the Mapbox
// Geocoding v5 API.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/cementrack/tracking-api/internal/core/domain"
	"github.com/cementrack/tracking-api/internal/core/ports"
	"github.com/cementrack/tracking-api/internal/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	Token    string
	BaseURL  string
	Country  string
	Language string
	Timeout  time.Duration
}

// MapboxGeocoder resolves addresses through api.mapbox.com. Failures are
// split into domain.ErrAddressNotFound (the provider answered with no
// candidate) and domain.ErrGeocodingUnavailable (everything else).
type MapboxGeocoder struct {
	cfg    Config
	client *http.Client
	logger zerolog.Logger
}

func NewMapboxGeocoder(cfg Config, logger zerolog.Logger) *MapboxGeocoder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MapboxGeocoder{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// mapboxResponse is the subset of the v5 response the service reads.
// Features are ordered by relevance; only the first is used.
type mapboxResponse struct {
	Features []struct {
		PlaceName string     `json:"place_name"`
		Center    [2]float64 `json:"center"` // [lng, lat]
	} `json:"features"`
}

func (g *MapboxGeocoder) Forward(ctx context.Context, address string) (*ports.GeocodeResult, error) {
	res, err := g.query(ctx, "forward", address)
	if err != nil {
		return nil, err
	}
	return &ports.GeocodeResult{
		Lat:               res.Features[0].Center[1],
		Lng:               res.Features[0].Center[0],
		NormalizedAddress: res.Features[0].PlaceName,
	}, nil
}

func (g *MapboxGeocoder) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	// reverse queries take "lng,lat" as the query string
	res, err := g.query(ctx, "reverse", fmt.Sprintf("%f,%f", lng, lat))
	if err != nil {
		return "", err
	}
	return res.Features[0].PlaceName, nil
}

func (g *MapboxGeocoder) query(ctx context.Context, operation, query string) (*mapboxResponse, error) {
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json",
		g.cfg.BaseURL, url.PathEscape(query))

	params := url.Values{}
	params.Set("access_token", g.cfg.Token)
	params.Set("limit", "1")
	if g.cfg.Country != "" {
		params.Set("country", g.cfg.Country)
	}
	if g.cfg.Language != "" {
		params.Set("language", g.cfg.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("mapbox %s: %w", operation, err)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	metrics.GeocodingDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GeocodingRequestsTotal.WithLabelValues(operation, "error").Inc()
		g.logger.Warn().Err(err).Str("operation", operation).Msg("mapbox request failed")
		return nil, fmt.Errorf("mapbox %s: %w: %w", operation, domain.ErrGeocodingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeocodingRequestsTotal.WithLabelValues(operation, "error").Inc()
		g.logger.Warn().Int("status", resp.StatusCode).Str("operation", operation).
			Msg("mapbox returned non-200")
		return nil, fmt.Errorf("mapbox %s: status %d: %w",
			operation, resp.StatusCode, domain.ErrGeocodingUnavailable)
	}

	var body mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.GeocodingRequestsTotal.WithLabelValues(operation, "error").Inc()
		return nil, fmt.Errorf("mapbox %s: decode: %w: %w", operation, domain.ErrGeocodingUnavailable, err)
	}

	if len(body.Features) == 0 {
		metrics.GeocodingRequestsTotal.WithLabelValues(operation, "not_found").Inc()
		return nil, fmt.Errorf("mapbox %s: %w", operation, domain.ErrAddressNotFound)
	}

	metrics.GeocodingRequestsTotal.WithLabelValues(operation, "ok").Inc()
	return &body, nil
}
