package ports

import "context"

// GeocodeResult is a successful forward geocoding resolution.
type GeocodeResult struct {
	Lat               float64
	Lng               float64
	NormalizedAddress string
}

// Geocoder converts between postal address text and coordinates. Calls are
// idempotent and side-effect-free from the core's perspective; implementations
// detect "no response" and report it as domain.ErrGeocodingUnavailable.
type Geocoder interface {
	// Forward resolves an address to coordinates. Fails with
	// domain.ErrAddressNotFound when the provider returns no candidate and
	// domain.ErrGeocodingUnavailable on transport/auth failure.
	Forward(ctx context.Context, address string) (*GeocodeResult, error)
	// Reverse resolves coordinates to a display address, with the same
	// failure kinds as Forward.
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}
