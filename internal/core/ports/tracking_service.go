package ports

import (
	"context"
	"time"

	"github.com/cementrack/tracking-api/internal/core/domain"
)

// PublicUpdate is one ledger entry as exposed to unauthenticated callers.
// Address is the best-effort reverse-geocoded location; empty when the entry
// has no coordinates or the lookup failed.
type PublicUpdate struct {
	Status    domain.DeliveryStatus
	Latitude  *float64
	Longitude *float64
	Address   string
	Notes     string
	CreatedAt time.Time
}

// PublicDelivery is the read-only projection served by tracking-code lookup.
// It intentionally carries no internal id, creator reference, or customer
// contact data: this is a data-minimization contract, not an accident of the
// query shape.
type PublicDelivery struct {
	TrackingCode       string
	Status             domain.DeliveryStatus
	CementType         string
	Quantity           float64
	CustomerName       string
	OriginAddress      string
	DestinationAddress string
	DestinationLat     *float64
	DestinationLng     *float64
	DriverName         string
	DriverPhone        string
	VehiclePlate       string
	EstimatedArrival   *time.Time
	ActualArrival      *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Updates            []PublicUpdate
}

// TrackingService is the public, unauthenticated read path.
type TrackingService interface {
	// Lookup finds a delivery by tracking code (case-insensitive exact match)
	// and returns its public projection, or domain.ErrDeliveryNotFound.
	Lookup(ctx context.Context, trackingCode string) (*PublicDelivery, error)
}
