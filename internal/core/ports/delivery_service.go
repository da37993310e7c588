package ports

import (
	"context"
	"time"

	"github.com/cementrack/tracking-api/internal/core/domain"
)

// CreateDeliveryInput carries all data needed to create a new delivery.
// CustomerID, CementType, Quantity, DestinationAddress and CreatedBy are
// required; everything else is optional. DestinationLat/DestinationLng must be
// provided together or not at all.
type CreateDeliveryInput struct {
	CustomerID         string
	CementType         string
	Quantity           float64
	OriginAddress      string
	DestinationAddress string
	DestinationLat     *float64
	DestinationLng     *float64
	DriverName         string
	DriverPhone        string
	VehiclePlate       string
	Notes              string
	EstimatedArrival   *time.Time
	// CreatedBy is the authenticated operator id. Creation without it is a
	// hard failure.
	CreatedBy string
}

// CreateDeliveryResult is returned after creating a delivery.
type CreateDeliveryResult struct {
	Delivery *domain.Delivery
	// TrackingURL is the shareable public link: {base}/rastrear/{code}.
	TrackingURL string
}

// UpdateStatusInput carries a status transition request.
type UpdateStatusInput struct {
	DeliveryID string
	Status     domain.DeliveryStatus
	Notes      string
	UpdatedBy  string
}

// ReportLocationInput carries a driver location report as a raw address.
type ReportLocationInput struct {
	DeliveryID string
	Address    string
	Notes      string
	ReportedBy string
}

// ProgressEstimate characterizes delivery progress from the latest located
// ledger entry. Known is false when the delivery has no located entry yet.
type ProgressEstimate struct {
	Known      bool
	DistanceKm float64
	EtaMinutes int
	EtaTime    time.Time
}

// DeliveryDetail is the full operator view of one delivery.
type DeliveryDetail struct {
	Delivery *domain.Delivery
	Customer *domain.Customer
	Updates  []*domain.TrackingUpdate
}

// ListDeliveriesResult is one page of deliveries.
type ListDeliveriesResult struct {
	Items      []*domain.Delivery
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DeliveryStats are the dashboard counters.
type DeliveryStats struct {
	Total     int64
	Pending   int64
	InTransit int64
	Delivered int64
	Cancelled int64
}

// DeliveryService defines the delivery lifecycle use cases.
type DeliveryService interface {
	CreateDelivery(ctx context.Context, input CreateDeliveryInput) (*CreateDeliveryResult, error)
	GetDelivery(ctx context.Context, id string) (*DeliveryDetail, error)
	ListDeliveries(ctx context.Context, filter ListDeliveriesFilter) (*ListDeliveriesResult, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Delivery, error)
	ReportLocation(ctx context.Context, input ReportLocationInput) (*domain.Delivery, error)
	EstimateProgress(ctx context.Context, deliveryID string) (*ProgressEstimate, error)
	DeleteDelivery(ctx context.Context, id string) error
	Stats(ctx context.Context) (*DeliveryStats, error)
}
