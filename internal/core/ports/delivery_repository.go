package ports

import (
	"context"
	"time"

	"github.com/cementrack/tracking-api/internal/core/domain"
)

// ListDeliveriesFilter carries all query parameters for listing deliveries.
type ListDeliveriesFilter struct {
	Status     string    // optional: filter by delivery status
	CementType string    // optional: filter by cement type
	Search     string    // optional: partial match on tracking_code or driver_name
	DateFrom   time.Time // optional: created_at >= DateFrom
	DateTo     time.Time // optional: created_at <= DateTo
	Page       int       // 1-based
	Limit      int       // max rows per page (capped at 100 by service)
}

// DeliveryPatch is a partial update applied atomically to a single delivery
// record. Nil fields are left untouched.
type DeliveryPatch struct {
	Status         *domain.DeliveryStatus
	DestinationLat *float64
	DestinationLng *float64
	ActualArrival  *time.Time
	UpdatedAt      time.Time
}

// DeliveryRepository defines persistence operations for deliveries.
type DeliveryRepository interface {
	// Insert persists a new delivery. Returns domain.ErrDuplicateTrackingCode
	// when the tracking code collides with an existing record.
	Insert(ctx context.Context, d *domain.Delivery) error
	FindByID(ctx context.Context, id string) (*domain.Delivery, error)
	// FindByTrackingCode expects the code already normalized to upper case.
	FindByTrackingCode(ctx context.Context, code string) (*domain.Delivery, error)
	// Update applies the patch and returns the updated record.
	Update(ctx context.Context, id string, patch DeliveryPatch) (*domain.Delivery, error)
	Delete(ctx context.Context, id string) error
	// List returns a page of deliveries matching filter (newest first) and the total count.
	List(ctx context.Context, filter ListDeliveriesFilter) ([]*domain.Delivery, int64, error)
	CountByStatus(ctx context.Context) (map[domain.DeliveryStatus]int64, error)
}
