package ports

import (
	"context"

	"github.com/cementrack/tracking-api/internal/core/domain"
)

// TrackingLedger is the append-only store of location/status events for a
// delivery. Entries are never mutated after Append; the ledger is the
// authoritative audit trail even when the delivery's derived status field is
// momentarily stale under concurrent writers.
type TrackingLedger interface {
	// Append assigns the entry id and timestamp, persists it, and returns the
	// stored entry. Prior entries are never touched.
	Append(ctx context.Context, update *domain.TrackingUpdate) (*domain.TrackingUpdate, error)
	// ListFor returns the delivery's full ledger, newest first.
	ListFor(ctx context.Context, deliveryID string) ([]*domain.TrackingUpdate, error)
	// LatestLocated returns the most recent entry carrying a coordinate pair,
	// or nil when the delivery has no located entry yet.
	LatestLocated(ctx context.Context, deliveryID string) (*domain.TrackingUpdate, error)
	// DeleteFor removes all entries of a delivery. Used only when the owning
	// delivery itself is deleted; updates never outlive their delivery.
	DeleteFor(ctx context.Context, deliveryID string) error
}
