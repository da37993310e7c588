package domain

import "time"

// TrackingUpdate is one immutable entry in a delivery's ledger: a status
// snapshot and/or a location observation. Entries are append-only, never
// edited or deleted individually, and ordered by CreatedAt.
//
// Latitude/Longitude are always set together or both absent.
type TrackingUpdate struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	DeliveryID string         `json:"delivery_id" bson:"delivery_id"`
	Status     DeliveryStatus `json:"status" bson:"status"`
	Latitude   *float64       `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude  *float64       `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Notes      string         `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedBy  string         `json:"-" bson:"created_by,omitempty"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

// HasCoordinates reports whether the entry carries a full coordinate pair.
func (u *TrackingUpdate) HasCoordinates() bool {
	return u.Latitude != nil && u.Longitude != nil
}
