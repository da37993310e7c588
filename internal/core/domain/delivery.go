package domain

import (
	"errors"
	"time"
)

// DeliveryStatus represents the lifecycle state of a cement delivery.
type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "pending"
	StatusInTransit DeliveryStatus = "in_transit"
	StatusDelivered DeliveryStatus = "delivered"
	StatusCancelled DeliveryStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// delivered and cancelled are terminal: no transition leaves them.
var validTransitions = map[DeliveryStatus][]DeliveryStatus{
	StatusPending:   {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusDelivered, StatusCancelled},
}

var (
	ErrDeliveryNotFound      = errors.New("delivery not found")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrDuplicateTrackingCode = errors.New("tracking code already exists")
	ErrMissingDestination    = errors.New("delivery has no destination coordinates")
	ErrValidation            = errors.New("validation failed")

	// Geocoding failure kinds. ErrAddressNotFound means the provider answered
	// but had no candidate; ErrGeocodingUnavailable covers transport, auth and
	// timeout failures, which callers may retry manually.
	ErrAddressNotFound      = errors.New("address not found")
	ErrGeocodingUnavailable = errors.New("geocoding provider unavailable")
)

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is one of the known delivery statuses.
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition is defined out of s.
func (s DeliveryStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0 && s.IsValid()
}

// Delivery is the aggregate root: one record per cement shipment. It owns its
// TrackingUpdate ledger; updates never outlive the delivery.
//
// DestinationLat/DestinationLng are always set together or both absent.
// ActualArrival is set exactly once, on the transition into delivered.
type Delivery struct {
	ID                 string         `json:"id" bson:"_id,omitempty"`
	TrackingCode       string         `json:"tracking_code" bson:"tracking_code"`
	CustomerID         string         `json:"customer_id" bson:"customer_id"`
	CreatedBy          string         `json:"created_by" bson:"created_by"`
	Status             DeliveryStatus `json:"status" bson:"status"`
	CementType         string         `json:"cement_type" bson:"cement_type"`
	Quantity           float64        `json:"quantity" bson:"quantity"`
	OriginAddress      string         `json:"origin_address,omitempty" bson:"origin_address,omitempty"`
	DestinationAddress string         `json:"destination_address" bson:"destination_address"`
	DestinationLat     *float64       `json:"destination_lat,omitempty" bson:"destination_lat,omitempty"`
	DestinationLng     *float64       `json:"destination_lng,omitempty" bson:"destination_lng,omitempty"`
	DriverName         string         `json:"driver_name,omitempty" bson:"driver_name,omitempty"`
	DriverPhone        string         `json:"driver_phone,omitempty" bson:"driver_phone,omitempty"`
	VehiclePlate       string         `json:"vehicle_plate,omitempty" bson:"vehicle_plate,omitempty"`
	Notes              string         `json:"notes,omitempty" bson:"notes,omitempty"`
	EstimatedArrival   *time.Time     `json:"estimated_arrival,omitempty" bson:"estimated_arrival,omitempty"`
	ActualArrival      *time.Time     `json:"actual_arrival,omitempty" bson:"actual_arrival,omitempty"`
	CreatedAt          time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" bson:"updated_at"`
}

// HasDestinationCoordinates reports whether the destination coordinate pair is present.
func (d *Delivery) HasDestinationCoordinates() bool {
	return d.DestinationLat != nil && d.DestinationLng != nil
}
