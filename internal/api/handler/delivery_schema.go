package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createDeliveryRequest struct {
	CustomerID         string     `json:"customer_id"         validate:"required"`
	CementType         string     `json:"cement_type"         validate:"required"`
	Quantity           float64    `json:"quantity"            validate:"required,gt=0"`
	OriginAddress      string     `json:"origin_address,omitempty"`
	DestinationAddress string     `json:"destination_address" validate:"required"`
	DestinationLat     *float64   `json:"destination_lat,omitempty"`
	DestinationLng     *float64   `json:"destination_lng,omitempty"`
	DriverName         string     `json:"driver_name,omitempty"`
	DriverPhone        string     `json:"driver_phone,omitempty"`
	VehiclePlate       string     `json:"vehicle_plate,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	EstimatedArrival   *time.Time `json:"estimated_arrival,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_transit delivered cancelled"`
	Notes  string `json:"notes,omitempty"`
}

type reportLocationRequest struct {
	Address string `json:"address" validate:"required"`
	Notes   string `json:"notes,omitempty"`
}

// --- Response types ---

// Response-only types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes.

type createDeliveryResponse struct {
	ID           string `json:"id"`
	TrackingCode string `json:"tracking_code"`
	Status       string `json:"status"`
	TrackingURL  string `json:"tracking_url"`
	CreatedAt    string `json:"created_at"`
}

type trackingUpdateResponse struct {
	Status    string   `json:"status"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	CreatedAt string   `json:"created_at"`
}

type customerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type deliveryResponse struct {
	ID                 string   `json:"id"`
	TrackingCode       string   `json:"tracking_code"`
	CustomerID         string   `json:"customer_id"`
	Status             string   `json:"status"`
	CementType         string   `json:"cement_type"`
	Quantity           float64  `json:"quantity"`
	OriginAddress      string   `json:"origin_address,omitempty"`
	DestinationAddress string   `json:"destination_address"`
	DestinationLat     *float64 `json:"destination_lat,omitempty"`
	DestinationLng     *float64 `json:"destination_lng,omitempty"`
	DriverName         string   `json:"driver_name,omitempty"`
	DriverPhone        string   `json:"driver_phone,omitempty"`
	VehiclePlate       string   `json:"vehicle_plate,omitempty"`
	Notes              string   `json:"notes,omitempty"`
	EstimatedArrival   *string  `json:"estimated_arrival,omitempty"`
	ActualArrival      *string  `json:"actual_arrival,omitempty"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

type deliveryDetailResponse struct {
	deliveryResponse
	Customer *customerSummary         `json:"customer,omitempty"`
	Updates  []trackingUpdateResponse `json:"updates"`
}

type listDeliveriesResponse struct {
	Items      []deliveryResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

type progressResponse struct {
	Known      bool    `json:"known"`
	DistanceKm float64 `json:"distance_km,omitempty"`
	EtaMinutes int     `json:"eta_minutes,omitempty"`
	EtaTime    *string `json:"eta_time,omitempty"`
}

type statsResponse struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	InTransit int64 `json:"in_transit"`
	Delivered int64 `json:"delivered"`
	Cancelled int64 `json:"cancelled"`
}

// publicDeliveryResponse is the unauthenticated projection at
// GET /rastrear/:tracking_code. No internal ids, no customer contact data.
type publicDeliveryResponse struct {
	TrackingCode       string                   `json:"tracking_code"`
	Status             string                   `json:"status"`
	CementType         string                   `json:"cement_type"`
	Quantity           float64                  `json:"quantity"`
	CustomerName       string                   `json:"customer_name,omitempty"`
	OriginAddress      string                   `json:"origin_address,omitempty"`
	DestinationAddress string                   `json:"destination_address"`
	DestinationLat     *float64                 `json:"destination_lat,omitempty"`
	DestinationLng     *float64                 `json:"destination_lng,omitempty"`
	DriverName         string                   `json:"driver_name,omitempty"`
	DriverPhone        string                   `json:"driver_phone,omitempty"`
	VehiclePlate       string                   `json:"vehicle_plate,omitempty"`
	EstimatedArrival   *string                  `json:"estimated_arrival,omitempty"`
	ActualArrival      *string                  `json:"actual_arrival,omitempty"`
	CreatedAt          string                   `json:"created_at"`
	UpdatedAt          string                   `json:"updated_at"`
	Updates            []trackingUpdateResponse `json:"updates"`
}
