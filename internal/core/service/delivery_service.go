package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cementrack/tracking-api/internal/core/domain"
	"github.com/cementrack/tracking-api/internal/core/ports"
	"github.com/cementrack/tracking-api/internal/pkg/geo"
	"github.com/cementrack/tracking-api/internal/pkg/metrics"
	"github.com/cementrack/tracking-api/internal/pkg/trackingcode"
)

// maxCodeAttempts bounds the retry loop on tracking-code collisions. With a
// 38^10 code space a single retry is already unlikely.
const maxCodeAttempts = 5

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// TrackingURL formats the shareable public link for a tracking code.
func TrackingURL(baseURL, trackingCode string) string {
	return fmt.Sprintf("%s/rastrear/%s", strings.TrimRight(baseURL, "/"), trackingCode)
}

// DeliveryService implements the delivery lifecycle: creation, the status
// state machine, location reports and progress estimation.
type DeliveryService struct {
	deliveries ports.DeliveryRepository
	ledger     ports.TrackingLedger
	customers  ports.CustomerRepository
	geocoder   ports.Geocoder
	estimator  *geo.Estimator
	baseURL    string
	logger     zerolog.Logger

	// now is stubbed in tests.
	now func() time.Time
}

func NewDeliveryService(
	deliveries ports.DeliveryRepository,
	ledger ports.TrackingLedger,
	customers ports.CustomerRepository,
	geocoder ports.Geocoder,
	estimator *geo.Estimator,
	baseURL string,
	logger zerolog.Logger,
) *DeliveryService {
	return &DeliveryService{
		deliveries: deliveries,
		ledger:     ledger,
		customers:  customers,
		geocoder:   geocoder,
		estimator:  estimator,
		baseURL:    baseURL,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateDelivery validates the input, generates a unique tracking code and
// persists the new delivery with status pending. When the destination
// coordinate pair is absent, the destination address is geocoded best-effort:
// a provider failure does not block creation.
func (s *DeliveryService) CreateDelivery(ctx context.Context, input ports.CreateDeliveryInput) (*ports.CreateDeliveryResult, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.customers.FindByID(ctx, input.CustomerID); err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	lat, lng := input.DestinationLat, input.DestinationLng
	if lat == nil {
		if res, err := s.geocoder.Forward(ctx, input.DestinationAddress); err != nil {
			s.logger.Warn().Err(err).
				Str("address", input.DestinationAddress).
				Msg("destination geocoding failed, creating without coordinates")
		} else {
			lat, lng = &res.Lat, &res.Lng
		}
	}

	now := s.now()
	delivery := &domain.Delivery{
		CustomerID:         input.CustomerID,
		CreatedBy:          input.CreatedBy,
		Status:             domain.StatusPending,
		CementType:         input.CementType,
		Quantity:           input.Quantity,
		OriginAddress:      input.OriginAddress,
		DestinationAddress: input.DestinationAddress,
		DestinationLat:     lat,
		DestinationLng:     lng,
		DriverName:         input.DriverName,
		DriverPhone:        input.DriverPhone,
		VehiclePlate:       input.VehiclePlate,
		Notes:              input.Notes,
		EstimatedArrival:   input.EstimatedArrival,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	// The repository enforces global tracking-code uniqueness; regenerate on
	// the (vanishingly rare) collision.
	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		delivery.TrackingCode = trackingcode.Generate()
		err = s.deliveries.Insert(ctx, delivery)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateTrackingCode) {
			s.logger.Error().Err(err).Msg("failed to create delivery")
			return nil, fmt.Errorf("create delivery: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	metrics.DeliveriesCreatedTotal.WithLabelValues(delivery.CementType).Inc()
	s.logger.Info().
		Str("delivery_id", delivery.ID).
		Str("tracking_code", delivery.TrackingCode).
		Str("customer_id", delivery.CustomerID).
		Msg("delivery created")

	return &ports.CreateDeliveryResult{
		Delivery:    delivery,
		TrackingURL: TrackingURL(s.baseURL, delivery.TrackingCode),
	}, nil
}

func validateCreateInput(input ports.CreateDeliveryInput) error {
	switch {
	case input.CreatedBy == "":
		return fmt.Errorf("%w: authenticated operator required", domain.ErrValidation)
	case input.CustomerID == "":
		return fmt.Errorf("%w: customer_id is required", domain.ErrValidation)
	case input.CementType == "":
		return fmt.Errorf("%w: cement_type is required", domain.ErrValidation)
	case input.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	case input.DestinationAddress == "":
		return fmt.Errorf("%w: destination_address is required", domain.ErrValidation)
	case (input.DestinationLat == nil) != (input.DestinationLng == nil):
		return fmt.Errorf("%w: destination_lat and destination_lng must be set together", domain.ErrValidation)
	}
	return nil
}

// UpdateStatus applies a status transition per the state machine and appends
// one coordinate-less ledger entry. Transitions out of delivered or cancelled
// are rejected, which also keeps actual_arrival a write-once field.
func (s *DeliveryService) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Delivery, error) {
	if !input.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.Status)
	}

	delivery, err := s.deliveries.FindByID(ctx, input.DeliveryID)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	if !delivery.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("update status: %w (from %s to %s)",
			domain.ErrInvalidTransition, delivery.Status, input.Status)
	}

	now := s.now()
	patch := ports.DeliveryPatch{Status: &input.Status, UpdatedAt: now}
	if input.Status == domain.StatusDelivered {
		patch.ActualArrival = &now
	}

	updated, err := s.deliveries.Update(ctx, delivery.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	if _, err := s.ledger.Append(ctx, &domain.TrackingUpdate{
		DeliveryID: delivery.ID,
		Status:     input.Status,
		Notes:      input.Notes,
		CreatedBy:  input.UpdatedBy,
	}); err != nil {
		// The ledger is the authoritative audit trail; a failed append fails
		// the operation even though the status field was already written.
		return nil, fmt.Errorf("update status: append tracking update: %w", err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(delivery.Status), string(input.Status)).Inc()
	metrics.TrackingUpdatesTotal.WithLabelValues("status").Inc()
	s.logger.Info().
		Str("delivery_id", delivery.ID).
		Str("from", string(delivery.Status)).
		Str("to", string(input.Status)).
		Msg("delivery status updated")

	return updated, nil
}

// ReportLocation resolves a raw address through the geocoder and appends one
// located ledger entry carrying the delivery's current status. The append
// happens only after resolution succeeds: a geocoding failure, or a caller
// abandoning the request mid-flight, leaves the ledger untouched.
func (s *DeliveryService) ReportLocation(ctx context.Context, input ports.ReportLocationInput) (*domain.Delivery, error) {
	if strings.TrimSpace(input.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", domain.ErrValidation)
	}

	delivery, err := s.deliveries.FindByID(ctx, input.DeliveryID)
	if err != nil {
		return nil, fmt.Errorf("report location: %w", err)
	}

	res, err := s.geocoder.Forward(ctx, input.Address)
	if err != nil {
		return nil, fmt.Errorf("report location: %w", err)
	}

	if _, err := s.ledger.Append(ctx, &domain.TrackingUpdate{
		DeliveryID: delivery.ID,
		Status:     delivery.Status,
		Latitude:   &res.Lat,
		Longitude:  &res.Lng,
		Notes:      input.Notes,
		CreatedBy:  input.ReportedBy,
	}); err != nil {
		return nil, fmt.Errorf("report location: %w", err)
	}

	updated, err := s.deliveries.Update(ctx, delivery.ID, ports.DeliveryPatch{UpdatedAt: s.now()})
	if err != nil {
		return nil, fmt.Errorf("report location: %w", err)
	}

	metrics.TrackingUpdatesTotal.WithLabelValues("location").Inc()
	s.logger.Info().
		Str("delivery_id", delivery.ID).
		Float64("lat", res.Lat).
		Float64("lng", res.Lng).
		Msg("location reported")

	return updated, nil
}

// EstimateProgress derives distance and ETA from the latest located ledger
// entry and the delivery's destination coordinates.
func (s *DeliveryService) EstimateProgress(ctx context.Context, deliveryID string) (*ports.ProgressEstimate, error) {
	delivery, err := s.deliveries.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("estimate progress: %w", err)
	}

	latest, err := s.ledger.LatestLocated(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("estimate progress: %w", err)
	}
	if latest == nil {
		return &ports.ProgressEstimate{Known: false}, nil
	}

	if !delivery.HasDestinationCoordinates() {
		return nil, fmt.Errorf("estimate progress: %w", domain.ErrMissingDestination)
	}

	distance := geo.DistanceKm(*latest.Latitude, *latest.Longitude,
		*delivery.DestinationLat, *delivery.DestinationLng)
	etaMinutes := s.estimator.ETAMinutes(distance)

	return &ports.ProgressEstimate{
		Known:      true,
		DistanceKm: distance,
		EtaMinutes: etaMinutes,
		EtaTime:    s.now().Add(time.Duration(etaMinutes) * time.Minute),
	}, nil
}

// GetDelivery returns the full operator view: record, customer and ledger.
func (s *DeliveryService) GetDelivery(ctx context.Context, id string) (*ports.DeliveryDetail, error) {
	delivery, err := s.deliveries.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	customer, err := s.customers.FindByID(ctx, delivery.CustomerID)
	if err != nil && !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	updates, err := s.ledger.ListFor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	return &ports.DeliveryDetail{Delivery: delivery, Customer: customer, Updates: updates}, nil
}

// ListDeliveries returns a page of deliveries, newest first.
func (s *DeliveryService) ListDeliveries(ctx context.Context, filter ports.ListDeliveriesFilter) (*ports.ListDeliveriesResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.deliveries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListDeliveriesResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// DeleteDelivery removes a delivery together with its ledger.
func (s *DeliveryService) DeleteDelivery(ctx context.Context, id string) error {
	if _, err := s.deliveries.FindByID(ctx, id); err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	if err := s.deliveries.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	if err := s.ledger.DeleteFor(ctx, id); err != nil {
		return fmt.Errorf("delete delivery: remove tracking updates: %w", err)
	}
	s.logger.Info().Str("delivery_id", id).Msg("delivery deleted")
	return nil
}

// Stats returns the dashboard counters grouped by status.
func (s *DeliveryService) Stats(ctx context.Context) (*ports.DeliveryStats, error) {
	counts, err := s.deliveries.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("delivery stats: %w", err)
	}

	stats := &ports.DeliveryStats{
		Pending:   counts[domain.StatusPending],
		InTransit: counts[domain.StatusInTransit],
		Delivered: counts[domain.StatusDelivered],
		Cancelled: counts[domain.StatusCancelled],
	}
	stats.Total = stats.Pending + stats.InTransit + stats.Delivered + stats.Cancelled
	return stats, nil
}
