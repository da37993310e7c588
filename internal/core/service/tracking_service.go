package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cementrack/tracking-api/internal/core/domain"
	"github.com/cementrack/tracking-api/internal/core/ports"
	"github.com/cementrack/tracking-api/internal/pkg/metrics"
)

// enrichWorkers caps the number of concurrent reverse-geocode lookups per
// lookup request. Each entry's resolution is isolated: one failure degrades
// that entry to raw coordinates and touches nothing else.
const enrichWorkers = 4

// TrackingService serves the public, unauthenticated read path addressed by
// tracking code. It never mutates delivery or ledger state.
type TrackingService struct {
	deliveries ports.DeliveryRepository
	ledger     ports.TrackingLedger
	customers  ports.CustomerRepository
	geocoder   ports.Geocoder
	logger     zerolog.Logger
}

func NewTrackingService(
	deliveries ports.DeliveryRepository,
	ledger ports.TrackingLedger,
	customers ports.CustomerRepository,
	geocoder ports.Geocoder,
	logger zerolog.Logger,
) *TrackingService {
	return &TrackingService{
		deliveries: deliveries,
		ledger:     ledger,
		customers:  customers,
		geocoder:   geocoder,
		logger:     logger,
	}
}

// Lookup finds a delivery by tracking code, case-insensitively, and builds
// its public projection. Reverse-geocoded addresses on the timeline are
// best-effort and never block or fail the lookup.
func (s *TrackingService) Lookup(ctx context.Context, trackingCode string) (*ports.PublicDelivery, error) {
	code := strings.ToUpper(strings.TrimSpace(trackingCode))
	if code == "" {
		metrics.PublicLookupsTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("public lookup: %w", domain.ErrDeliveryNotFound)
	}

	delivery, err := s.deliveries.FindByTrackingCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrDeliveryNotFound) {
			metrics.PublicLookupsTotal.WithLabelValues("not_found").Inc()
		}
		return nil, fmt.Errorf("public lookup: %w", err)
	}

	updates, err := s.ledger.ListFor(ctx, delivery.ID)
	if err != nil {
		return nil, fmt.Errorf("public lookup: %w", err)
	}

	addresses := s.resolveAddresses(ctx, updates)

	customerName := ""
	if customer, err := s.customers.FindByID(ctx, delivery.CustomerID); err != nil {
		s.logger.Warn().Err(err).
			Str("customer_id", delivery.CustomerID).
			Msg("customer lookup failed for public view")
	} else {
		customerName = customer.Name
	}

	public := &ports.PublicDelivery{
		TrackingCode:       delivery.TrackingCode,
		Status:             delivery.Status,
		CementType:         delivery.CementType,
		Quantity:           delivery.Quantity,
		CustomerName:       customerName,
		OriginAddress:      delivery.OriginAddress,
		DestinationAddress: delivery.DestinationAddress,
		DestinationLat:     delivery.DestinationLat,
		DestinationLng:     delivery.DestinationLng,
		DriverName:         delivery.DriverName,
		DriverPhone:        delivery.DriverPhone,
		VehiclePlate:       delivery.VehiclePlate,
		EstimatedArrival:   delivery.EstimatedArrival,
		ActualArrival:      delivery.ActualArrival,
		CreatedAt:          delivery.CreatedAt,
		UpdatedAt:          delivery.UpdatedAt,
		Updates:            make([]ports.PublicUpdate, 0, len(updates)),
	}

	for _, u := range updates {
		public.Updates = append(public.Updates, ports.PublicUpdate{
			Status:    u.Status,
			Latitude:  u.Latitude,
			Longitude: u.Longitude,
			Address:   addresses[u.ID],
			Notes:     u.Notes,
			CreatedAt: u.CreatedAt,
		})
	}

	metrics.PublicLookupsTotal.WithLabelValues("found").Inc()
	return public, nil
}

// resolveAddresses reverse-geocodes the located ledger entries with bounded
// concurrency. Failed lookups are logged at debug level and simply leave the
// entry without an address.
func (s *TrackingService) resolveAddresses(ctx context.Context, updates []*domain.TrackingUpdate) map[string]string {
	located := make([]*domain.TrackingUpdate, 0, len(updates))
	for _, u := range updates {
		if u.HasCoordinates() {
			located = append(located, u)
		}
	}
	if len(located) == 0 {
		return nil
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		sem       = make(chan struct{}, enrichWorkers)
		addresses = make(map[string]string, len(located))
	)

	for _, u := range located {
		wg.Add(1)
		sem <- struct{}{}
		go func(u *domain.TrackingUpdate) {
			defer wg.Done()
			defer func() { <-sem }()

			address, err := s.geocoder.Reverse(ctx, *u.Latitude, *u.Longitude)
			if err != nil {
				s.logger.Debug().Err(err).
					Str("update_id", u.ID).
					Msg("reverse geocoding failed, showing raw coordinates")
				return
			}

			mu.Lock()
			addresses[u.ID] = address
			mu.Unlock()
		}(u)
	}

	wg.Wait()
	return addresses
}
