package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cementrack/tracking-api/internal/core/domain"
	"github.com/cementrack/tracking-api/internal/core/ports"
)

type trackingFixture struct {
	*fixture
	tracking *TrackingService
}

func newTrackingFixture() *trackingFixture {
	f := newFixture()
	return &trackingFixture{
		fixture:  f,
		tracking: NewTrackingService(f.repo, f.ledger, f.customers, f.geocoder, discardLogger),
	}
}

func TestLookup_UnknownCodeNotFound(t *testing.T) {
	f := newTrackingFixture()

	_, err := f.tracking.Lookup(context.Background(), "NOSUCHCODE")
	if !errors.Is(err, domain.ErrDeliveryNotFound) {
		t.Errorf("expected ErrDeliveryNotFound, got %v", err)
	}
}

func TestLookup_EmptyCodeNotFound(t *testing.T) {
	f := newTrackingFixture()

	_, err := f.tracking.Lookup(context.Background(), "   ")
	if !errors.Is(err, domain.ErrDeliveryNotFound) {
		t.Errorf("expected ErrDeliveryNotFound, got %v", err)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	f := newTrackingFixture()
	d := f.seedPending(t)

	variants := []string{
		d.TrackingCode,
		"  " + d.TrackingCode + "  ",
	}
	if lower := lowerASCII(d.TrackingCode); lower != d.TrackingCode {
		variants = append(variants, lower)
	}

	for _, code := range variants {
		public, err := f.tracking.Lookup(context.Background(), code)
		if err != nil {
			t.Fatalf("lookup %q: %v", code, err)
		}
		if public.TrackingCode != d.TrackingCode {
			t.Errorf("lookup %q resolved %q", code, public.TrackingCode)
		}
	}
}

func lowerASCII(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'A' && c <= 'Z' {
			out[i] = c + 'a' - 'A'
		}
	}
	return string(out)
}

func TestLookup_PublicProjectionOmitsInternalFields(t *testing.T) {
	f := newTrackingFixture()
	d := f.seedPending(t)

	public, err := f.tracking.Lookup(context.Background(), d.TrackingCode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if public.CustomerName != "Construtora Alfa" {
		t.Errorf("expected customer name in public view, got %q", public.CustomerName)
	}
	if public.Status != domain.StatusPending {
		t.Errorf("unexpected status %s", public.Status)
	}
	// The projection carries no internal identifiers; what it does expose
	// must match the record.
	if public.CementType != d.CementType || public.Quantity != d.Quantity {
		t.Error("cement type and quantity must be exposed")
	}
}

func TestLookup_TimelineCarriesReverseGeocodedAddresses(t *testing.T) {
	f := newTrackingFixture()
	d := f.seedPending(t)

	if _, err := f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		DeliveryID: d.ID, Status: domain.StatusInTransit,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.ReportLocation(context.Background(), ports.ReportLocationInput{
		DeliveryID: d.ID, Address: "Rua Augusta, 500",
	}); err != nil {
		t.Fatal(err)
	}

	f.geocoder.reverseResult = "Rua Augusta, 500 - São Paulo"
	public, err := f.tracking.Lookup(context.Background(), d.TrackingCode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(public.Updates) != 2 {
		t.Fatalf("expected 2 timeline entries, got %d", len(public.Updates))
	}

	var located, statusOnly int
	for _, u := range public.Updates {
		if u.Latitude != nil {
			located++
			if u.Address != "Rua Augusta, 500 - São Paulo" {
				t.Errorf("located entry missing reverse-geocoded address, got %q", u.Address)
			}
		} else {
			statusOnly++
			if u.Address != "" {
				t.Errorf("status-only entry must have no address, got %q", u.Address)
			}
		}
	}
	if located != 1 || statusOnly != 1 {
		t.Errorf("expected 1 located and 1 status-only entry, got %d/%d", located, statusOnly)
	}
}

func TestLookup_ReverseGeocodingFailureDegradesGracefully(t *testing.T) {
	f := newTrackingFixture()
	d := f.seedPending(t)

	if _, err := f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		DeliveryID: d.ID, Status: domain.StatusInTransit,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.ReportLocation(context.Background(), ports.ReportLocationInput{
		DeliveryID: d.ID, Address: "Rua Augusta, 500",
	}); err != nil {
		t.Fatal(err)
	}

	f.geocoder.reverseErr = domain.ErrGeocodingUnavailable
	public, err := f.tracking.Lookup(context.Background(), d.TrackingCode)
	if err != nil {
		t.Fatalf("lookup must survive reverse-geocoding failure: %v", err)
	}

	for _, u := range public.Updates {
		if u.Latitude != nil {
			if u.Address != "" {
				t.Errorf("expected raw coordinates only, got address %q", u.Address)
			}
			if *u.Latitude == 0 {
				t.Error("coordinates must still be present")
			}
		}
	}
}

func TestLookup_MissingCustomerStillServed(t *testing.T) {
	f := newTrackingFixture()
	d := f.seedPending(t)
	delete(f.customers.byID, "cus_1")

	public, err := f.tracking.Lookup(context.Background(), d.TrackingCode)
	if err != nil {
		t.Fatalf("lookup must survive a missing customer: %v", err)
	}
	if public.CustomerName != "" {
		t.Errorf("expected empty customer name, got %q", public.CustomerName)
	}
}
