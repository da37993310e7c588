package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cementrack/tracking-api/internal/core/domain"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *MapboxGeocoder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewMapboxGeocoder(Config{
		Token:    "test-token",
		BaseURL:  srv.URL,
		Country:  "BR",
		Language: "pt",
	}, zerolog.Nop())
}

func TestForward_ParsesFirstFeature(t *testing.T) {
	var gotPath, gotToken, gotCountry string
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		gotCountry = r.URL.Query().Get("country")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[
			{"place_name":"Avenida Paulista 1000, São Paulo, Brazil","center":[-46.6565,-23.5613]},
			{"place_name":"somewhere less relevant","center":[0,0]}
		]}`))
	})

	res, err := g.Forward(context.Background(), "Av. Paulista, 1000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/geocoding/v5/mapbox.places/Av. Paulista, 1000.json" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotToken != "test-token" || gotCountry != "BR" {
		t.Errorf("token/country not forwarded: %q %q", gotToken, gotCountry)
	}
	// center is [lng, lat]
	if res.Lat != -23.5613 || res.Lng != -46.6565 {
		t.Errorf("coordinates swapped or wrong: %v, %v", res.Lat, res.Lng)
	}
	if res.NormalizedAddress != "Avenida Paulista 1000, São Paulo, Brazil" {
		t.Errorf("unexpected normalized address %q", res.NormalizedAddress)
	}
}

func TestForward_NoFeaturesIsAddressNotFound(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	})

	_, err := g.Forward(context.Background(), "completely made up place")
	if !errors.Is(err, domain.ErrAddressNotFound) {
		t.Errorf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestForward_ServerErrorIsUnavailable(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := g.Forward(context.Background(), "Av. Paulista, 1000")
	if !errors.Is(err, domain.ErrGeocodingUnavailable) {
		t.Errorf("expected ErrGeocodingUnavailable, got %v", err)
	}
}

func TestForward_UnauthorizedIsUnavailable(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := g.Forward(context.Background(), "Av. Paulista, 1000")
	if !errors.Is(err, domain.ErrGeocodingUnavailable) {
		t.Errorf("expected ErrGeocodingUnavailable, got %v", err)
	}
}

func TestForward_GarbageBodyIsUnavailable(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := g.Forward(context.Background(), "Av. Paulista, 1000")
	if !errors.Is(err, domain.ErrGeocodingUnavailable) {
		t.Errorf("expected ErrGeocodingUnavailable, got %v", err)
	}
}

func TestReverse_QueriesLngLatOrder(t *testing.T) {
	var gotPath string
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"features":[{"place_name":"Rua Augusta 500, São Paulo","center":[-46.6627,-23.5532]}]}`))
	})

	address, err := g.Reverse(context.Background(), -23.5532, -46.6627)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address != "Rua Augusta 500, São Paulo" {
		t.Errorf("unexpected address %q", address)
	}
	if gotPath != "/geocoding/v5/mapbox.places/-46.662700,-23.553200.json" {
		t.Errorf("reverse query must be lng,lat: %q", gotPath)
	}
}

func TestReverse_ContextCancellation(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Reverse(ctx, -23.5532, -46.6627)
	if !errors.Is(err, domain.ErrGeocodingUnavailable) {
		t.Errorf("expected ErrGeocodingUnavailable, got %v", err)
	}
}
