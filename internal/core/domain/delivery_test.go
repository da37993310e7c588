package domain

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to DeliveryStatus
		want     bool
	}{
		{StatusPending, StatusInTransit, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDelivered, false},
		{StatusPending, StatusPending, false},
		{StatusInTransit, StatusDelivered, true},
		{StatusInTransit, StatusCancelled, true},
		{StatusInTransit, StatusPending, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusInTransit, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusInTransit, false},
		{StatusCancelled, StatusDelivered, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []DeliveryStatus{StatusDelivered, StatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
	for _, s := range []DeliveryStatus{StatusPending, StatusInTransit} {
		if s.IsTerminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	if DeliveryStatus("lost").IsValid() {
		t.Error("unknown status must not be valid")
	}
	if !StatusInTransit.IsValid() {
		t.Error("in_transit must be valid")
	}
}

func TestTrackingUpdateHasCoordinates(t *testing.T) {
	lat, lng := -23.5505, -46.6333

	u := &TrackingUpdate{}
	if u.HasCoordinates() {
		t.Error("update without coordinates must report false")
	}

	u.Latitude = &lat
	if u.HasCoordinates() {
		t.Error("a lone latitude is not a coordinate pair")
	}

	u.Longitude = &lng
	if !u.HasCoordinates() {
		t.Error("full pair must report true")
	}
}
