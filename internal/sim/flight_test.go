package sim

import (
	"math"
	"testing"
	"time"

	"adf-decoder/internal/adf"
)

func TestFlight_Position_Invariants(t *testing.T) {
	f := Flight{
		CenterLatDeg: 45.0,
		CenterLonDeg: -122.0,
		RadiusNm:     1.0,
		Period:       60 * time.Second,
	}

	now := time.Date(2026, 8, 20, 19, 0, 0, 0, time.UTC)
	lat, lon, trk := f.Position(now)

	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		t.Fatalf("lat invalid: %v", lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		t.Fatalf("lon invalid: %v", lon)
	}
	if trk < 0 || trk >= 360 {
		t.Fatalf("track out of range: %v", trk)
	}

	// Rough bound check in degrees (since sim uses small-angle degree math).
	radiusDeg := f.RadiusNm / 60.0
	if math.Abs(lat-f.CenterLatDeg) > radiusDeg*1.01 {
		t.Fatalf("lat offset too large: got %f want <= %f", math.Abs(lat-f.CenterLatDeg), radiusDeg)
	}
	maxLonDeg := radiusDeg / math.Cos(f.CenterLatDeg*math.Pi/180.0)
	if math.Abs(lon-f.CenterLonDeg) > maxLonDeg*1.01 {
		t.Fatalf("lon offset too large: got %f want <= %f", math.Abs(lon-f.CenterLonDeg), maxLonDeg)
	}
}

func TestFlight_Position_DeterministicForNow(t *testing.T) {
	f := Flight{CenterLatDeg: 1, CenterLonDeg: 2, RadiusNm: 0.5, Period: 120 * time.Second}
	now := time.Date(2026, 8, 20, 19, 0, 0, 123, time.UTC)

	lat1, lon1, trk1 := f.Position(now)
	lat2, lon2, trk2 := f.Position(now)
	if lat1 != lat2 || lon1 != lon2 || trk1 != trk2 {
		t.Fatalf("expected deterministic result for same now")
	}
}

func TestFlight_Burst_EveryRecordEncodes(t *testing.T) {
	f := Flight{
		CenterLatDeg: 45.5,
		CenterLonDeg: -122.5,
		AltFeet:      3500,
		GroundKt:     110,
		RadiusNm:     1.0,
		Period:       120 * time.Second,
		Waypoint:     "UBG",
	}
	now := time.Date(2026, 8, 20, 19, 0, 17, 0, time.UTC)

	burst := f.Burst(now)
	if len(burst) == 0 {
		t.Fatalf("empty burst")
	}

	seen := map[adf.MessageType]bool{}
	for _, rec := range burst {
		seen[rec.Type()] = true
		frame, err := adf.Encode(rec)
		if err != nil {
			t.Fatalf("Encode(%s) error: %v", rec.Type(), err)
		}
		payload, err := adf.Unframe(frame)
		if err != nil {
			t.Fatalf("Unframe(%s) error: %v", rec.Type(), err)
		}
		if _, err := adf.Decode(payload); err != nil {
			t.Fatalf("Decode(%s) error: %v", rec.Type(), err)
		}
	}

	want := []adf.MessageType{
		adf.TypeGPSAltitude, adf.TypeLatitude, adf.TypeLongitude,
		adf.TypeTrack, adf.TypeGroundSpeed, adf.TypeDistanceToWaypoint,
		adf.TypeCrossTrackError, adf.TypeDesiredTrack, adf.TypeActiveWaypoint,
		adf.TypeBearingToWaypoint, adf.TypeMagneticVariation, adf.TypeNavStatus,
		adf.TypeWarningStatus, adf.TypeDistanceToDestination, adf.TypeFlightPlanLeg,
	}
	for _, mt := range want {
		if !seen[mt] {
			t.Fatalf("burst missing record type %s", mt)
		}
	}
}

func TestFlight_Burst_FlightPlanShape(t *testing.T) {
	f := Flight{CenterLatDeg: 45.5, CenterLonDeg: -122.5, RadiusNm: 0.5, Waypoint: "UBG"}
	now := time.Date(2026, 8, 20, 19, 0, 0, 0, time.UTC)

	var legs []adf.FlightPlanLeg
	for _, rec := range f.Burst(now) {
		if leg, ok := rec.(adf.FlightPlanLeg); ok {
			legs = append(legs, leg)
		}
	}
	if len(legs) != 3 {
		t.Fatalf("legs=%d want 3", len(legs))
	}

	active, last := 0, 0
	for i, leg := range legs {
		if leg.Seq != i {
			t.Fatalf("legs[%d].Seq=%d", i, leg.Seq)
		}
		if !leg.HaveWaypoint {
			t.Fatalf("legs[%d] missing waypoint", i)
		}
		if leg.Active {
			active++
		}
		if leg.Last {
			last++
		}
	}
	if active != 1 {
		t.Fatalf("active legs=%d want 1", active)
	}
	if last != 1 || !legs[2].Last {
		t.Fatalf("expected final leg flagged as last")
	}
	if legs[1].Ident != "UBG" || !legs[1].Active {
		t.Fatalf("expected active leg to carry the configured waypoint")
	}
}

func TestDegMinutes_Quantization(t *testing.T) {
	pos, deg, min := degMinutes(45.9999999, 100)
	if !pos || deg != 46 || min != 0 {
		t.Fatalf("got %v %d %v, want carry into degrees", pos, deg, min)
	}
	if min < 0 || min >= 60 {
		t.Fatalf("minutes out of range: %v", min)
	}

	pos, deg, min = degMinutes(-122.5, 10)
	if pos || deg != 122 || min != 30 {
		t.Fatalf("got %v %d %v, want S/W 122 30.0", pos, deg, min)
	}
}
