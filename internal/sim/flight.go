// Package sim synthesizes a deterministic navigator output stream for
// testing consumers without a panel-mounted unit on the bench.
package sim

import (
	"math"
	"time"

	"adf-decoder/internal/adf"
)

// Flight is a deterministic circuit flown around a configured center.
// The same Flight and instant always produce the same burst, so captures
// generated from it are reproducible.
type Flight struct {
	CenterLatDeg float64
	CenterLonDeg float64
	AltFeet      int
	GroundKt     int
	RadiusNm     float64
	Period       time.Duration
	Waypoint     string
}

// Kinematics returns deterministic position plus a simple vertical profile.
//
// Altitude is a sinusoid around AltFeet with its own period so the vertical
// motion does not stay in lockstep with the horizontal pattern.
func (f Flight) Kinematics(now time.Time) (latDeg, lonDeg, trackDeg float64, altFeet int) {
	latDeg, lonDeg, trackDeg = f.Position(now)

	baseAlt := f.AltFeet
	if baseAlt == 0 {
		baseAlt = 3000
	}
	period := f.Period
	if period <= 0 {
		period = 120 * time.Second
	}
	vp := period / 2
	if vp < 30*time.Second {
		vp = 30 * time.Second
	}
	amp := 500.0 // ft

	phase := float64(now.UnixNano()%vp.Nanoseconds()) / float64(vp.Nanoseconds())
	alt := float64(baseAlt) + amp*math.Sin(2*math.Pi*phase)
	altFeet = int(math.Round(alt))
	return latDeg, lonDeg, trackDeg, altFeet
}

// Position returns a simple closed track around the configured center.
func (f Flight) Position(now time.Time) (latDeg, lonDeg, trackDeg float64) {
	period := f.Period
	if period <= 0 {
		period = 120 * time.Second
	}
	radiusNm := f.RadiusNm
	if radiusNm <= 0 {
		radiusNm = 0.5
	}

	// Convert NM to degrees latitude (~60 NM per degree).
	radiusDeg := radiusNm / 60.0

	phase := float64(now.UnixNano()%period.Nanoseconds()) / float64(period.Nanoseconds())

	// A deterministic figure-eight (Lissajous) path that stays within the
	// configured radius; y is kept within [-0.5, 0.5].
	w := 2 * math.Pi * phase
	x := math.Cos(w)
	y := 0.5 * math.Sin(2*w)

	latDeg = f.CenterLatDeg + radiusDeg*y
	lonDeg = f.CenterLonDeg + (radiusDeg*x)/math.Cos(f.CenterLatDeg*math.Pi/180.0)

	// Track from instantaneous velocity (atan2(east, north)).
	vx := -2 * math.Pi * math.Sin(w)
	vy := 2 * math.Pi * math.Cos(2*w)
	trackRad := math.Atan2(vx, vy)
	trackDeg = math.Mod((trackRad*180/math.Pi)+360, 360)
	return latDeg, lonDeg, trackDeg
}

// waypointLatDeg/waypointLonDeg place the active waypoint two radii north
// of the pattern center.
func (f Flight) waypointLatDeg() float64 {
	radiusNm := f.RadiusNm
	if radiusNm <= 0 {
		radiusNm = 0.5
	}
	return f.CenterLatDeg + 2*radiusNm/60.0
}

func (f Flight) waypointLonDeg() float64 {
	return f.CenterLonDeg
}

// Burst returns the full set of records a navigator would emit in one
// transmission cycle: position, navigation data, status, and the current
// flight plan. Every record is encodable.
func (f Flight) Burst(now time.Time) []adf.Record {
	latDeg, lonDeg, trackDeg, altFeet := f.Kinematics(now)

	wpLat := f.waypointLatDeg()
	wpLon := f.waypointLonDeg()
	distNm, bearingDeg := rangeBearing(latDeg, lonDeg, wpLat, wpLon)

	// A small oscillating cross track keeps the L/R flag exercised.
	phase := float64(now.UnixNano()%int64(time.Minute)) / float64(time.Minute)
	xte := 0.2 * math.Sin(2*math.Pi*phase)

	gs := f.GroundKt
	if gs <= 0 {
		gs = 90
	}
	ident := f.Waypoint
	if ident == "" {
		ident = "KPDX"
	}

	north, latD, latM := degMinutes(latDeg, 100)
	east, lonD, lonM := degMinutes(lonDeg, 100)

	recs := []adf.Record{
		adf.GPSAltitude{Feet: altFeet, Known: true},
		adf.Latitude{North: north, Degrees: latD, Minutes: latM, Known: true},
		adf.Longitude{East: east, Degrees: lonD, Minutes: lonM, Known: true},
		adf.Track{Degrees: tenths(trackDeg), Known: true},
		adf.GroundSpeed{Knots: gs, Known: true},
		adf.DistanceToWaypoint{NauticalMiles: tenths(distNm), Known: true},
		adf.CrossTrackError{Right: xte >= 0, NauticalMiles: hundredths(math.Abs(xte)), Known: true},
		adf.DesiredTrack{Degrees: tenths(bearingDeg), Known: true},
		adf.ActiveWaypoint{Ident: ident},
		adf.BearingToWaypoint{Degrees: tenths(bearingDeg), Known: true},
		adf.MagneticVariation{East: true, Degrees: 15.5, Known: true},
		adf.NavStatus{NavValid: true},
		adf.WarningStatus{Flags: "-----"},
		adf.DistanceToDestination{NauticalMiles: tenths(distNm * 2), Known: true},
	}
	return append(recs, f.plan(ident, wpLat, wpLon)...)
}

// plan builds a three leg flight plan: departure at the pattern center,
// the active waypoint, and a destination one radius further north.
func (f Flight) plan(ident string, wpLat, wpLon float64) []adf.Record {
	radiusNm := f.RadiusNm
	if radiusNm <= 0 {
		radiusNm = 0.5
	}
	destLat := wpLat + radiusNm/60.0

	legs := []struct {
		ident    string
		lat, lon float64
		active   bool
		last     bool
	}{
		{ident: "DEP", lat: f.CenterLatDeg, lon: f.CenterLonDeg},
		{ident: ident, lat: wpLat, lon: wpLon, active: true},
		{ident: "DEST", lat: destLat, lon: wpLon, last: true},
	}

	out := make([]adf.Record, 0, len(legs))
	for i, l := range legs {
		north, latD, latM := degMinutes(l.lat, 10)
		east, lonD, lonM := degMinutes(l.lon, 10)
		out = append(out, adf.FlightPlanLeg{
			Seq:           i,
			Leg:           i,
			Active:        l.active,
			Last:          l.last,
			HaveWaypoint:  true,
			Ident:         l.ident,
			South:         !north,
			LatDegrees:    latD,
			LatMinutes:    latM,
			West:          !east,
			LonDegrees:    lonD,
			LonMinutes:    lonM,
			MagVarDegrees: 15.5,
		})
	}
	return out
}

// degMinutes splits a signed decimal-degree value into hemisphere, whole
// degrees, and decimal minutes quantized to 1/res minute so the value
// survives the wire encoding exactly.
func degMinutes(v float64, res int) (positive bool, degrees int, minutes float64) {
	positive = v >= 0
	total := int(math.Round(math.Abs(v) * 60 * float64(res)))
	degrees = total / (60 * res)
	minutes = float64(total%(60*res)) / float64(res)
	return positive, degrees, minutes
}

// rangeBearing is a flat-earth range and bearing approximation, fine for
// the sub-degree distances the pattern covers.
func rangeBearing(fromLat, fromLon, toLat, toLon float64) (distNm, bearingDeg float64) {
	dNorth := (toLat - fromLat) * 60
	dEast := (toLon - fromLon) * 60 * math.Cos(fromLat*math.Pi/180.0)
	distNm = math.Hypot(dNorth, dEast)
	bearingDeg = math.Mod(math.Atan2(dEast, dNorth)*180/math.Pi+360, 360)
	return distNm, bearingDeg
}

func tenths(v float64) float64 {
	return math.Round(v*10) / 10
}

func hundredths(v float64) float64 {
	return math.Round(v*100) / 100
}
