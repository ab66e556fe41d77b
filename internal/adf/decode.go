package adf

import (
	"strconv"
	"strings"
)

// layout describes how one message type's payload is decoded: a human
// readable name, the minimum payload size the field layout requires, and
// the conversion from raw bytes to a typed record.
type layout struct {
	name   string
	minLen int
	decode func(data []byte) (Record, error)
}

var layouts = map[MessageType]layout{
	TypeGPSAltitude:           {"gps altitude", 1, decodeGPSAltitude},
	TypeLatitude:              {"latitude", 9, decodeLatitude},
	TypeLongitude:             {"longitude", 10, decodeLongitude},
	TypeTrack:                 {"track", 1, decodeTrack},
	TypeGroundSpeed:           {"ground speed", 1, decodeGroundSpeed},
	TypeDistanceToWaypoint:    {"distance to waypoint", 2, decodeDistanceToWaypoint},
	TypeCrossTrackError:       {"cross track error", 2, decodeCrossTrackError},
	TypeDesiredTrack:          {"desired track", 2, decodeDesiredTrack},
	TypeActiveWaypoint:        {"active waypoint", 1, decodeActiveWaypoint},
	TypeBearingToWaypoint:     {"bearing to waypoint", 2, decodeBearingToWaypoint},
	TypeMagneticVariation:     {"magnetic variation", 2, decodeMagneticVariation},
	TypeNavStatus:             {"nav status", 5, decodeNavStatus},
	TypeWarningStatus:         {"warning status", 1, decodeWarningStatus},
	TypeDistanceToDestination: {"distance to destination", 2, decodeDistanceToDestination},
	TypeFlightPlanLeg:         {"flight plan leg", 3, decodeFlightPlanLeg},
}

// Decode interprets a verified payload according to its message type's
// field layout. It is total for known types: field values the navigator
// sends as dashes (or that do not parse as the layout requires) come back
// with Known=false rather than a guessed value.
func Decode(p Payload) (Record, error) {
	l, ok := layouts[p.Type]
	if !ok {
		return nil, &UnknownMessageTypeError{Type: byte(p.Type)}
	}
	if len(p.Data) < l.minLen {
		return nil, &PayloadTooShortError{Type: p.Type, Need: l.minLen, Got: len(p.Data)}
	}
	return l.decode(p.Data)
}

// unavailable reports the navigator's "field not available" marker: the
// value replaced by dashes.
func unavailable(data []byte) bool {
	return len(data) >= 2 && data[0] == '-' && data[1] == '-'
}

func parseInt(data []byte) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	return n, err == nil
}

func parseFloat(data []byte) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	return f, err == nil
}

// parseScaled reads an ASCII integer expressed in 1/div units.
func parseScaled(data []byte, div float64) (float64, bool) {
	f, ok := parseFloat(data)
	if !ok {
		return 0, false
	}
	return f / div, true
}

func decodeGPSAltitude(data []byte) (Record, error) {
	n, ok := parseInt(data)
	if !ok {
		return GPSAltitude{}, nil
	}
	return GPSAltitude{Feet: n, Known: true}, nil
}

// Type 1 position sentences are fixed-width ASCII:
//
//	'A' payload: <N|S> SP dd SP mmhh...   (hundredths of minutes)
//	'B' payload: <E|W> SP ddd SP mmhh...
func decodeLatitude(data []byte) (Record, error) {
	deg, degOK := parseInt(data[2:4])
	min, minOK := parseMinutes(data[5:7], data[7:])
	if !degOK || !minOK {
		return Latitude{North: data[0] == 'N'}, nil
	}
	return Latitude{North: data[0] == 'N', Degrees: deg, Minutes: min, Known: true}, nil
}

func decodeLongitude(data []byte) (Record, error) {
	deg, degOK := parseInt(data[2:5])
	min, minOK := parseMinutes(data[6:8], data[8:])
	if !degOK || !minOK {
		return Longitude{East: data[0] == 'E'}, nil
	}
	return Longitude{East: data[0] == 'E', Degrees: deg, Minutes: min, Known: true}, nil
}

// parseMinutes combines the whole-minute digits with the trailing
// hundredths digits.
func parseMinutes(whole, frac []byte) (float64, bool) {
	w, ok := parseInt(whole)
	if !ok {
		return 0, false
	}
	f, ok := parseInt(frac)
	if !ok || f < 0 {
		return 0, false
	}
	div := 1.0
	for range frac {
		div *= 10
	}
	return float64(w) + float64(f)/div, true
}

func decodeTrack(data []byte) (Record, error) {
	f, ok := parseFloat(data)
	if !ok {
		return Track{}, nil
	}
	return Track{Degrees: f, Known: true}, nil
}

func decodeGroundSpeed(data []byte) (Record, error) {
	n, ok := parseInt(data)
	if !ok {
		return GroundSpeed{}, nil
	}
	return GroundSpeed{Knots: n, Known: true}, nil
}

func decodeDistanceToWaypoint(data []byte) (Record, error) {
	if unavailable(data) {
		return DistanceToWaypoint{}, nil
	}
	nm, ok := parseScaled(data, 10)
	if !ok {
		return DistanceToWaypoint{}, nil
	}
	return DistanceToWaypoint{NauticalMiles: nm, Known: true}, nil
}

func decodeCrossTrackError(data []byte) (Record, error) {
	if unavailable(data) {
		return CrossTrackError{}, nil
	}
	nm, ok := parseScaled(data[1:], 100)
	if !ok || (data[0] != 'L' && data[0] != 'R') {
		return CrossTrackError{}, nil
	}
	return CrossTrackError{Right: data[0] == 'R', NauticalMiles: nm, Known: true}, nil
}

func decodeDesiredTrack(data []byte) (Record, error) {
	if unavailable(data) {
		return DesiredTrack{}, nil
	}
	deg, ok := parseScaled(data, 10)
	if !ok {
		return DesiredTrack{}, nil
	}
	return DesiredTrack{Degrees: deg, Known: true}, nil
}

func decodeActiveWaypoint(data []byte) (Record, error) {
	return ActiveWaypoint{Ident: strings.TrimRight(string(data), " ")}, nil
}

func decodeBearingToWaypoint(data []byte) (Record, error) {
	if unavailable(data) {
		return BearingToWaypoint{}, nil
	}
	deg, ok := parseScaled(data, 10)
	if !ok {
		return BearingToWaypoint{}, nil
	}
	return BearingToWaypoint{Degrees: deg, Known: true}, nil
}

func decodeMagneticVariation(data []byte) (Record, error) {
	deg, ok := parseScaled(data[1:], 10)
	if !ok || (data[0] != 'E' && data[0] != 'W') {
		return MagneticVariation{}, nil
	}
	return MagneticVariation{East: data[0] == 'E', Degrees: deg, Known: true}, nil
}

// 'S' payload is four filler characters and a flag character; dash means
// the navigation solution is valid, 'N' means it is not.
func decodeNavStatus(data []byte) (Record, error) {
	return NavStatus{NavValid: data[4] == '-'}, nil
}

func decodeWarningStatus(data []byte) (Record, error) {
	return WarningStatus{Flags: string(data)}, nil
}

func decodeDistanceToDestination(data []byte) (Record, error) {
	if unavailable(data) {
		return DistanceToDestination{}, nil
	}
	nm, ok := parseScaled(data, 10)
	if !ok {
		return DistanceToDestination{}, nil
	}
	return DistanceToDestination{NauticalMiles: nm, Known: true}, nil
}

// Type 2 flight plan payload after the 'w':
//
//	seq(2 ASCII digits) flags(1) ident(5)
//	latSign+deg(1) latMin(1) latDeciMin(1)
//	lonSign(1) lonDeg(1) lonMin(1) lonDeciMin(1)
//	magvar(2, s16 big-endian, 1/16 degree)
//
// A three-byte payload is a flight plan with no waypoints: seq and flags
// only.
const (
	fpLegFull = 17

	fpActiveLeg  = 0x20
	fpLastLeg    = 0x40
	fpLegNumMask = 0x1F
	fpSignBit    = 0x80
	fpLatDegMask = 0x7F
	fpMinMask    = 0x3F
	fpDeciMask   = 0x7F
)

func decodeFlightPlanLeg(data []byte) (Record, error) {
	if data[0] < '0' || data[0] > '9' || data[1] < '0' || data[1] > '9' {
		// Only w<digit><digit> sentences are Type 2; anything else is an
		// unrecognized sentence, not a flight plan leg.
		return nil, &UnknownMessageTypeError{Type: byte(TypeFlightPlanLeg)}
	}
	leg := FlightPlanLeg{
		Seq:    int(data[0]-'0')*10 + int(data[1]-'0'),
		Leg:    int(data[2] & fpLegNumMask),
		Active: data[2]&fpActiveLeg != 0,
		Last:   data[2]&fpLastLeg != 0,
	}
	if len(data) == 3 {
		return leg, nil
	}
	if len(data) < fpLegFull {
		return nil, &PayloadTooShortError{Type: TypeFlightPlanLeg, Need: fpLegFull, Got: len(data)}
	}

	leg.HaveWaypoint = true
	leg.Ident = strings.TrimRight(string(data[3:8]), " ")

	leg.South = data[8]&fpSignBit != 0
	leg.LatDegrees = int(data[8] & fpLatDegMask)
	leg.LatMinutes = float64(data[9]&fpMinMask) + float64(data[10]&fpDeciMask)/10

	leg.West = data[11]&fpSignBit != 0
	leg.LonDegrees = int(data[12])
	leg.LonMinutes = float64(data[13]&fpMinMask) + float64(data[14]&fpDeciMask)/10

	// Magnetic variation: 16-bit two's complement, 1/16 degree, east
	// positive.
	mv := int16(uint16(data[15])<<8 | uint16(data[16]))
	leg.MagVarDegrees = float64(mv) / 16

	return leg, nil
}
