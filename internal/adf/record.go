package adf

import "fmt"

// MessageType is the Appendix D sentence identifier carried in a frame's
// type byte.
type MessageType byte

const (
	TypeGPSAltitude           MessageType = 'z'
	TypeLatitude              MessageType = 'A'
	TypeLongitude             MessageType = 'B'
	TypeTrack                 MessageType = 'C'
	TypeGroundSpeed           MessageType = 'D'
	TypeDistanceToWaypoint    MessageType = 'E'
	TypeCrossTrackError       MessageType = 'G'
	TypeDesiredTrack          MessageType = 'I'
	TypeActiveWaypoint        MessageType = 'K'
	TypeBearingToWaypoint     MessageType = 'L'
	TypeMagneticVariation     MessageType = 'Q'
	TypeNavStatus             MessageType = 'S'
	TypeWarningStatus         MessageType = 'T'
	TypeDistanceToDestination MessageType = 'l'
	TypeFlightPlanLeg         MessageType = 'w'
)

func (t MessageType) String() string {
	if l, ok := layouts[t]; ok {
		return l.name
	}
	return fmt.Sprintf("unknown(0x%02X)", byte(t))
}

// Record is a single decoded ADF message. The set of implementations is
// closed: one per message type, switch on the concrete type or on Type().
//
// Numeric fields the navigator can mark "not available" (dashes on the
// wire) carry a Known flag; when Known is false the value is zero and must
// not be interpreted.
type Record interface {
	Type() MessageType
}

// GPSAltitude is the GPS-derived altitude ('z').
type GPSAltitude struct {
	Feet  int
	Known bool
}

func (GPSAltitude) Type() MessageType { return TypeGPSAltitude }

// Latitude is the present position latitude ('A') in whole degrees and
// decimal minutes.
type Latitude struct {
	North   bool
	Degrees int
	Minutes float64
	Known   bool
}

func (Latitude) Type() MessageType { return TypeLatitude }

// DecimalDegrees returns the latitude as signed decimal degrees, north
// positive.
func (r Latitude) DecimalDegrees() float64 {
	deg := float64(r.Degrees) + r.Minutes/60
	if !r.North {
		return -deg
	}
	return deg
}

// Longitude is the present position longitude ('B') in whole degrees and
// decimal minutes.
type Longitude struct {
	East    bool
	Degrees int
	Minutes float64
	Known   bool
}

func (Longitude) Type() MessageType { return TypeLongitude }

// DecimalDegrees returns the longitude as signed decimal degrees, east
// positive.
func (r Longitude) DecimalDegrees() float64 {
	deg := float64(r.Degrees) + r.Minutes/60
	if !r.East {
		return -deg
	}
	return deg
}

// Track is the ground track ('C') in degrees magnetic.
type Track struct {
	Degrees float64
	Known   bool
}

func (Track) Type() MessageType { return TypeTrack }

// GroundSpeed is the GPS ground speed ('D') in knots.
type GroundSpeed struct {
	Knots int
	Known bool
}

func (GroundSpeed) Type() MessageType { return TypeGroundSpeed }

// DistanceToWaypoint is the distance to the active waypoint ('E') in
// nautical miles, 0.1 nm resolution.
type DistanceToWaypoint struct {
	NauticalMiles float64
	Known         bool
}

func (DistanceToWaypoint) Type() MessageType { return TypeDistanceToWaypoint }

// CrossTrackError is the cross track error ('G') in nautical miles, 0.01 nm
// resolution. Right reports which side of the desired track the aircraft is
// on.
type CrossTrackError struct {
	Right         bool
	NauticalMiles float64
	Known         bool
}

func (CrossTrackError) Type() MessageType { return TypeCrossTrackError }

// DesiredTrack is the desired track ('I') in degrees, 0.1 degree
// resolution.
type DesiredTrack struct {
	Degrees float64
	Known   bool
}

func (DesiredTrack) Type() MessageType { return TypeDesiredTrack }

// ActiveWaypoint is the identifier of the waypoint in the active leg ('K').
// The manual calls this the destination waypoint, but the navigator sends
// the active leg's waypoint here.
type ActiveWaypoint struct {
	Ident string
}

func (ActiveWaypoint) Type() MessageType { return TypeActiveWaypoint }

// BearingToWaypoint is the bearing to the active waypoint ('L') in degrees,
// 0.1 degree resolution.
type BearingToWaypoint struct {
	Degrees float64
	Known   bool
}

func (BearingToWaypoint) Type() MessageType { return TypeBearingToWaypoint }

// MagneticVariation ('Q') in degrees, 0.1 degree resolution, East or West.
type MagneticVariation struct {
	East    bool
	Degrees float64
	Known   bool
}

func (MagneticVariation) Type() MessageType { return TypeMagneticVariation }

// NavStatus ('S') reports whether the navigation solution is valid.
type NavStatus struct {
	NavValid bool
}

func (NavStatus) Type() MessageType { return TypeNavStatus }

// WarningStatus ('T') carries the raw annunciator flag characters.
type WarningStatus struct {
	Flags string
}

func (WarningStatus) Type() MessageType { return TypeWarningStatus }

// DistanceToDestination is the distance to the final destination waypoint
// ('l') in nautical miles, 0.1 nm resolution.
type DistanceToDestination struct {
	NauticalMiles float64
	Known         bool
}

func (DistanceToDestination) Type() MessageType { return TypeDistanceToDestination }

// FlightPlanLeg is one Type 2 flight plan sentence ('w'): a waypoint in the
// active flight plan with its 2D position, plus flags marking the active
// and final legs. A flight plan message with no waypoints carries only the
// sequence and flags; HaveWaypoint is false then and the position fields
// are zero.
type FlightPlanLeg struct {
	// Seq is the two-digit sentence sequence number after the 'w'.
	Seq    int
	Leg    int
	Active bool
	Last   bool

	HaveWaypoint bool
	Ident        string

	South      bool
	LatDegrees int
	LatMinutes float64

	West       bool
	LonDegrees int
	LonMinutes float64

	// MagVarDegrees is east-positive, 1/16 degree resolution.
	MagVarDegrees float64
}

func (FlightPlanLeg) Type() MessageType { return TypeFlightPlanLeg }

// LatDecimalDegrees returns the leg waypoint latitude as signed decimal
// degrees, north positive.
func (r FlightPlanLeg) LatDecimalDegrees() float64 {
	deg := float64(r.LatDegrees) + r.LatMinutes/60
	if r.South {
		return -deg
	}
	return deg
}

// LonDecimalDegrees returns the leg waypoint longitude as signed decimal
// degrees, east positive.
func (r FlightPlanLeg) LonDecimalDegrees() float64 {
	deg := float64(r.LonDegrees) + r.LonMinutes/60
	if r.West {
		return -deg
	}
	return deg
}
