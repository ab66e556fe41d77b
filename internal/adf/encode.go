package adf

import (
	"fmt"
	"math"
	"strconv"
)

// Encode builds a complete wire frame (stuffed, CRC'd, STX/ETX delimited)
// for a record, the exact inverse of Stream decoding. It backs the stream
// generation tool and the round-trip tests; unavailable numeric fields are
// emitted in their dashed wire form.
func Encode(rec Record) ([]byte, error) {
	payload, err := encodePayload(rec)
	if err != nil {
		return nil, err
	}
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("adf: %s payload exceeds %d bytes", rec.Type(), MaxPayload)
	}
	return FrameBytes(rec.Type(), payload), nil
}

func encodePayload(rec Record) ([]byte, error) {
	switch r := rec.(type) {
	case GPSAltitude:
		if !r.Known {
			return []byte("-----"), nil
		}
		return []byte(strconv.Itoa(r.Feet)), nil

	case Latitude:
		if !r.Known {
			return nil, fmt.Errorf("adf: latitude has no unavailable wire form")
		}
		whole, hundredths, err := splitMinutes(r.Minutes, 100)
		if err != nil {
			return nil, err
		}
		return []byte(fmt.Sprintf("%c %02d %02d%02d", hemi(r.North, 'N', 'S'), r.Degrees, whole, hundredths)), nil

	case Longitude:
		if !r.Known {
			return nil, fmt.Errorf("adf: longitude has no unavailable wire form")
		}
		whole, hundredths, err := splitMinutes(r.Minutes, 100)
		if err != nil {
			return nil, err
		}
		return []byte(fmt.Sprintf("%c %03d %02d%02d", hemi(r.East, 'E', 'W'), r.Degrees, whole, hundredths)), nil

	case Track:
		if !r.Known {
			return []byte("---"), nil
		}
		return []byte(strconv.FormatFloat(r.Degrees, 'f', 1, 64)), nil

	case GroundSpeed:
		if !r.Known {
			return []byte("---"), nil
		}
		return []byte(strconv.Itoa(r.Knots)), nil

	case DistanceToWaypoint:
		return scaledOrDashes(r.NauticalMiles, 10, r.Known), nil

	case CrossTrackError:
		if !r.Known {
			return []byte("----"), nil
		}
		return append([]byte{hemi(r.Right, 'R', 'L')}, scaled(r.NauticalMiles, 100)...), nil

	case DesiredTrack:
		return scaledOrDashes(r.Degrees, 10, r.Known), nil

	case ActiveWaypoint:
		return padIdent(r.Ident)

	case BearingToWaypoint:
		return scaledOrDashes(r.Degrees, 10, r.Known), nil

	case MagneticVariation:
		if !r.Known {
			return []byte("----"), nil
		}
		return append([]byte{hemi(r.East, 'E', 'W')}, scaled(r.Degrees, 10)...), nil

	case NavStatus:
		flag := byte('N')
		if r.NavValid {
			flag = '-'
		}
		return []byte{'-', '-', '-', '-', flag}, nil

	case WarningStatus:
		if r.Flags == "" {
			return nil, fmt.Errorf("adf: warning status flags are empty")
		}
		return []byte(r.Flags), nil

	case DistanceToDestination:
		return scaledOrDashes(r.NauticalMiles, 10, r.Known), nil

	case FlightPlanLeg:
		return encodeFlightPlanLeg(r)
	}
	return nil, fmt.Errorf("adf: unencodable record type %T", rec)
}

func hemi(cond bool, yes, no byte) byte {
	if cond {
		return yes
	}
	return no
}

// scaled renders value in 1/div units as ASCII.
func scaled(value float64, div float64) []byte {
	return []byte(strconv.Itoa(int(math.Round(value * div))))
}

func scaledOrDashes(value float64, div float64, known bool) []byte {
	if !known {
		return []byte("----")
	}
	return scaled(value, div)
}

// splitMinutes splits decimal minutes into whole minutes and the fractional
// digits at 1/res resolution.
func splitMinutes(minutes float64, res int) (whole, frac int, err error) {
	t := int(math.Round(minutes * float64(res)))
	if t < 0 || t >= 60*res {
		return 0, 0, fmt.Errorf("adf: minutes out of range: %v", minutes)
	}
	return t / res, t % res, nil
}

func padIdent(ident string) ([]byte, error) {
	if len(ident) > 5 {
		return nil, fmt.Errorf("adf: waypoint ident %q longer than 5 characters", ident)
	}
	out := []byte("     ")
	copy(out, ident)
	return out, nil
}

func encodeFlightPlanLeg(r FlightPlanLeg) ([]byte, error) {
	if r.Seq < 0 || r.Seq > 99 {
		return nil, fmt.Errorf("adf: flight plan sequence %d out of range", r.Seq)
	}
	if r.Leg < 0 || r.Leg > fpLegNumMask {
		return nil, fmt.Errorf("adf: leg number %d out of range", r.Leg)
	}

	flags := byte(r.Leg)
	if r.Active {
		flags |= fpActiveLeg
	}
	if r.Last {
		flags |= fpLastLeg
	}
	out := []byte{byte('0' + r.Seq/10), byte('0' + r.Seq%10), flags}
	if !r.HaveWaypoint {
		return out, nil
	}

	ident, err := padIdent(r.Ident)
	if err != nil {
		return nil, err
	}
	out = append(out, ident...)

	if r.LatDegrees < 0 || r.LatDegrees > 90 {
		return nil, fmt.Errorf("adf: latitude degrees %d out of range", r.LatDegrees)
	}
	if r.LonDegrees < 0 || r.LonDegrees > 180 {
		return nil, fmt.Errorf("adf: longitude degrees %d out of range", r.LonDegrees)
	}
	latWhole, latDeci, err := splitMinutes(r.LatMinutes, 10)
	if err != nil {
		return nil, err
	}
	lonWhole, lonDeci, err := splitMinutes(r.LonMinutes, 10)
	if err != nil {
		return nil, err
	}

	latSign := byte(0)
	if r.South {
		latSign = fpSignBit
	}
	lonSign := byte(0)
	if r.West {
		lonSign = fpSignBit
	}
	out = append(out,
		latSign|byte(r.LatDegrees), byte(latWhole), byte(latDeci),
		lonSign, byte(r.LonDegrees), byte(lonWhole), byte(lonDeci),
	)

	mv := int(math.Round(r.MagVarDegrees * 16))
	if mv < math.MinInt16 || mv > math.MaxInt16 {
		return nil, fmt.Errorf("adf: magnetic variation %v out of range", r.MagVarDegrees)
	}
	out = append(out, byte(uint16(mv)>>8), byte(uint16(mv)))
	return out, nil
}
