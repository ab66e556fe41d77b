// Command adfdump decodes an ADF capture (file or stdin) and prints each
// record in human-readable form. With -record it also writes the raw wire
// frames to a timestamped log that adfstream can replay later.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"adf-decoder/internal/adf"
	"adf-decoder/internal/logging"
	"adf-decoder/internal/metrics"
	"adf-decoder/internal/replay"
)

func main() {
	var (
		inPath     string
		recordPath string
		logLevel   string
	)
	flag.StringVar(&inPath, "in", "-", "Capture file to decode, or - for stdin")
	flag.StringVar(&recordPath, "record", "", "Also record raw frames to this log file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (trace..error)")
	flag.Parse()

	logger := logging.New(logLevel, "console", os.Stderr)

	in := os.Stdin
	if inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("open input")
		}
		defer f.Close()
		in = f
	}

	var rec *replay.LogWriter
	if recordPath != "" {
		lw, err := replay.CreateLog(recordPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("create record log")
		}
		rec = lw
	}

	records, errCount, err := dump(in, os.Stdout, rec, logger)

	// Close before any Fatal below: Fatal exits without running defers,
	// and the log writer buffers.
	if rec != nil {
		if cerr := rec.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("close record log")
		}
	}

	logger.Info().Int("records", records).Int("errors", errCount).Msg("done")
	if err != nil {
		logger.Fatal().Err(err).Msg("decode aborted")
	}
}

// dump runs the pipeline by hand rather than through adf.Stream so it can
// see the raw frame bytes for recording. Recoverable errors are logged and
// counted; the first terminal error stops the run.
func dump(in io.Reader, out io.Writer, rec *replay.LogWriter, logger zerolog.Logger) (records, errCount int, err error) {
	rs := adf.NewReassembler(0)
	buf := make([]byte, 4096)
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			if perr := rs.Push(buf[:n]); perr != nil {
				return records, errCount, perr
			}
			for {
				frame, ferr := rs.Next()
				if errors.Is(ferr, adf.ErrIncomplete) {
					break
				}
				if ferr != nil {
					errCount++
					metrics.IncError(ferr)
					logger.Warn().Err(ferr).Msg("framing")
					continue
				}
				if rec != nil {
					if werr := rec.Write(time.Now(), frame); werr != nil {
						return records, errCount, werr
					}
				}
				payload, uerr := adf.Unframe(frame)
				if uerr != nil {
					errCount++
					metrics.IncError(uerr)
					logger.Warn().Err(uerr).Msg("frame rejected")
					continue
				}
				record, derr := adf.Decode(payload)
				if derr != nil {
					errCount++
					metrics.IncError(derr)
					logger.Warn().Err(derr).Msg("record rejected")
					continue
				}
				records++
				metrics.IncRecord(record)
				fmt.Fprintln(out, formatRecord(record))
			}
		}
		if rerr == io.EOF {
			if p := rs.Pending(); p > 0 {
				terr := &adf.TruncatedStreamError{Buffered: p}
				errCount++
				metrics.IncError(terr)
				logger.Warn().Err(terr).Msg("input ended mid-frame")
			}
			return records, errCount, nil
		}
		if rerr != nil {
			return records, errCount, rerr
		}
	}
}

func formatRecord(rec adf.Record) string {
	switch r := rec.(type) {
	case adf.GPSAltitude:
		if !r.Known {
			return "gps altitude: unavailable"
		}
		return fmt.Sprintf("gps altitude: %d ft", r.Feet)
	case adf.Latitude:
		if !r.Known {
			return "latitude: unavailable"
		}
		return fmt.Sprintf("latitude: %.6f", r.DecimalDegrees())
	case adf.Longitude:
		if !r.Known {
			return "longitude: unavailable"
		}
		return fmt.Sprintf("longitude: %.6f", r.DecimalDegrees())
	case adf.Track:
		if !r.Known {
			return "track: unavailable"
		}
		return fmt.Sprintf("track: %.1f deg", r.Degrees)
	case adf.GroundSpeed:
		if !r.Known {
			return "ground speed: unavailable"
		}
		return fmt.Sprintf("ground speed: %d kt", r.Knots)
	case adf.DistanceToWaypoint:
		if !r.Known {
			return "distance to waypoint: unavailable"
		}
		return fmt.Sprintf("distance to waypoint: %.1f nm", r.NauticalMiles)
	case adf.CrossTrackError:
		if !r.Known {
			return "cross track error: unavailable"
		}
		side := "L"
		if r.Right {
			side = "R"
		}
		return fmt.Sprintf("cross track error: %.2f nm %s", r.NauticalMiles, side)
	case adf.DesiredTrack:
		if !r.Known {
			return "desired track: unavailable"
		}
		return fmt.Sprintf("desired track: %.1f deg", r.Degrees)
	case adf.ActiveWaypoint:
		return fmt.Sprintf("active waypoint: %s", r.Ident)
	case adf.BearingToWaypoint:
		if !r.Known {
			return "bearing to waypoint: unavailable"
		}
		return fmt.Sprintf("bearing to waypoint: %.1f deg", r.Degrees)
	case adf.MagneticVariation:
		if !r.Known {
			return "magnetic variation: unavailable"
		}
		hemi := "W"
		if r.East {
			hemi = "E"
		}
		return fmt.Sprintf("magnetic variation: %.1f deg %s", r.Degrees, hemi)
	case adf.NavStatus:
		if r.NavValid {
			return "nav status: valid"
		}
		return "nav status: flagged"
	case adf.WarningStatus:
		return fmt.Sprintf("warnings: %s", r.Flags)
	case adf.DistanceToDestination:
		if !r.Known {
			return "distance to destination: unavailable"
		}
		return fmt.Sprintf("distance to destination: %.1f nm", r.NauticalMiles)
	case adf.FlightPlanLeg:
		state := ""
		if r.Active {
			state += " active"
		}
		if r.Last {
			state += " last"
		}
		if !r.HaveWaypoint {
			return fmt.Sprintf("flight plan leg %d/%d:%s (no waypoint)", r.Seq, r.Leg, state)
		}
		return fmt.Sprintf("flight plan leg %d/%d:%s %s %.6f %.6f magvar %.2f",
			r.Seq, r.Leg, state, r.Ident, r.LatDecimalDegrees(), r.LonDecimalDegrees(), r.MagVarDegrees)
	}
	return fmt.Sprintf("%v", rec)
}
