// Command adfgen synthesizes an ADF capture from a deterministic flight,
// for exercising decoders without hardware. Output is raw wire frames,
// suitable for adfdump and for adfstream's capture mode.
package main

import (
	"flag"
	"io"
	"os"
	"time"

	"adf-decoder/internal/adf"
	"adf-decoder/internal/config"
	"adf-decoder/internal/logging"
	"adf-decoder/internal/sim"
)

func main() {
	var (
		configPath string
		outPath    string
		bursts     int
		interval   time.Duration
	)
	flag.StringVar(&configPath, "config", "", "Optional YAML config for the sim section")
	flag.StringVar(&outPath, "out", "-", "Output file, or - for stdout")
	flag.IntVar(&bursts, "bursts", 60, "Number of transmission cycles to generate")
	flag.DurationVar(&interval, "interval", time.Second, "Simulated time between cycles")
	flag.Parse()

	logger := logging.New("info", "console", os.Stderr)

	flight := sim.Flight{
		CenterLatDeg: 45.5,
		CenterLonDeg: -122.5,
		AltFeet:      3000,
		GroundKt:     90,
		RadiusNm:     0.5,
		Period:       120 * time.Second,
		Waypoint:     "KPDX",
	}
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("config load failed")
		}
		flight = sim.Flight{
			CenterLatDeg: cfg.Sim.CenterLatDeg,
			CenterLonDeg: cfg.Sim.CenterLonDeg,
			AltFeet:      cfg.Sim.AltFeet,
			GroundKt:     cfg.Sim.GroundKt,
			RadiusNm:     cfg.Sim.RadiusNm,
			Period:       cfg.Sim.Period,
			Waypoint:     cfg.Sim.Waypoint,
		}
	}

	out := io.Writer(os.Stdout)
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("create output")
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Fatal().Err(err).Msg("close output")
			}
		}()
		out = f
	}

	frames, err := generate(out, flight, bursts, interval)
	if err != nil {
		logger.Fatal().Err(err).Msg("generate failed")
	}
	logger.Info().Int("bursts", bursts).Int("frames", frames).Msg("capture written")
}

// generate walks simulated time in fixed steps so the capture is
// reproducible regardless of when it is run.
func generate(out io.Writer, flight sim.Flight, bursts int, interval time.Duration) (int, error) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	frames := 0
	for i := 0; i < bursts; i++ {
		now := start.Add(time.Duration(i) * interval)
		for _, rec := range flight.Burst(now) {
			frame, err := adf.Encode(rec)
			if err != nil {
				return frames, err
			}
			if _, err := out.Write(frame); err != nil {
				return frames, err
			}
			frames++
		}
	}
	return frames, nil
}
