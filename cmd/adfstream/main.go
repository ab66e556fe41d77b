// Command adfstream replays recorded ADF traffic to a UDP destination or
// stdout, the way the navigator would emit it: raw captures with a fixed
// inter-frame delay, or frame logs with their recorded timing.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"adf-decoder/internal/config"
	"adf-decoder/internal/logging"
	"adf-decoder/internal/metrics"
	"adf-decoder/internal/replay"
	"adf-decoder/internal/udp"
)

var version = "dev"

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./adfstream.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		bootLogger := logging.New("info", "console", os.Stderr)
		bootLogger.Fatal().Err(err).Msg("config load failed")
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	metrics.BuildInfo.WithLabelValues(version).Set(1)
	if cfg.Metrics.Listen != "" {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Listen); err != nil {
				logger.Error().Err(err).Msg("metrics listener stopped")
				cancel()
			}
		}()
		logger.Info().Str("listen", cfg.Metrics.Listen).Msg("metrics exposed")
	}

	emit, closeSink, err := openSink(cfg.Output.Dest)
	if err != nil {
		logger.Fatal().Err(err).Msg("output init failed")
	}
	defer closeSink()

	send := func(frame []byte) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := emit(frame); err != nil {
			return err
		}
		metrics.FramesReplayed.Inc()
		metrics.BytesReplayed.Add(float64(len(frame)))
		return nil
	}

	logger.Info().
		Str("input", cfg.Input.Path).
		Str("mode", cfg.Input.Mode).
		Bool("loop", cfg.Input.Loop).
		Msg("adfstream starting")

	go func() {
		defer cancel()
		err := play(cfg, logger, send)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("playback stopped")
			return
		}
		logger.Info().Msg("playback finished")
	}()

	<-ctx.Done()
	logger.Info().Msg("adfstream stopping")
}

func play(cfg config.Config, logger zerolog.Logger, send func([]byte) error) error {
	f, err := os.Open(cfg.Input.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	if cfg.Input.Mode == "log" {
		entries, err := replay.NewLogReader(f).ReadAll()
		if err != nil {
			return err
		}
		return replay.PlayLog(entries, cfg.Input.Speed, cfg.Input.Loop, nil, send)
	}

	frames, dropped, err := replay.LoadCapture(f)
	if err != nil {
		return err
	}
	if dropped > 0 {
		logger.Warn().Int("dropped", dropped).Msg("capture had malformed frames")
	}
	return replay.PlayEvery(frames, cfg.Input.Delay, cfg.Input.Loop, nil, send)
}

// openSink returns a frame emitter for the configured destination: one UDP
// datagram per frame, or raw bytes on stdout when no destination is set.
func openSink(dest string) (emit func([]byte) error, shutdown func(), err error) {
	if dest == "" {
		w := io.Writer(os.Stdout)
		return func(frame []byte) error {
			_, err := w.Write(frame)
			return err
		}, func() {}, nil
	}
	sink, err := udp.NewSink(dest)
	if err != nil {
		return nil, nil, err
	}
	return sink.Send, func() { _ = sink.Close() }, nil
}
