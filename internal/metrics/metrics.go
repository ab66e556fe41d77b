// Package metrics exposes Prometheus counters for the decode and replay
// pipelines, plus an optional HTTP listener for scraping.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adf-decoder/internal/adf"
)

var (
	RecordsDecoded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adf_records_decoded_total",
		Help: "Successfully decoded records by message type.",
	}, []string{"type"})
	DecodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adf_decode_errors_total",
		Help: "Decode failures by error kind.",
	}, []string{"kind"})
	FramesReplayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adf_frames_replayed_total",
		Help: "Frames re-emitted by the playback tool.",
	})
	BytesReplayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adf_bytes_replayed_total",
		Help: "Bytes re-emitted by the playback tool.",
	})
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "adf_build_info",
		Help: "Build metadata (value is always 1).",
	}, []string{"version"})
)

// IncRecord counts one decoded record under its message type label.
func IncRecord(rec adf.Record) {
	RecordsDecoded.WithLabelValues(rec.Type().String()).Inc()
}

// IncError counts one decode failure under a stable kind label.
func IncError(err error) {
	DecodeErrors.WithLabelValues(errorKind(err)).Inc()
}

func errorKind(err error) string {
	var (
		overflow  *adf.BufferOverflowError
		framing   *adf.FramingError
		escape    *adf.MalformedEscapeError
		length    *adf.LengthMismatchError
		crc       *adf.ChecksumMismatchError
		unknown   *adf.UnknownMessageTypeError
		short     *adf.PayloadTooShortError
		truncated *adf.TruncatedStreamError
	)
	switch {
	case errors.As(err, &overflow):
		return "buffer_overflow"
	case errors.As(err, &framing):
		return "framing"
	case errors.As(err, &escape):
		return "malformed_escape"
	case errors.As(err, &length):
		return "length_mismatch"
	case errors.As(err, &crc):
		return "checksum_mismatch"
	case errors.As(err, &unknown):
		return "unknown_type"
	case errors.As(err, &short):
		return "payload_too_short"
	case errors.As(err, &truncated):
		return "truncated_stream"
	default:
		return "io"
	}
}

// Serve exposes /metrics on addr. It blocks, so callers run it in a
// goroutine; errors other than server shutdown are returned.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
