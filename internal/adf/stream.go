package adf

import (
	"errors"
	"io"
)

// StreamConfig tunes a Stream. The zero value selects defaults.
type StreamConfig struct {
	// MaxBuffer caps pending unframed input; DefaultMaxBuffer if <= 0.
	MaxBuffer int
	// ReadSize is the source read granularity; 4096 if <= 0.
	ReadSize int
}

// Stream is the pull-based decoder over a byte source: each Next call
// yields the next record, a recoverable per-frame decode error, or a
// terminal condition. It owns its Reassembler exclusively and is not
// restartable; build a fresh Stream to decode a source from the start.
type Stream struct {
	src io.Reader
	rs  *Reassembler

	chunk []byte
	eof   bool
	// terminal is sticky: once set every Next returns it.
	terminal error
}

// NewStream builds a Stream over src with default limits.
func NewStream(src io.Reader) *Stream {
	return NewStreamWith(src, StreamConfig{})
}

// NewStreamWith builds a Stream over src with explicit limits.
func NewStreamWith(src io.Reader, cfg StreamConfig) *Stream {
	readSize := cfg.ReadSize
	if readSize <= 0 {
		readSize = 4096
	}
	return &Stream{
		src:   src,
		rs:    NewReassembler(cfg.MaxBuffer),
		chunk: make([]byte, readSize),
	}
}

// Next returns the next decoded record in source order.
//
// A non-nil error is either recoverable (see Recoverable) — the stream has
// already resynchronized and the following Next makes progress — or
// terminal: io.EOF on clean end of input, TruncatedStreamError when input
// ends mid-frame, BufferOverflowError past the buffer cap, or a source read
// error. Terminal errors repeat on every subsequent call. Exactly one error
// surfaces per malformed frame or record; none are swallowed.
func (s *Stream) Next() (Record, error) {
	if s.terminal != nil {
		return nil, s.terminal
	}
	for {
		frame, err := s.rs.Next()
		switch {
		case err == nil:
			payload, err := Unframe(frame)
			if err != nil {
				return nil, err
			}
			rec, err := Decode(payload)
			if err != nil {
				return nil, err
			}
			return rec, nil

		case errors.Is(err, ErrIncomplete):
			if s.eof {
				if pending := s.rs.Pending(); pending > 0 {
					s.terminal = &TruncatedStreamError{Buffered: pending}
				} else {
					s.terminal = io.EOF
				}
				return nil, s.terminal
			}
			if err := s.fill(); err != nil {
				return nil, err
			}

		default:
			// Framing desync: already resynchronized, report once.
			return nil, err
		}
	}
}

// fill reads one chunk from the source into the Reassembler. A short or
// zero-byte read is fine; Next loops until a frame boundary or EOF.
func (s *Stream) fill() error {
	n, err := s.src.Read(s.chunk)
	if n > 0 {
		if perr := s.rs.Push(s.chunk[:n]); perr != nil {
			s.terminal = perr
			return perr
		}
	}
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		s.eof = true
	default:
		s.terminal = err
		return err
	}
	return nil
}
