package adf

import "bytes"

// DefaultMaxBuffer is the pending-input cap used when a Reassembler or
// Stream is built with no explicit limit. Real ADF frames are tens of
// bytes; anything approaching this is garbage or an attack.
const DefaultMaxBuffer = 64 * 1024

// Reassembler buffers an incoming byte stream of arbitrary chunking and
// locates frame boundaries. It owns its buffer exclusively; independent
// instances share nothing.
//
// Bytes are only ever dropped when a completed frame is consumed, when
// noise outside any frame is skipped, or when a partial frame is abandoned
// during resynchronization (reported as a FramingError).
type Reassembler struct {
	limit int
	buf   []byte
	// offset is the absolute stream position of buf[0].
	offset     int64
	overflowed bool
}

// NewReassembler builds a Reassembler that fails with BufferOverflowError
// once more than maxBuffer bytes are pending without a frame boundary.
// maxBuffer <= 0 selects DefaultMaxBuffer.
func NewReassembler(maxBuffer int) *Reassembler {
	if maxBuffer <= 0 {
		maxBuffer = DefaultMaxBuffer
	}
	return &Reassembler{limit: maxBuffer}
}

// Push appends a chunk of raw input. Once the pending buffer would exceed
// the limit, Push fails and the Reassembler stays failed: the oversized
// pseudo-frame cannot be completed, so no further progress is possible.
func (r *Reassembler) Push(p []byte) error {
	if r.overflowed {
		return &BufferOverflowError{Limit: r.limit}
	}
	if len(r.buf)+len(p) > r.limit {
		r.overflowed = true
		return &BufferOverflowError{Limit: r.limit}
	}
	r.buf = append(r.buf, p...)
	return nil
}

// Next extracts the next complete frame (start marker through end marker,
// still stuffed) and consumes its bytes.
//
// It returns ErrIncomplete when more input is needed, and a FramingError
// when a second start marker shows up before the expected end marker; the
// abandoned partial frame is discarded and the next call resumes from the
// embedded marker. Bytes before any start marker are inter-frame noise and
// are skipped silently, matching the navigator's behavior of emitting
// frames back to back with nothing in between.
func (r *Reassembler) Next() ([]byte, error) {
	start := bytes.IndexByte(r.buf, markerSTX)
	if start < 0 {
		r.discard(len(r.buf))
		return nil, ErrIncomplete
	}
	if start > 0 {
		r.discard(start)
	}

	for i := 1; i < len(r.buf); i++ {
		switch r.buf[i] {
		case markerETX:
			frame := make([]byte, i+1)
			copy(frame, r.buf[:i+1])
			r.discard(i + 1)
			return frame, nil
		case markerSTX:
			err := &FramingError{Offset: r.offset, Discarded: i}
			r.discard(i)
			return nil, err
		}
	}
	return nil, ErrIncomplete
}

// Pending reports how many bytes of a partial frame are buffered. After
// Next has returned ErrIncomplete, a non-zero value means the input ended
// (or will end) mid-frame.
func (r *Reassembler) Pending() int {
	return len(r.buf)
}

func (r *Reassembler) discard(n int) {
	r.buf = r.buf[n:]
	r.offset += int64(n)
	// Reclaim the consumed prefix once it dominates the allocation, so a
	// long-lived Reassembler does not pin every chunk it ever saw.
	if cap(r.buf) >= 1024 && len(r.buf)*4 < cap(r.buf) {
		r.buf = append(make([]byte, 0, len(r.buf)), r.buf...)
	}
}
