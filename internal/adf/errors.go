package adf

import (
	"errors"
	"fmt"
)

// ErrIncomplete is returned by Reassembler.Next when the buffered input does
// not yet contain a complete frame. It is a request for more input, not a
// decode failure.
var ErrIncomplete = errors.New("adf: incomplete frame")

// BufferOverflowError reports that pending unframed input exceeded the
// reassembly buffer limit. It is terminal for the Reassembler (and any
// Stream above it); a fresh instance must be built to retry.
type BufferOverflowError struct {
	Limit int
}

func (e *BufferOverflowError) Error() string {
	return fmt.Sprintf("adf: pending input exceeds %d byte buffer limit", e.Limit)
}

// FramingError reports a start marker encountered before the previous
// frame's end marker. The abandoned partial frame is discarded and decoding
// resumes at the new start marker.
type FramingError struct {
	// Offset is the absolute stream offset of the abandoned start marker.
	Offset int64
	// Discarded is the number of bytes dropped while resynchronizing.
	Discarded int
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("adf: start marker inside frame at offset %d, %d bytes discarded", e.Offset, e.Discarded)
}

// MalformedEscapeError reports a dangling escape byte at the end of a frame
// body, with no byte left to unstuff.
type MalformedEscapeError struct {
	// Offset is the position of the escape byte within the frame.
	Offset int
}

func (e *MalformedEscapeError) Error() string {
	return fmt.Sprintf("adf: dangling escape byte at frame offset %d", e.Offset)
}

// LengthMismatchError reports a frame whose declared payload length
// disagrees with the actual unstuffed body size. Declared is -1 when the
// body is too short to carry the fixed header and CRC trailer at all.
type LengthMismatchError struct {
	Declared int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	if e.Declared < 0 {
		return fmt.Sprintf("adf: frame body too short: %d bytes", e.Actual)
	}
	return fmt.Sprintf("adf: declared payload length %d, got %d", e.Declared, e.Actual)
}

// ChecksumMismatchError reports a frame whose CRC trailer does not match the
// CRC computed over the unstuffed body.
type ChecksumMismatchError struct {
	// Expected is the CRC carried in the frame trailer.
	Expected uint16
	// Computed is the CRC computed over the received body.
	Computed uint16
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("adf: checksum mismatch: frame 0x%04X, computed 0x%04X", e.Expected, e.Computed)
}

// UnknownMessageTypeError reports a verified payload whose type identifier
// is not in the recognized sentence set.
type UnknownMessageTypeError struct {
	Type byte
}

func (e *UnknownMessageTypeError) Error() string {
	return fmt.Sprintf("adf: unknown message type 0x%02X", e.Type)
}

// PayloadTooShortError reports a payload shorter than its message type's
// field layout requires.
type PayloadTooShortError struct {
	Type MessageType
	Need int
	Got  int
}

func (e *PayloadTooShortError) Error() string {
	return fmt.Sprintf("adf: %s payload too short: need %d bytes, got %d", e.Type, e.Need, e.Got)
}

// TruncatedStreamError reports end of input with a partial frame still
// buffered. Terminal: the source has no more bytes to complete the frame.
type TruncatedStreamError struct {
	// Buffered is the size of the pending partial frame.
	Buffered int
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("adf: stream truncated mid-frame, %d bytes buffered", e.Buffered)
}

// Recoverable reports whether err is a per-frame or per-record decode error
// that a Stream resynchronizes past, as opposed to a terminal condition
// (BufferOverflowError, TruncatedStreamError, source I/O errors).
func Recoverable(err error) bool {
	switch err.(type) {
	case *FramingError, *MalformedEscapeError, *LengthMismatchError,
		*ChecksumMismatchError, *UnknownMessageTypeError, *PayloadTooShortError:
		return true
	}
	return false
}
