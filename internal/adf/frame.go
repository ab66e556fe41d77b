package adf

const (
	markerSTX = 0x02 // frame start
	markerETX = 0x03 // frame end
	escDLE    = 0x10 // escape introducer
	escXor    = 0x20 // applied to the stuffed byte
)

// frameOverhead is type + length + CRC trailer, before stuffing.
const frameOverhead = 4

// MaxPayload is the largest payload a frame's one-byte length field can
// declare.
const MaxPayload = 255

// Payload is the unstuffed, checksum-verified body of a frame: the message
// type identifier and the sentence bytes after it.
type Payload struct {
	Type MessageType
	Data []byte
}

func needsEscape(b byte) bool {
	return b == markerSTX || b == markerETX || b == escDLE
}

// AppendFrame appends a complete wire frame carrying payload under typ:
// CRC'd, stuffed and STX/ETX delimited. Payloads longer than MaxPayload are
// truncated by the length byte, so callers validate first (Encode does).
func AppendFrame(dst []byte, typ MessageType, payload []byte) []byte {
	body := make([]byte, 0, len(payload)+frameOverhead)
	body = append(body, byte(typ), byte(len(payload)))
	body = append(body, payload...)
	crc := checksum(body)
	body = append(body, byte(crc), byte(crc>>8))

	dst = append(dst, markerSTX)
	for _, b := range body {
		if needsEscape(b) {
			dst = append(dst, escDLE, b^escXor)
			continue
		}
		dst = append(dst, b)
	}
	return append(dst, markerETX)
}

// FrameBytes is AppendFrame into a fresh slice.
func FrameBytes(typ MessageType, payload []byte) []byte {
	return AppendFrame(nil, typ, payload)
}

// Unframe validates a marker-delimited frame: it unstuffs the body, checks
// the declared length against the actual payload size, and verifies the CRC
// trailer. Pure: frame is not modified and no state is kept.
//
// Frames handed over by a Reassembler always carry both markers; the check
// here guards direct callers.
func Unframe(frame []byte) (Payload, error) {
	if len(frame) < 2 || frame[0] != markerSTX || frame[len(frame)-1] != markerETX {
		return Payload{}, &FramingError{Discarded: len(frame)}
	}

	body := make([]byte, 0, len(frame)-2)
	for i := 1; i < len(frame)-1; i++ {
		b := frame[i]
		if b == escDLE {
			i++
			if i >= len(frame)-1 {
				return Payload{}, &MalformedEscapeError{Offset: i - 1}
			}
			body = append(body, frame[i]^escXor)
			continue
		}
		body = append(body, b)
	}

	if len(body) < frameOverhead {
		return Payload{}, &LengthMismatchError{Declared: -1, Actual: len(body)}
	}
	declared := int(body[1])
	actual := len(body) - frameOverhead
	if declared != actual {
		return Payload{}, &LengthMismatchError{Declared: declared, Actual: actual}
	}

	trailer := uint16(body[len(body)-2]) | uint16(body[len(body)-1])<<8
	computed := checksum(body[:len(body)-2])
	if trailer != computed {
		return Payload{}, &ChecksumMismatchError{Expected: trailer, Computed: computed}
	}

	return Payload{Type: MessageType(body[0]), Data: body[2 : len(body)-2]}, nil
}
