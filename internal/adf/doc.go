package adf

// Package adf decodes the Aviation Data Format, the serial output protocol
// of Garmin 400/500-series GPS navigators (per Appendix D of the 500W
// Series Installation Manual).
//
// On the wire each message is one frame:
//
//	STX(0x02)  body  ETX(0x03)
//
// where body is the byte-stuffed form of
//
//	type(1) | length(1) | payload(length) | crc16(2, little-endian)
//
// Stuffing replaces any STX, ETX or DLE(0x10) byte in the unstuffed body
// with DLE followed by the byte XOR 0x20, so the delimiters never appear
// inside a frame. The CRC is a table-driven CRC-16 (poly 0x1021, init 0)
// over type|length|payload.
//
// The type byte is the Appendix D sentence identifier ('z', 'A' ... 'l' for
// Type 1 navigation sentences, 'w' for Type 2 flight plan legs); the payload
// is the sentence body after the identifier. Decoded records come out as a
// closed set of Record implementations.
//
// Pull-based decoding over an io.Reader is provided by Stream; push-based
// callers can drive a Reassembler directly and hand extracted frames to
// Unframe and Decode.
