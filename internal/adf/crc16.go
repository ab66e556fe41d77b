package adf

// Frame integrity uses a table-driven CRC-16, polynomial 0x1021, init 0
// (CRC-16/XMODEM). The trailer is appended little-endian after the payload.

var crcTable [256]uint16

func init() {
	for i := range crcTable {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
		crcTable[i] = crc
	}
}

func checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc = crcTable[crc>>8] ^ crc<<8 ^ uint16(b)
	}
	return crc
}
