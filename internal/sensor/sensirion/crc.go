package sensirion

const (
	crc8Polynomial = 0x31
	crc8Init       = 0xFF
)

// crc8 computes the Sensirion checksum over data.
func crc8(data []byte) byte {
	crc := byte(crc8Init)
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ crc8Polynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
