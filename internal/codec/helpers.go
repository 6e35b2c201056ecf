package codec

import "encoding/binary"

func readU32(b []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(b[offset : offset+4])
}

func writeU32(b []byte, offset int, v uint32) {
	binary.LittleEndian.PutUint32(b[offset:offset+4], v)
}

func readI32(b []byte, offset int) int32 {
	return int32(readU32(b, offset))
}

func writeI32(b []byte, offset int, v int32) {
	writeU32(b, offset, uint32(v))
}

func readU16(b []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(b[offset : offset+2])
}

func writeU16(b []byte, offset int, v uint16) {
	binary.LittleEndian.PutUint16(b[offset:offset+2], v)
}

func readU8(b []byte, offset int) uint8 {
	return b[offset]
}

func writeU8(b []byte, offset int, v uint8) {
	b[offset] = v
}

func isAllZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// isPowerOfTwo reports whether v is a power of two. Zero is not considered
// a power of two by this check.
func isPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}
