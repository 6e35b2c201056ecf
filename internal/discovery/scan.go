package discovery

import "bytes"

// scanChunkSize bounds how much memory is read from the target process in
// a single call while scanning a wide range. Reading the whole module in
// one shot would ask the OS for tens of megabytes in a single
// ReadProcessMemory call; chunking keeps each read small and lets a
// partially-unmapped region fail without losing the rest of the scan.
const scanChunkSize = 1 << 20 // 1 MiB

// scanForPattern scans [start, start+length) in reader for pattern,
// reading in overlapping chunks so a match straddling a chunk boundary is
// never missed. It returns every matching absolute address, in ascending
// order. A read failure on one chunk is skipped rather than aborting the
// whole scan — unmapped gaps are expected in a large address range.
func scanForPattern(reader MemoryReader, start uintptr, length int, pattern []byte) []uintptr {
	var matches []uintptr
	if len(pattern) == 0 || length <= 0 {
		return matches
	}

	overlap := len(pattern) - 1
	offset := 0

	for offset < length {
		chunkLen := scanChunkSize
		if remaining := length - offset; remaining < chunkLen {
			chunkLen = remaining
		}

		readLen := chunkLen
		if offset+chunkLen < length {
			readLen += overlap
		}

		buf, err := reader.Read(start+uintptr(offset), readLen)
		if err != nil {
			offset += chunkLen
			continue
		}

		searchEnd := len(buf)
		pos := 0
		for {
			idx := bytes.Index(buf[pos:searchEnd], pattern)
			if idx < 0 {
				break
			}
			matches = append(matches, start+uintptr(offset+pos+idx))
			pos += idx + 1
		}

		offset += chunkLen
	}

	return matches
}
