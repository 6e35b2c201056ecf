package discovery

import (
	"encoding/binary"

	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/layout"
)

// unlockScanLength bounds the independent full-module scan for the
// UnlockData header tuple.
const unlockScanLength = 0x6000000

// discoverUnlockData scans the module for the tuple (1000, 1, 462) that
// anchors the head of the UnlockData structure (§4.4.1 step 6). UnlockData
// is used only as a discovery anchor; the tracker never reads it again
// once discovery completes.
func discoverUnlockData(reader MemoryReader) (Candidate, bool) {
	pattern := make([]byte, layout.UnlockBitfieldOffset)
	binary.LittleEndian.PutUint32(pattern[0:4], layout.UnlockHeaderTotalSongs)
	binary.LittleEndian.PutUint32(pattern[4:8], layout.UnlockHeaderVersion)
	binary.LittleEndian.PutUint32(pattern[8:12], layout.UnlockHeaderEntryCount)

	base := reader.ModuleBase()
	matches := scanForPattern(reader, base, unlockScanLength, pattern)

	var best Candidate
	found := false

	for _, addr := range matches {
		buf, err := reader.Read(addr, layout.UnlockBitfieldOffset)
		if err != nil {
			continue
		}
		if _, err := codec.DecodeUnlockHeader(buf); err != nil {
			continue
		}

		cand := Candidate{Anchor: AnchorUnlockData, Address: addr, Score: 1.0}
		if !found {
			best, found = cand, true
		}
	}

	return best, found
}
