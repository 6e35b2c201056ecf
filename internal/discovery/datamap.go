package discovery

import (
	"encoding/binary"

	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/layout"
)

// dataMapScanLength bounds the independent full-module scan used for the
// DataMap sentinel pair, which (unlike JudgeData/PlaySettings/PlayData/
// CurrentSong) has no reliable displacement relationship to SongList.
const dataMapScanLength = 0x6000000

// discoverDataMap scans the module for the sentinel pair (0x7FFFF, 0) that
// anchors the head of the DataMap structure (§4.4.1 step 6).
func discoverDataMap(reader MemoryReader) (Candidate, bool) {
	pattern := make([]byte, layout.ScoreTableHeader)
	binary.LittleEndian.PutUint32(pattern[0:4], layout.DataMapSentinelHi)
	binary.LittleEndian.PutUint32(pattern[4:8], layout.DataMapSentinelLo)

	base := reader.ModuleBase()
	matches := scanForPattern(reader, base, dataMapScanLength, pattern)

	var best Candidate
	found := false

	for _, addr := range matches {
		buf, err := reader.Read(addr, layout.ScoreTableHeader)
		if err != nil {
			continue
		}
		if err := codec.DecodeDataMapHeader(buf); err != nil {
			continue
		}

		cand := Candidate{Anchor: AnchorDataMap, Address: addr, Score: 1.0}
		if !found {
			best, found = cand, true
		}
	}

	return best, found
}
