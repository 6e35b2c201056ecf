package discovery

import (
	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/layout"
)

// discoverPlayData searches the window around PlaySettings + 0x2A0,
// promoting the candidate the PlayData codec validates (§4.4.1 step 4).
// An all-zero record is rejected here — at the PlaySettings cross-validation
// step a zero PlayData was tolerated as "no play yet", but promoting the
// anchor itself requires the stronger evidence of an actual decoded record.
func discoverPlayData(reader MemoryReader, playSettings uintptr, displacements layout.DisplacementTable) (Candidate, bool) {
	d, ok := displacements.Lookup(layout.AnchorSettings, layout.AnchorPlayData)
	if !ok {
		return Candidate{}, false
	}

	validate := func(reader MemoryReader, address uintptr, window []byte, offset int) (float64, error) {
		region := window[offset : offset+layout.PlayDataSize]
		if _, err := codec.DecodePlayData(region); err != nil {
			return 0, err
		}
		return 1.0, nil
	}

	return searchDisplacement(reader, playSettings, d, layout.PlayDataSize, validate)
}
