package discovery

import (
	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/layout"
)

// discoverCurrentSong searches the window around JudgeData + 0x1E4,
// promoting the candidate the CurrentSong codec validates — all-zero and
// power-of-two song_id are both rejected by the codec itself (§4.4.1
// step 5).
func discoverCurrentSong(reader MemoryReader, judgeData uintptr, displacements layout.DisplacementTable) (Candidate, bool) {
	d, ok := displacements.Lookup(layout.AnchorJudgeData, layout.AnchorCurrentSong)
	if !ok {
		return Candidate{}, false
	}

	validate := func(reader MemoryReader, address uintptr, window []byte, offset int) (float64, error) {
		region := window[offset : offset+layout.CurrentSongSize]
		if _, err := codec.DecodeCurrentSong(region); err != nil {
			return 0, err
		}
		return 1.0, nil
	}

	return searchDisplacement(reader, judgeData, d, layout.CurrentSongSize, validate)
}
