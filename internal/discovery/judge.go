package discovery

import (
	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/layout"
)

// judgeStateMarkerMax bounds what counts as a "plausible" state_marker
// byte on an idle JudgeData candidate. The marker is observed to take only
// a handful of small values across builds; an arbitrary large byte is more
// likely uninitialized memory than a real idle region.
const judgeStateMarkerMax = 8

// discoverJudgeData searches the window around SongList − 0x94E3C8 for a
// 72-byte all-zero region with a plausible trailing state_marker, cross
// validating each candidate by requiring its implied CurrentSong
// (candidate + 0x1E4) to decode cleanly (§4.4.1 step 2).
func discoverJudgeData(reader MemoryReader, songList uintptr, displacements layout.DisplacementTable) (Candidate, bool) {
	d, ok := displacements.Lookup(layout.AnchorSongList, layout.AnchorJudgeData)
	if !ok {
		return Candidate{}, false
	}

	currentSongDisplacement, _ := displacements.Lookup(layout.AnchorJudgeData, layout.AnchorCurrentSong)

	validate := func(reader MemoryReader, address uintptr, window []byte, offset int) (float64, error) {
		region := window[offset : offset+layout.JudgeDataSize]
		judge, err := codec.DecodeJudgeData(region)
		if err != nil {
			return 0, err
		}
		if !judge.IsIdle() {
			return 0, errNotIdle
		}
		for _, c := range region[:layout.JudgeDataSize-1] {
			if c != 0 {
				return 0, errNotIdle
			}
		}
		if judge.StateMarker > judgeStateMarkerMax {
			return 0, errImplausibleMarker
		}

		impliedAddr := int64(address) + currentSongDisplacement.Offset
		buf, rerr := reader.Read(uintptr(impliedAddr), layout.CurrentSongSize)
		if rerr != nil {
			return 0, rerr
		}
		if _, derr := codec.DecodeCurrentSong(buf); derr != nil {
			return 0, derr
		}

		return 1.0, nil
	}

	return searchDisplacement(reader, songList, d, layout.JudgeDataSize, validate)
}
