package discovery

import (
	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/layout"
	trackerErrors "github.com/yasora/reflux/pkg/errors"
)

// discoverPlaySettings searches the window around JudgeData − 0x2ACFA8,
// cross-validating each candidate by requiring its implied PlayData
// (candidate + 0x2A0) to decode with a plausible song_id (§4.4.1 step 3).
func discoverPlaySettings(reader MemoryReader, judgeData uintptr, displacements layout.DisplacementTable) (Candidate, bool) {
	d, ok := displacements.Lookup(layout.AnchorJudgeData, layout.AnchorSettings)
	if !ok {
		return Candidate{}, false
	}

	playDataDisplacement, _ := displacements.Lookup(layout.AnchorSettings, layout.AnchorPlayData)

	validate := func(reader MemoryReader, address uintptr, window []byte, offset int) (float64, error) {
		region := window[offset : offset+layout.SettingsSize]
		if _, err := codec.DecodeSettings(region); err != nil {
			return 0, err
		}

		impliedAddr := int64(address) + playDataDisplacement.Offset
		buf, rerr := reader.Read(uintptr(impliedAddr), layout.PlayDataSize)
		if rerr != nil {
			return 0, rerr
		}
		if _, derr := codec.DecodePlayData(buf); derr != nil {
			// An all-zero PlayData is expected when no chart has finished
			// yet since discovery started; it still proves the address is
			// readable and structurally sized right, so it isn't fatal to
			// this candidate the way a range-violation decode error would be.
			if trackerErrors.GetErrorCode(derr) != trackerErrors.ErrorCodeStructureAllZero {
				return 0, derr
			}
		}

		return 1.0, nil
	}

	return searchDisplacement(reader, judgeData, d, layout.SettingsSize, validate)
}
