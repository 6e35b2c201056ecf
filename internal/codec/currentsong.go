package codec

import (
	"github.com/yasora/reflux/internal/layout"
	"github.com/yasora/reflux/pkg/errors"
)

// DecodeCurrentSong decodes the CurrentSong structure, populated when a
// chart is selected. Zero-memory regions are rejected, and an
// exactly-power-of-two song_id is rejected even though it may fall inside
// the valid range — both are discovery cross-validation requirements
// (§4.4.1 step 2, §8).
func DecodeCurrentSong(b []byte) (CurrentSong, error) {
	if len(b) < layout.CurrentSongSize {
		return CurrentSong{}, errors.NewStructureError(nil, errors.ErrorCodeStructureSentinelMismatch, "buffer shorter than CurrentSongSize").
			WithStructure("CurrentSong").
			WithReason("short_buffer")
	}

	if isAllZero(b) {
		return CurrentSong{}, errors.NewAllZeroError("CurrentSong")
	}

	songID := readU32(b, fieldOffset(layout.CurrentSongFields, "song_id"))
	if songID != 0 {
		if songID < layout.SongIDMin || songID > layout.SongIDMax {
			return CurrentSong{}, errors.NewRangeViolationError("CurrentSong", "song_id", songID)
		}
		if isPowerOfTwo(songID) {
			return CurrentSong{}, errors.NewInconsistentFieldsError("CurrentSong", "song_id_power_of_two")
		}
	}

	return CurrentSong{
		SongID:     songID,
		Difficulty: Difficulty(readU8(b, fieldOffset(layout.CurrentSongFields, "difficulty"))),
		PlayStyle:  PlayStyle(readU8(b, fieldOffset(layout.CurrentSongFields, "play_style"))),
	}, nil
}

// EncodeCurrentSong is the inverse of DecodeCurrentSong.
func EncodeCurrentSong(c CurrentSong) []byte {
	b := make([]byte, layout.CurrentSongSize)
	writeU32(b, fieldOffset(layout.CurrentSongFields, "song_id"), c.SongID)
	writeU8(b, fieldOffset(layout.CurrentSongFields, "difficulty"), uint8(c.Difficulty))
	writeU8(b, fieldOffset(layout.CurrentSongFields, "play_style"), uint8(c.PlayStyle))
	return b
}
