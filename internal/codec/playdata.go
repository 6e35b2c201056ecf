package codec

import (
	"github.com/yasora/reflux/internal/layout"
	"github.com/yasora/reflux/pkg/errors"
)

// DecodePlayData decodes the PlayData structure, populated when a chart
// finishes. A zero song_id is valid (no completed play yet); a nonzero
// song_id must fall in [1000, 50000] (I2).
func DecodePlayData(b []byte) (PlayData, error) {
	if len(b) < layout.PlayDataSize {
		return PlayData{}, errors.NewStructureError(nil, errors.ErrorCodeStructureSentinelMismatch, "buffer shorter than PlayDataSize").
			WithStructure("PlayData").
			WithReason("short_buffer")
	}

	if isAllZero(b) {
		return PlayData{}, errors.NewAllZeroError("PlayData")
	}

	songID := readU32(b, fieldOffset(layout.PlayDataFields, "song_id"))
	if songID != 0 && (songID < layout.SongIDMin || songID > layout.SongIDMax) {
		return PlayData{}, errors.NewRangeViolationError("PlayData", "song_id", songID)
	}

	return PlayData{
		SongID:     songID,
		ExScore:    readU32(b, fieldOffset(layout.PlayDataFields, "ex_score")),
		MissCount:  readI32(b, fieldOffset(layout.PlayDataFields, "miss_count")),
		ClearLamp:  Lamp(readU8(b, fieldOffset(layout.PlayDataFields, "clear_lamp"))),
		DjLevel:    DjLevel(readU8(b, fieldOffset(layout.PlayDataFields, "dj_level"))),
		Difficulty: Difficulty(readU8(b, fieldOffset(layout.PlayDataFields, "difficulty"))),
		PlayStyle:  PlayStyle(readU8(b, fieldOffset(layout.PlayDataFields, "play_style"))),
		FastCount:  readU32(b, fieldOffset(layout.PlayDataFields, "fast_count")),
		SlowCount:  readU32(b, fieldOffset(layout.PlayDataFields, "slow_count")),
		Combo:      readU32(b, fieldOffset(layout.PlayDataFields, "combo")),
	}, nil
}

// EncodePlayData is the inverse of DecodePlayData.
func EncodePlayData(p PlayData) []byte {
	b := make([]byte, layout.PlayDataSize)
	writeU32(b, fieldOffset(layout.PlayDataFields, "song_id"), p.SongID)
	writeU32(b, fieldOffset(layout.PlayDataFields, "ex_score"), p.ExScore)
	writeI32(b, fieldOffset(layout.PlayDataFields, "miss_count"), p.MissCount)
	writeU8(b, fieldOffset(layout.PlayDataFields, "clear_lamp"), uint8(p.ClearLamp))
	writeU8(b, fieldOffset(layout.PlayDataFields, "dj_level"), uint8(p.DjLevel))
	writeU8(b, fieldOffset(layout.PlayDataFields, "difficulty"), uint8(p.Difficulty))
	writeU8(b, fieldOffset(layout.PlayDataFields, "play_style"), uint8(p.PlayStyle))
	writeU32(b, fieldOffset(layout.PlayDataFields, "fast_count"), p.FastCount)
	writeU32(b, fieldOffset(layout.PlayDataFields, "slow_count"), p.SlowCount)
	writeU32(b, fieldOffset(layout.PlayDataFields, "combo"), p.Combo)
	return b
}
