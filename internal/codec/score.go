package codec

import (
	"github.com/yasora/reflux/internal/layout"
	"github.com/yasora/reflux/pkg/errors"
)

// DecodeDataMapHeader validates the sentinel pair at the head of the
// DataMap structure: (0x7FFFF, 0), per spec §4.4.2 step 6. This is the
// anchor validator, not a per-entry decode.
func DecodeDataMapHeader(b []byte) error {
	if len(b) < layout.ScoreTableHeader {
		return errors.NewStructureError(nil, errors.ErrorCodeStructureSentinelMismatch, "buffer shorter than DataMap header").
			WithStructure("DataMap").
			WithReason("short_buffer")
	}

	hi := readU32(b, 0)
	lo := readU32(b, 4)
	if hi != layout.DataMapSentinelHi || lo != layout.DataMapSentinelLo {
		return errors.NewSentinelMismatchError("DataMap", b[:layout.ScoreTableHeader])
	}

	return nil
}

// DecodeScoreData decodes one ScoreMap entry from a layout.ScoreEntryStride
// byte buffer.
func DecodeScoreData(b []byte) (ScoreData, error) {
	if len(b) < layout.ScoreEntryStride {
		return ScoreData{}, errors.NewStructureError(nil, errors.ErrorCodeStructureSentinelMismatch, "buffer shorter than ScoreEntryStride").
			WithStructure("ScoreData").
			WithReason("short_buffer")
	}

	return ScoreData{
		ExScore:   readU32(b, fieldOffset(layout.ScoreFields, "ex_score")),
		MissCount: readI32(b, fieldOffset(layout.ScoreFields, "miss_count")),
		ClearLamp: Lamp(readU8(b, fieldOffset(layout.ScoreFields, "clear_lamp"))),
		DjLevel:   DjLevel(readU8(b, fieldOffset(layout.ScoreFields, "dj_level"))),
	}, nil
}

// EncodeScoreData is the inverse of DecodeScoreData, used by round-trip
// tests to confirm the codec is lossless over its defined field set.
func EncodeScoreData(s ScoreData) []byte {
	b := make([]byte, layout.ScoreEntryStride)
	writeU32(b, fieldOffset(layout.ScoreFields, "ex_score"), s.ExScore)
	writeI32(b, fieldOffset(layout.ScoreFields, "miss_count"), s.MissCount)
	writeU8(b, fieldOffset(layout.ScoreFields, "clear_lamp"), uint8(s.ClearLamp))
	writeU8(b, fieldOffset(layout.ScoreFields, "dj_level"), uint8(s.DjLevel))
	return b
}
