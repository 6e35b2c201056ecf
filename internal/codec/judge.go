package codec

import (
	"github.com/yasora/reflux/internal/layout"
	"github.com/yasora/reflux/pkg/errors"
)

// DecodeJudgeData decodes the 72-byte judge-counter region. Unlike most
// codecs, an all-zero JudgeData is not rejected — it is the idle state,
// both a discovery signal and an everyday runtime state (§3).
func DecodeJudgeData(b []byte) (JudgeData, error) {
	if len(b) < layout.JudgeDataSize {
		return JudgeData{}, errors.NewStructureError(nil, errors.ErrorCodeStructureSentinelMismatch, "buffer shorter than JudgeDataSize").
			WithStructure("JudgeData").
			WithReason("short_buffer")
	}

	return JudgeData{
		PGreat:      readU32(b, fieldOffset(layout.JudgeFields, "pgreat")),
		Great:       readU32(b, fieldOffset(layout.JudgeFields, "great")),
		Good:        readU32(b, fieldOffset(layout.JudgeFields, "good")),
		Bad:         readU32(b, fieldOffset(layout.JudgeFields, "bad")),
		Poor:        readU32(b, fieldOffset(layout.JudgeFields, "poor")),
		Fast:        readU32(b, fieldOffset(layout.JudgeFields, "fast")),
		Slow:        readU32(b, fieldOffset(layout.JudgeFields, "slow")),
		ComboBreak:  readU32(b, fieldOffset(layout.JudgeFields, "combo_break")),
		StateMarker: readU8(b, fieldOffset(layout.JudgeFields, "state_marker")),
	}, nil
}

// EncodeJudgeData is the inverse of DecodeJudgeData.
func EncodeJudgeData(j JudgeData) []byte {
	b := make([]byte, layout.JudgeDataSize)
	writeU32(b, fieldOffset(layout.JudgeFields, "pgreat"), j.PGreat)
	writeU32(b, fieldOffset(layout.JudgeFields, "great"), j.Great)
	writeU32(b, fieldOffset(layout.JudgeFields, "good"), j.Good)
	writeU32(b, fieldOffset(layout.JudgeFields, "bad"), j.Bad)
	writeU32(b, fieldOffset(layout.JudgeFields, "poor"), j.Poor)
	writeU32(b, fieldOffset(layout.JudgeFields, "fast"), j.Fast)
	writeU32(b, fieldOffset(layout.JudgeFields, "slow"), j.Slow)
	writeU32(b, fieldOffset(layout.JudgeFields, "combo_break"), j.ComboBreak)
	writeU8(b, fieldOffset(layout.JudgeFields, "state_marker"), j.StateMarker)
	return b
}
