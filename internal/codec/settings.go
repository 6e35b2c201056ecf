package codec

import (
	"github.com/yasora/reflux/internal/layout"
	"github.com/yasora/reflux/pkg/errors"
)

// DecodeSettings decodes the PlaySettings structure: play-modifier flags
// plus the song-select marker byte the Game State Detector reads to tell
// menu, play, and result phases apart.
func DecodeSettings(b []byte) (Settings, error) {
	if len(b) < layout.SettingsSize {
		return Settings{}, errors.NewStructureError(nil, errors.ErrorCodeStructureSentinelMismatch, "buffer shorter than SettingsSize").
			WithStructure("PlaySettings").
			WithReason("short_buffer")
	}

	marker := readU8(b, fieldOffset(layout.SettingsFields, "song_select_marker"))
	if marker != layout.SongSelectMarkerSelecting &&
		marker != layout.SongSelectMarkerPlaying &&
		marker != layout.SongSelectMarkerResult {
		return Settings{}, errors.NewRangeViolationError("PlaySettings", "song_select_marker", marker)
	}

	return Settings{
		RandomSP:         readU8(b, fieldOffset(layout.SettingsFields, "random_sp")),
		RandomDP:         readU8(b, fieldOffset(layout.SettingsFields, "random_dp")),
		Gauge:            readU8(b, fieldOffset(layout.SettingsFields, "gauge")),
		Assist:           readU8(b, fieldOffset(layout.SettingsFields, "assist")),
		Noteset:          readU8(b, fieldOffset(layout.SettingsFields, "noteset")),
		SongSelectMarker: marker,
	}, nil
}

// EncodeSettings is the inverse of DecodeSettings.
func EncodeSettings(s Settings) []byte {
	b := make([]byte, layout.SettingsSize)
	writeU8(b, fieldOffset(layout.SettingsFields, "random_sp"), s.RandomSP)
	writeU8(b, fieldOffset(layout.SettingsFields, "random_dp"), s.RandomDP)
	writeU8(b, fieldOffset(layout.SettingsFields, "gauge"), s.Gauge)
	writeU8(b, fieldOffset(layout.SettingsFields, "assist"), s.Assist)
	writeU8(b, fieldOffset(layout.SettingsFields, "noteset"), s.Noteset)
	writeU8(b, fieldOffset(layout.SettingsFields, "song_select_marker"), s.SongSelectMarker)
	return b
}
