package codec

import (
	"github.com/yasora/reflux/internal/layout"
	"github.com/yasora/reflux/pkg/errors"
	"github.com/yasora/reflux/pkg/textenc"
)

// DecodeSong decodes one SongList entry from a layout.SongEntrySize byte
// buffer. It validates song_id against the [1000, 50000] range (I2) and
// rejects bpm_min > bpm_max as a cross-field inconsistency.
func DecodeSong(b []byte) (Song, error) {
	if len(b) < layout.SongEntrySize {
		return Song{}, errors.NewStructureError(nil, errors.ErrorCodeStructureSentinelMismatch, "buffer shorter than SongEntrySize").
			WithStructure("Song").
			WithReason("short_buffer")
	}

	if isAllZero(b) {
		return Song{}, errors.NewAllZeroError("Song")
	}

	songID := readU32(b, fieldOffset(layout.SongFields, "song_id"))
	if songID != 0 && (songID < layout.SongIDMin || songID > layout.SongIDMax) {
		return Song{}, errors.NewRangeViolationError("Song", "song_id", songID)
	}

	bpmPacked := readU32(b, fieldOffset(layout.SongFields, "bpm"))
	bpmMin := uint16(bpmPacked & 0xFFFF)
	bpmMax := uint16(bpmPacked >> 16)
	if bpmMin > bpmMax {
		return Song{}, errors.NewInconsistentFieldsError("Song", "bpm_min_gt_bpm_max")
	}

	titleOff, titleWidth := fieldRange(layout.SongFields, "title")
	yomiOff, yomiWidth := fieldRange(layout.SongFields, "title_yomi")
	artistOff, artistWidth := fieldRange(layout.SongFields, "artist")
	genreOff, genreWidth := fieldRange(layout.SongFields, "genre")
	levelsOff, levelsWidth := fieldRange(layout.SongFields, "chart_levels")

	title := textenc.DecodeShiftJIS(b[titleOff : titleOff+titleWidth])
	if title == "" {
		return Song{}, errors.NewStructureError(nil, errors.ErrorCodeStructureAllZero, "song title decoded empty").
			WithStructure("Song").
			WithReason("empty_title")
	}

	song := Song{
		ID:        songID,
		Title:     title,
		TitleYomi: textenc.DecodeShiftJIS(b[yomiOff : yomiOff+yomiWidth]),
		Artist:    textenc.DecodeShiftJIS(b[artistOff : artistOff+artistWidth]),
		Genre:     textenc.DecodeShiftJIS(b[genreOff : genreOff+genreWidth]),
		BPMMin:    bpmMin,
		BPMMax:    bpmMax,
	}
	copy(song.ChartLevels[:], b[levelsOff:levelsOff+levelsWidth])

	return song, nil
}

// EncodeSong is the inverse of DecodeSong over the fields that survive a
// round trip: Shift-JIS text fields are re-encoded as their original byte
// ranges are not recoverable from decoded text alone (Shift-JIS is not a
// fixed-width encoding), so EncodeSong writes zero-padded ASCII-safe bytes
// for title/artist/genre and is only meant for round-tripping
// ASCII-representable test fixtures.
func EncodeSong(s Song) []byte {
	b := make([]byte, layout.SongEntrySize)

	titleOff, titleWidth := fieldRange(layout.SongFields, "title")
	yomiOff, yomiWidth := fieldRange(layout.SongFields, "title_yomi")
	artistOff, artistWidth := fieldRange(layout.SongFields, "artist")
	genreOff, genreWidth := fieldRange(layout.SongFields, "genre")
	levelsOff, levelsWidth := fieldRange(layout.SongFields, "chart_levels")

	copy(b[titleOff:titleOff+titleWidth], []byte(s.Title))
	copy(b[yomiOff:yomiOff+yomiWidth], []byte(s.TitleYomi))
	copy(b[artistOff:artistOff+artistWidth], []byte(s.Artist))
	copy(b[genreOff:genreOff+genreWidth], []byte(s.Genre))
	copy(b[levelsOff:levelsOff+levelsWidth], s.ChartLevels[:])

	writeU32(b, fieldOffset(layout.SongFields, "song_id"), s.ID)
	writeU32(b, fieldOffset(layout.SongFields, "bpm"), uint32(s.BPMMin)|uint32(s.BPMMax)<<16)

	return b
}

// fieldOffset looks up a named field's offset in a FieldSpec table. It
// panics on an unknown name, which indicates a programming error in the
// table itself, not a runtime condition a caller can recover from.
func fieldOffset(fields []layout.FieldSpec, name string) int {
	off, _ := fieldRange(fields, name)
	return off
}

func fieldRange(fields []layout.FieldSpec, name string) (offset, width int) {
	for _, f := range fields {
		if f.Name == name {
			return f.Offset, f.Width
		}
	}
	panic("codec: unknown field " + name)
}
