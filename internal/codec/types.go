// Package codec implements the fixed-layout structure decoders: one codec
// per tracked game structure, each pure (bytes in, typed record out) with
// explicit sentinel/range/cross-field validation. A codec never panics on a
// malformed read — validation failure is an ordinary InvalidStructure
// result, not a thrown exception, because game memory can be read mid-write
// and a rejected candidate is how discovery tells a real structure from
// uninitialized memory.
package codec

import "github.com/yasora/reflux/internal/layout"

// PlayStyle distinguishes single-player from double-player charts.
type PlayStyle uint8

const (
	PlayStyleSP PlayStyle = layout.PlayStyleSP
	PlayStyleDP PlayStyle = layout.PlayStyleDP
)

// Difficulty ranks a chart's difficulty tier within a play style.
type Difficulty uint8

const (
	DifficultyBeginner    Difficulty = layout.DifficultyBeginner
	DifficultyNormal      Difficulty = layout.DifficultyNormal
	DifficultyHyper       Difficulty = layout.DifficultyHyper
	DifficultyAnother     Difficulty = layout.DifficultyAnother
	DifficultyLeggendaria Difficulty = layout.DifficultyLeggendaria
)

// Lamp records the clear state of a completed or best-recorded play.
type Lamp uint8

const (
	LampNoPlay Lamp = iota
	LampFailed
	LampAssistClear
	LampEasyClear
	LampClear
	LampHardClear
	LampExHardClear
	LampFullCombo
)

// DjLevel is the game's letter-grade classification of a score.
type DjLevel uint8

const (
	DjLevelF DjLevel = iota
	DjLevelE
	DjLevelD
	DjLevelC
	DjLevelB
	DjLevelA
	DjLevelAA
	DjLevelAAA
)

// Song is one SongList entry: identity plus chart-level metadata. Title,
// artist, and genre are decoded Shift-JIS text.
type Song struct {
	ID          uint32
	Title       string
	TitleYomi   string
	Artist      string
	Genre       string
	BPMMin      uint16
	BPMMax      uint16
	ChartLevels [layout.NumChartLevels]uint8
}

// ChartLevel returns the chart level for the given play style and
// difficulty, or 0 if out of range.
func (s Song) ChartLevel(style PlayStyle, diff Difficulty) uint8{
	idx := chartLevelIndex(style, diff)
	if idx < 0 || idx >= len(s.ChartLevels) {
		return 0
	}
	return s.ChartLevels[idx]
}

func chartLevelIndex(style PlayStyle, diff Difficulty) int {
	return int(style)*layout.NumDifficulty + int(diff)
}

// ScoreData is one ScoreMap entry, keyed externally by (song_id, play_style,
// difficulty).
type ScoreData struct {
	ExScore   uint32
	MissCount int32
	ClearLamp Lamp
	DjLevel   DjLevel
}

// JudgeData is the write-in-place judge-counter region. All counters zero
// is the idle state, whatever the state marker holds.
type JudgeData struct {
	PGreat      uint32
	Great       uint32
	Good        uint32
	Bad         uint32
	Poor        uint32
	Fast        uint32
	Slow        uint32
	ComboBreak  uint32
	StateMarker uint8
}

// IsIdle reports whether the judge counters are all zero, the state a
// no-play region is expected to be in.
func (j JudgeData) IsIdle() bool {
	return j.PGreat == 0 && j.Great == 0 && j.Good == 0 && j.Bad == 0 &&
		j.Poor == 0 && j.Fast == 0 && j.Slow == 0 && j.ComboBreak == 0
}

// PlayData is populated when a chart finishes.
type PlayData struct {
	SongID     uint32
	ExScore    uint32
	MissCount  int32
	ClearLamp  Lamp
	DjLevel    DjLevel
	Difficulty Difficulty
	PlayStyle  PlayStyle
	FastCount  uint32
	SlowCount  uint32
	Combo      uint32
}

// CurrentSong is populated when a chart is selected.
type CurrentSong struct {
	SongID     uint32
	Difficulty Difficulty
	PlayStyle  PlayStyle
}

// Settings carries play-modifier flags and the song-select marker byte
// that toggles between menu, play, and result phases.
type Settings struct {
	RandomSP         uint8
	RandomDP         uint8
	Gauge            uint8
	Assist           uint8
	Noteset          uint8
	SongSelectMarker uint8
}

// UnlockHeader is the validated header of the UnlockData structure, used
// only as a discovery anchor.
type UnlockHeader struct {
	TotalSongs uint32
	Version    uint32
	EntryCount uint32
}
