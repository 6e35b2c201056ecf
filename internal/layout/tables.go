// Package layout holds the bit-exact field tables that describe every
// structure the tracker reads out of the target process, plus the
// relative-displacement constants that locate one structure from another.
// Nothing in this package touches the network or the target process itself
// — it is pure data, compiled into the core, the way spec §9 insists: "no
// runtime reflection on the target... a new game version implies updating
// tables, not code paths."
package layout

// FieldSpec describes one field of a fixed-layout structure: its name, its
// byte offset from the structure's head, and its width in bytes. Codecs in
// internal/codec read field-by-field using these tables rather than hand
// rolled offset arithmetic scattered through the decode functions.
type FieldSpec struct {
	Name   string
	Offset int
	Width  int
}

// Song-related constants. A Song's title/artist/genre are Shift-JIS text
// fields; chart_levels is indexed by [play_style][difficulty].
const (
	SongEntrySize = 0x3E8 // Fixed byte size of one SongList entry in the remote layout.

	PlayStyleSP = 0
	PlayStyleDP = 1

	DifficultyBeginner    = 0
	DifficultyNormal      = 1
	DifficultyHyper       = 2
	DifficultyAnother     = 3
	DifficultyLeggendaria = 4

	NumPlayStyles  = 2
	NumDifficulty  = 5
	NumChartLevels = NumPlayStyles * NumDifficulty // 10 slots, per spec §3.
)

// SongFields is the field table for one SongList entry.
var SongFields = []FieldSpec{
	{Name: "title", Offset: 0x00, Width: 0x40},
	{Name: "title_yomi", Offset: 0x40, Width: 0x40},
	{Name: "artist", Offset: 0x80, Width: 0x40},
	{Name: "genre", Offset: 0xC0, Width: 0x40},
	{Name: "song_id", Offset: 0xFC, Width: 4},
	{Name: "bpm", Offset: 0x100, Width: 4}, // packed bpm_min (u16) + bpm_max (u16)
	{Name: "chart_levels", Offset: 0x118, Width: NumChartLevels},
}

// Song ID validity range, per spec invariant I2: zero means "no song".
const (
	SongIDMin = 1000
	SongIDMax = 50000
)

// ScoreData stride constants. DataMap is a flat table of fixed-stride
// entries keyed by (song_id, play_style, difficulty); the table head
// carries the sentinel pair used to anchor the structure (§4.4.1 step 6).
const (
	DataMapSentinelHi uint32 = 0x7FFFF
	DataMapSentinelLo uint32 = 0

	ScoreEntryStride = 0x0C // ex_score(4) + miss_count(4) + clear_lamp(1) + dj_level(1) + reserved(2)
	ScoreTableHeader = 0x08 // two u32 sentinel fields before the first entry
)

// ScoreFields is the field table for one ScoreData entry within the
// DataMap's flat table.
var ScoreFields = []FieldSpec{
	{Name: "ex_score", Offset: 0x00, Width: 4},
	{Name: "miss_count", Offset: 0x04, Width: 4},
	{Name: "clear_lamp", Offset: 0x08, Width: 1},
	{Name: "dj_level", Offset: 0x09, Width: 1},
}

// JudgeData is the write-in-place judge-counter region. Idle state is all
// 72 bytes zero except possibly the trailing state_marker, per §3 and §4.4.3.
const (
	JudgeDataSize = 72
)

// JudgeFields is the field table for the JudgeData structure.
var JudgeFields = []FieldSpec{
	{Name: "pgreat", Offset: 0x00, Width: 4},
	{Name: "great", Offset: 0x04, Width: 4},
	{Name: "good", Offset: 0x08, Width: 4},
	{Name: "bad", Offset: 0x0C, Width: 4},
	{Name: "poor", Offset: 0x10, Width: 4},
	{Name: "fast", Offset: 0x14, Width: 4},
	{Name: "slow", Offset: 0x18, Width: 4},
	{Name: "combo_break", Offset: 0x1C, Width: 4},
	{Name: "state_marker", Offset: 0x47, Width: 1}, // last byte of the 72-byte region
}

// PlayData is populated when a chart finishes.
const (
	PlayDataSize = 0x20
)

// PlayDataFields is the field table for PlayData.
var PlayDataFields = []FieldSpec{
	{Name: "song_id", Offset: 0x00, Width: 4},
	{Name: "ex_score", Offset: 0x04, Width: 4},
	{Name: "miss_count", Offset: 0x08, Width: 4},
	{Name: "clear_lamp", Offset: 0x0C, Width: 1},
	{Name: "dj_level", Offset: 0x0D, Width: 1},
	{Name: "difficulty", Offset: 0x0E, Width: 1},
	{Name: "play_style", Offset: 0x0F, Width: 1},
	{Name: "fast_count", Offset: 0x10, Width: 4},
	{Name: "slow_count", Offset: 0x14, Width: 4},
	{Name: "combo", Offset: 0x18, Width: 4},
}

// CurrentSong is populated when a chart is selected.
const (
	CurrentSongSize = 0x10
)

// CurrentSongFields is the field table for CurrentSong.
var CurrentSongFields = []FieldSpec{
	{Name: "song_id", Offset: 0x00, Width: 4},
	{Name: "difficulty", Offset: 0x04, Width: 1},
	{Name: "play_style", Offset: 0x05, Width: 1},
}

// Settings (PlaySettings) carries play-modifier flags plus the song-select
// marker byte that toggles between menu and play phases (§3, §4.5).
const (
	SettingsSize = 0x10

	SongSelectMarkerSelecting = 0x00
	SongSelectMarkerPlaying   = 0x01
	SongSelectMarkerResult    = 0x02
)

// SettingsFields is the field table for PlaySettings.
var SettingsFields = []FieldSpec{
	{Name: "random_sp", Offset: 0x00, Width: 1},
	{Name: "random_dp", Offset: 0x01, Width: 1},
	{Name: "gauge", Offset: 0x02, Width: 1},
	{Name: "assist", Offset: 0x03, Width: 1},
	{Name: "noteset", Offset: 0x04, Width: 1},
	{Name: "song_select_marker", Offset: 0x05, Width: 1},
}

// UnlockData is a bitfield array of per-song unlock states, used only as a
// discovery anchor. It is validated by the tuple (1000, 1, 462) at its head
// (§4.4.1 step 6).
const (
	UnlockHeaderTotalSongs uint32 = 1000
	UnlockHeaderVersion    uint32 = 1
	UnlockHeaderEntryCount uint32 = 462

	UnlockBitfieldOffset = 0x0C
)

// UnlockFields is the field table for the UnlockData header.
var UnlockFields = []FieldSpec{
	{Name: "total_songs", Offset: 0x00, Width: 4},
	{Name: "version", Offset: 0x04, Width: 4},
	{Name: "entry_count", Offset: 0x08, Width: 4},
}
