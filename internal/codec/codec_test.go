package codec

import (
	"testing"

	"github.com/yasora/reflux/internal/layout"
	trackerErrors "github.com/yasora/reflux/pkg/errors"
)

func TestDecodeSong_RejectsOutOfRangeSongID(t *testing.T) {
	s := Song{ID: 999, Title: "BEAT", BPMMin: 100, BPMMax: 200}
	b := EncodeSong(s)

	_, err := DecodeSong(b)
	if err == nil {
		t.Fatal("DecodeSong() with out-of-range song_id: want error, got nil")
	}
	if !trackerErrors.IsStructureError(err) {
		t.Fatalf("DecodeSong() error = %v, want a StructureError", err)
	}
}

func TestDecodeSong_RejectsBPMMinGreaterThanMax(t *testing.T) {
	s := Song{ID: 20123, Title: "BEAT", BPMMin: 200, BPMMax: 100}
	b := EncodeSong(s)

	_, err := DecodeSong(b)
	if err == nil {
		t.Fatal("DecodeSong() with bpm_min > bpm_max: want error, got nil")
	}
	se, ok := trackerErrors.AsStructureError(err)
	if !ok || se.Reason() != "bpm_min_gt_bpm_max" {
		t.Fatalf("DecodeSong() error reason = %v, want bpm_min_gt_bpm_max", se)
	}
}

func TestSongRoundTrip(t *testing.T) {
	want := Song{
		ID:          20123,
		Title:       "BEAT",
		TitleYomi:   "BEAT",
		Artist:      "ARTIST",
		Genre:       "GENRE",
		BPMMin:      150,
		BPMMax:      150,
		ChartLevels: [layout.NumChartLevels]uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	}

	got, err := DecodeSong(EncodeSong(want))
	if err != nil {
		t.Fatalf("DecodeSong(EncodeSong(want)) error = %v", err)
	}

	if got.ID != want.ID || got.Title != want.Title || got.BPMMin != want.BPMMin || got.BPMMax != want.BPMMax {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if got.ChartLevels != want.ChartLevels {
		t.Fatalf("chart levels mismatch: got %v, want %v", got.ChartLevels, want.ChartLevels)
	}
}

func TestDecodeDataMapHeader_RejectsMismatchedSentinel(t *testing.T) {
	b := make([]byte, layout.ScoreTableHeader)
	if err := DecodeDataMapHeader(b); err == nil {
		t.Fatal("DecodeDataMapHeader() with all-zero header: want error, got nil")
	}
}

func TestDecodeDataMapHeader_AcceptsValidSentinel(t *testing.T) {
	b := make([]byte, layout.ScoreTableHeader)
	writeU32(b, 0, layout.DataMapSentinelHi)
	writeU32(b, 4, layout.DataMapSentinelLo)

	if err := DecodeDataMapHeader(b); err != nil {
		t.Fatalf("DecodeDataMapHeader() with valid sentinel: want nil, got %v", err)
	}
}

func TestScoreDataRoundTrip(t *testing.T) {
	want := ScoreData{ExScore: 1720, MissCount: 3, ClearLamp: LampHardClear, DjLevel: DjLevelAAA}
	got, err := DecodeScoreData(EncodeScoreData(want))
	if err != nil {
		t.Fatalf("DecodeScoreData(EncodeScoreData(want)) error = %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestDecodeJudgeData_IdleStateIsAccepted(t *testing.T) {
	b := make([]byte, layout.JudgeDataSize)
	j, err := DecodeJudgeData(b)
	if err != nil {
		t.Fatalf("DecodeJudgeData() on idle region: want nil, got %v", err)
	}
	if !j.IsIdle() {
		t.Fatal("DecodeJudgeData() on all-zero region: want IsIdle() true")
	}
}

func TestJudgeDataRoundTrip(t *testing.T) {
	want := JudgeData{PGreat: 800, Great: 120, Good: 4, Bad: 1, Poor: 0, Fast: 50, Slow: 20, ComboBreak: 1, StateMarker: 2}
	got, err := DecodeJudgeData(EncodeJudgeData(want))
	if err != nil {
		t.Fatalf("DecodeJudgeData(EncodeJudgeData(want)) error = %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestDecodePlayData_RejectsAllZero(t *testing.T) {
	b := make([]byte, layout.PlayDataSize)
	_, err := DecodePlayData(b)
	if err == nil {
		t.Fatal("DecodePlayData() on all-zero region: want error, got nil")
	}
	if trackerErrors.GetErrorCode(err) != trackerErrors.ErrorCodeStructureAllZero {
		t.Fatalf("DecodePlayData() error code = %v, want %v", trackerErrors.GetErrorCode(err), trackerErrors.ErrorCodeStructureAllZero)
	}
}

func TestPlayDataRoundTrip(t *testing.T) {
	want := PlayData{
		SongID: 20123, ExScore: 1720, MissCount: 3, ClearLamp: LampHardClear, DjLevel: DjLevelAAA,
		Difficulty: DifficultyAnother, PlayStyle: PlayStyleSP, FastCount: 10, SlowCount: 5, Combo: 300,
	}
	got, err := DecodePlayData(EncodePlayData(want))
	if err != nil {
		t.Fatalf("DecodePlayData(EncodePlayData(want)) error = %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestDecodeCurrentSong_RejectsAllZero(t *testing.T) {
	b := make([]byte, layout.CurrentSongSize)
	_, err := DecodeCurrentSong(b)
	if err == nil {
		t.Fatal("DecodeCurrentSong() on all-zero region: want error, got nil")
	}
}

func TestDecodeCurrentSong_RejectsPowerOfTwoSongID(t *testing.T) {
	c := CurrentSong{SongID: 16384, Difficulty: DifficultyHyper, PlayStyle: PlayStyleSP}
	b := EncodeCurrentSong(c)

	_, err := DecodeCurrentSong(b)
	if err == nil {
		t.Fatal("DecodeCurrentSong() with power-of-two song_id: want error, got nil")
	}
}

func TestCurrentSongRoundTrip(t *testing.T) {
	want := CurrentSong{SongID: 20123, Difficulty: DifficultyAnother, PlayStyle: PlayStyleDP}
	got, err := DecodeCurrentSong(EncodeCurrentSong(want))
	if err != nil {
		t.Fatalf("DecodeCurrentSong(EncodeCurrentSong(want)) error = %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestDecodeSettings_RejectsUnknownMarker(t *testing.T) {
	s := Settings{SongSelectMarker: 0x7F}
	b := EncodeSettings(s)

	_, err := DecodeSettings(b)
	if err == nil {
		t.Fatal("DecodeSettings() with unknown marker: want error, got nil")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	want := Settings{RandomSP: 1, RandomDP: 0, Gauge: 2, Assist: 0, Noteset: 1, SongSelectMarker: layout.SongSelectMarkerPlaying}
	got, err := DecodeSettings(EncodeSettings(want))
	if err != nil {
		t.Fatalf("DecodeSettings(EncodeSettings(want)) error = %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestDecodeUnlockHeader_RequiresExactTuple(t *testing.T) {
	b := make([]byte, layout.UnlockBitfieldOffset)
	if _, err := DecodeUnlockHeader(b); err == nil {
		t.Fatal("DecodeUnlockHeader() with zeroed header: want error, got nil")
	}

	writeU32(b, 0, layout.UnlockHeaderTotalSongs)
	writeU32(b, 4, layout.UnlockHeaderVersion)
	writeU32(b, 8, layout.UnlockHeaderEntryCount)

	h, err := DecodeUnlockHeader(b)
	if err != nil {
		t.Fatalf("DecodeUnlockHeader() with valid tuple: want nil, got %v", err)
	}
	if h.TotalSongs != layout.UnlockHeaderTotalSongs || h.Version != layout.UnlockHeaderVersion || h.EntryCount != layout.UnlockHeaderEntryCount {
		t.Fatalf("DecodeUnlockHeader() = %+v, unexpected fields", h)
	}
}
