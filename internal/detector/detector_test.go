package detector

import (
	"errors"
	"testing"
	"time"

	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/layout"
)

const (
	addrCurrentSong  = 0x1000
	addrPlaySettings = 0x2000
	addrPlayData     = 0x3000
	addrJudgeData    = 0x4000
)

type fakeReader struct {
	buffers  map[uintptr][]byte
	failAddr uintptr
}

func newFakeReader() *fakeReader {
	return &fakeReader{buffers: make(map[uintptr][]byte)}
}

func (r *fakeReader) set(addr uintptr, b []byte) {
	r.buffers[addr] = b
}

func (r *fakeReader) Read(address uintptr, n int) ([]byte, error) {
	if r.failAddr != 0 && address == r.failAddr {
		return nil, errors.New("fake: read failed")
	}
	buf, ok := r.buffers[address]
	if !ok {
		return make([]byte, n), nil
	}
	out := make([]byte, n)
	copy(out, buf)
	return out, nil
}

func testOffsets() Offsets {
	return Offsets{
		CurrentSong:  addrCurrentSong,
		PlaySettings: addrPlaySettings,
		PlayData:     addrPlayData,
		JudgeData:    addrJudgeData,
	}
}

func settingsWithMarker(marker uint8) []byte {
	b := codec.EncodeSettings(codec.Settings{SongSelectMarker: marker})
	return b
}

func TestTick_MenuWhenSongIDZero(t *testing.T) {
	reader := newFakeReader()
	reader.set(addrCurrentSong, codec.EncodeCurrentSong(codec.CurrentSong{SongID: 0}))
	reader.set(addrPlaySettings, settingsWithMarker(layout.SongSelectMarkerSelecting))

	d := New(reader, testOffsets(), time.Second)
	state, emission, err := d.Tick(time.Unix(0, 0))
	if err != nil {
		t.Fatalf("Tick() error = %v, want nil", err)
	}
	if state != StateMenu {
		t.Fatalf("Tick() state = %v, want Menu", state)
	}
	if emission != nil {
		t.Fatal("Tick() emitted a result while in Menu")
	}
}

func TestTick_SelectingOnSelectMarker(t *testing.T) {
	reader := newFakeReader()
	reader.set(addrCurrentSong, codec.EncodeCurrentSong(codec.CurrentSong{SongID: 20123, Difficulty: codec.DifficultyHyper, PlayStyle: codec.PlayStyleSP}))
	reader.set(addrPlaySettings, settingsWithMarker(layout.SongSelectMarkerSelecting))

	d := New(reader, testOffsets(), time.Second)
	state, _, err := d.Tick(time.Unix(0, 0))
	if err != nil {
		t.Fatalf("Tick() error = %v, want nil", err)
	}
	if state != StateSelecting {
		t.Fatalf("Tick() state = %v, want Selecting", state)
	}
	if d.lastSelectingSongID != 20123 {
		t.Fatalf("lastSelectingSongID = %d, want 20123", d.lastSelectingSongID)
	}
}

func TestTick_PlayingMarkerWithIdleJudgeStaysInPreviousState(t *testing.T) {
	reader := newFakeReader()
	reader.set(addrCurrentSong, codec.EncodeCurrentSong(codec.CurrentSong{SongID: 20123, Difficulty: codec.DifficultyHyper, PlayStyle: codec.PlayStyleSP}))
	reader.set(addrPlaySettings, settingsWithMarker(layout.SongSelectMarkerSelecting))

	d := New(reader, testOffsets(), time.Second)
	if _, _, err := d.Tick(time.Unix(0, 0)); err != nil {
		t.Fatalf("setup Tick() error = %v", err)
	}

	reader.set(addrPlaySettings, settingsWithMarker(layout.SongSelectMarkerPlaying))
	reader.set(addrJudgeData, codec.EncodeJudgeData(codec.JudgeData{})) // idle, no counters yet

	state, emission, err := d.Tick(time.Unix(1, 0))
	if err != nil {
		t.Fatalf("Tick() error = %v, want nil", err)
	}
	if state != StateSelecting {
		t.Fatalf("Tick() state = %v, want Selecting (judge hasn't moved yet)", state)
	}
	if emission != nil {
		t.Fatal("Tick() emitted a result before entering Playing")
	}
}

func TestTick_PlayingWhenJudgeCountersNonzero(t *testing.T) {
	reader := newFakeReader()
	reader.set(addrCurrentSong, codec.EncodeCurrentSong(codec.CurrentSong{SongID: 20123, Difficulty: codec.DifficultyHyper, PlayStyle: codec.PlayStyleSP}))
	reader.set(addrPlaySettings, settingsWithMarker(layout.SongSelectMarkerPlaying))
	reader.set(addrJudgeData, codec.EncodeJudgeData(codec.JudgeData{PGreat: 5}))

	d := New(reader, testOffsets(), time.Second)
	state, _, err := d.Tick(time.Unix(0, 0))
	if err != nil {
		t.Fatalf("Tick() error = %v, want nil", err)
	}
	if state != StatePlaying {
		t.Fatalf("Tick() state = %v, want Playing", state)
	}
}

func TestTick_ResultEmitsOnceThenDebounces(t *testing.T) {
	reader := newFakeReader()
	reader.set(addrCurrentSong, codec.EncodeCurrentSong(codec.CurrentSong{SongID: 20123, Difficulty: codec.DifficultyHyper, PlayStyle: codec.PlayStyleSP}))
	reader.set(addrPlaySettings, settingsWithMarker(layout.SongSelectMarkerSelecting))

	d := New(reader, testOffsets(), time.Second)
	if _, _, err := d.Tick(time.Unix(0, 0)); err != nil {
		t.Fatalf("setup Tick() error = %v", err)
	}

	reader.set(addrPlaySettings, settingsWithMarker(layout.SongSelectMarkerResult))
	reader.set(addrPlayData, codec.EncodePlayData(codec.PlayData{
		SongID: 20123, ExScore: 1800, MissCount: 2,
		Difficulty: codec.DifficultyHyper, PlayStyle: codec.PlayStyleSP,
	}))

	state, emission, err := d.Tick(time.Unix(1, 0))
	if err != nil {
		t.Fatalf("Tick() error = %v, want nil", err)
	}
	if state != StateResult {
		t.Fatalf("Tick() state = %v, want Result", state)
	}
	if emission == nil {
		t.Fatal("Tick() did not emit a result on the Playing/Selecting -> Result edge")
	}
	if emission.PlayData.ExScore != 1800 {
		t.Fatalf("emission.PlayData.ExScore = %d, want 1800", emission.PlayData.ExScore)
	}

	// A second tick still reporting Result, within the debounce window,
	// must not emit again.
	state, emission, err = d.Tick(time.Unix(1, 500_000_000))
	if err != nil {
		t.Fatalf("Tick() error = %v, want nil", err)
	}
	if state != StateResult {
		t.Fatalf("Tick() state = %v, want Result", state)
	}
	if emission != nil {
		t.Fatal("Tick() re-emitted an identical result inside the debounce window")
	}
}

func TestTick_ResultRequiresMatchingSongID(t *testing.T) {
	reader := newFakeReader()
	reader.set(addrCurrentSong, codec.EncodeCurrentSong(codec.CurrentSong{SongID: 20123, Difficulty: codec.DifficultyHyper, PlayStyle: codec.PlayStyleSP}))
	reader.set(addrPlaySettings, settingsWithMarker(layout.SongSelectMarkerSelecting))

	d := New(reader, testOffsets(), time.Second)
	if _, _, err := d.Tick(time.Unix(0, 0)); err != nil {
		t.Fatalf("setup Tick() error = %v", err)
	}

	reader.set(addrPlaySettings, settingsWithMarker(layout.SongSelectMarkerResult))
	reader.set(addrPlayData, codec.EncodePlayData(codec.PlayData{
		SongID: 30456, ExScore: 1800, // different song than last-selected
		Difficulty: codec.DifficultyHyper, PlayStyle: codec.PlayStyleSP,
	}))

	state, emission, err := d.Tick(time.Unix(1, 0))
	if err != nil {
		t.Fatalf("Tick() error = %v, want nil", err)
	}
	if state != StateMenu {
		t.Fatalf("Tick() state = %v, want Menu (mismatched PlayData.song_id)", state)
	}
	if emission != nil {
		t.Fatal("Tick() emitted a result for a mismatched song_id")
	}
}

func TestTick_ReadFailureEntersOff(t *testing.T) {
	reader := newFakeReader()
	reader.failAddr = addrCurrentSong

	d := New(reader, testOffsets(), time.Second)
	state, emission, err := d.Tick(time.Unix(0, 0))
	if err == nil {
		t.Fatal("Tick() error = nil, want a read error")
	}
	if state != StateOff {
		t.Fatalf("Tick() state = %v, want Off", state)
	}
	if emission != nil {
		t.Fatal("Tick() emitted a result despite a read failure")
	}
}

func TestStopRequested(t *testing.T) {
	d := New(newFakeReader(), testOffsets(), time.Second)
	if d.StopRequested() {
		t.Fatal("StopRequested() = true before Stop() was ever called")
	}
	d.Stop()
	if !d.StopRequested() {
		t.Fatal("StopRequested() = false after Stop()")
	}
	d.Stop() // idempotent, must not panic
}
