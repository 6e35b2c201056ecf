// Package detector implements the Game State Detector: a small state
// machine that reads the tracked structures on a fixed poll interval and
// turns their raw values into edge-triggered Off/Menu/Selecting/Playing/
// Result transitions (spec §4.5).
package detector

import (
	"sync"
	"time"

	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/layout"
	"github.com/yasora/reflux/pkg/errors"
)

// State is one position in the detector's fixed state sequence.
type State int

const (
	StateOff State = iota
	StateMenu
	StateSelecting
	StatePlaying
	StateResult
)

func (s State) String() string {
	switch s {
	case StateOff:
		return "Off"
	case StateMenu:
		return "Menu"
	case StateSelecting:
		return "Selecting"
	case StatePlaying:
		return "Playing"
	case StateResult:
		return "Result"
	default:
		return "Unknown"
	}
}

// Reader is the subset of internal/memory.Reader the detector needs: a
// single arbitrary-length read at an absolute address. Defined locally, the
// same way internal/discovery defines its own MemoryReader, so the detector
// can be exercised against a fake reader without Windows-only syscalls.
type Reader interface {
	Read(address uintptr, n int) ([]byte, error)
}

// Emission is a completed play the detector has decided to surface, handed
// to the Tracker Loop on a debounce-passing edge into Result (from any other
// state).
type Emission struct {
	CurrentSong codec.CurrentSong
	PlayData    codec.PlayData
	Judge       codec.JudgeData
	Settings    codec.Settings
	At          time.Time
}

// emissionKey is the dedup tuple spec §4.5 names: identical consecutive
// emissions within the debounce window are suppressed.
type emissionKey struct {
	songID     uint32
	difficulty uint8
	playStyle  uint8
	exScore    uint32
	missCount  int32
}

// Offsets is the subset of discovered addresses the detector reads every
// tick. It mirrors internal/discovery.OffsetsCollection's fields rather
// than importing that package, keeping the detector's dependency surface
// to layout and codec alone.
type Offsets struct {
	CurrentSong  uintptr
	PlaySettings uintptr
	PlayData     uintptr
	JudgeData    uintptr
}

// Detector owns one target's poll-tick state. It is not safe for
// concurrent Tick calls; the Tracker Loop drives it from a single
// goroutine, per spec §5's single-threaded steady state.
type Detector struct {
	reader   Reader
	offsets  Offsets
	debounce time.Duration

	state State

	lastSelectingSongID uint32

	havePrevJudge bool
	prevJudge     codec.JudgeData

	haveLastEmission bool
	lastEmissionKey  emissionKey
	lastEmissionAt   time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// New constructs a Detector for offsets, reading through reader and
// debouncing repeat emissions within debounce (spec default: 1s, see
// pkg/options.DefaultResultDebounce).
func New(reader Reader, offsets Offsets, debounce time.Duration) *Detector {
	return &Detector{
		reader:   reader,
		offsets:  offsets,
		debounce: debounce,
		state:    StateOff,
		stop:     make(chan struct{}),
	}
}

// Stop requests cooperative cancellation. Idempotent.
func (d *Detector) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}

// StopRequested reports whether Stop has been called. The Tracker Loop
// does not consult it; it checks its own stop flag before each poll and
// calls Stop on the detector when it exits.
func (d *Detector) StopRequested() bool {
	select {
	case <-d.stop:
		return true
	default:
		return false
	}
}

// State returns the detector's current state.
func (d *Detector) State() State {
	return d.state
}

// Tick performs one poll: reads CurrentSong and PlaySettings, conditionally
// reads JudgeData or PlayData depending on the song-select marker, advances
// the state machine, and returns the new state plus a non-nil Emission
// exactly when an edge into Result (from any other state) clears the
// debounce window.
func (d *Detector) Tick(now time.Time) (State, *Emission, error) {
	currentBuf, err := d.reader.Read(d.offsets.CurrentSong, layout.CurrentSongSize)
	if err != nil {
		d.state = StateOff
		return d.state, nil, newPollReadError(err, d.offsets.CurrentSong, layout.CurrentSongSize, len(currentBuf))
	}

	settingsBuf, err := d.reader.Read(d.offsets.PlaySettings, layout.SettingsSize)
	if err != nil {
		d.state = StateOff
		return d.state, nil, newPollReadError(err, d.offsets.PlaySettings, layout.SettingsSize, len(settingsBuf))
	}

	songID := readFieldU32(currentBuf, layout.CurrentSongFields, "song_id")
	marker := readFieldU8(settingsBuf, layout.SettingsFields, "song_select_marker")

	prevState := d.state

	switch {
	case songID == 0:
		d.state = StateMenu

	case marker == layout.SongSelectMarkerSelecting:
		d.state = StateSelecting
		d.lastSelectingSongID = songID

	case marker == layout.SongSelectMarkerPlaying:
		judgeBuf, jerr := d.reader.Read(d.offsets.JudgeData, layout.JudgeDataSize)
		if jerr != nil {
			d.state = StateOff
			return d.state, nil, newPollReadError(jerr, d.offsets.JudgeData, layout.JudgeDataSize, len(judgeBuf))
		}
		judge, derr := codec.DecodeJudgeData(judgeBuf)
		if derr != nil {
			// An out-of-range or inconsistent JudgeData read mid-poll is
			// treated as a transient read problem, not a state transition.
			d.state = StateOff
			return d.state, nil, derr
		}

		changing := d.havePrevJudge && judge != d.prevJudge
		nonzero := !judge.IsIdle()
		d.prevJudge, d.havePrevJudge = judge, true

		if changing || nonzero {
			d.state = StatePlaying
		} else {
			// Marker flipped to "playing" but counters haven't moved yet;
			// stay put until they do rather than flapping into Playing
			// on the transition frame itself.
			d.state = prevState
		}

	case marker == layout.SongSelectMarkerResult:
		d.state = StateMenu // default unless the implied PlayData validates below

		playBuf, perr := d.reader.Read(d.offsets.PlayData, layout.PlayDataSize)
		if perr != nil {
			d.state = StateOff
			return d.state, nil, newPollReadError(perr, d.offsets.PlayData, layout.PlayDataSize, len(playBuf))
		}

		playData, derr := codec.DecodePlayData(playBuf)
		if derr == nil && playData.SongID == d.lastSelectingSongID {
			d.state = StateResult

			if prevState != StateResult {
				key := emissionKey{
					songID:     playData.SongID,
					difficulty: uint8(playData.Difficulty),
					playStyle:  uint8(playData.PlayStyle),
					exScore:    playData.ExScore,
					missCount:  playData.MissCount,
				}
				if !d.suppressed(key, now) {
					d.haveLastEmission = true
					d.lastEmissionKey = key
					d.lastEmissionAt = now

					settings, _ := codec.DecodeSettings(settingsBuf)
					currentSong, _ := codec.DecodeCurrentSong(currentBuf)
					return d.state, &Emission{
						CurrentSong: currentSong,
						PlayData:    playData,
						Judge:       d.prevJudge,
						Settings:    settings,
						At:          now,
					}, nil
				}
			}
		}

	default:
		d.state = StateMenu
	}

	return d.state, nil, nil
}

// suppressed reports whether key is an identical repeat of the last
// emission within the debounce window.
func (d *Detector) suppressed(key emissionKey, now time.Time) bool {
	if !d.haveLastEmission || key != d.lastEmissionKey {
		return false
	}
	return now.Sub(d.lastEmissionAt) < d.debounce
}

// newPollReadError wraps a poll-tick read failure as a ReadError, the
// "Off" trigger condition spec §4.5 names as "any read error".
func newPollReadError(cause error, address uintptr, requested, got int) *errors.ReadError {
	return errors.NewReadError(cause, errors.ErrorCodeShortRead, "poll read failed").
		WithAddress(address).
		WithCounts(requested, got)
}

func readFieldU32(b []byte, fields []layout.FieldSpec, name string) uint32 {
	off, _ := layout.FieldRange(fields, name)
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}

func readFieldU8(b []byte, fields []layout.FieldSpec, name string) uint8 {
	off, _ := layout.FieldRange(fields, name)
	return b[off]
}
