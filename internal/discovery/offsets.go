// Package discovery locates the seven tracked structures' absolute
// addresses inside a moving target binary. It pivots on one reliably
// discoverable anchor (SongList) plus validated relative displacements to
// the rest, with cross-validation closing the remaining gap — byte-pattern
// signatures alone no longer find three of the seven anchors reliably.
package discovery

import "github.com/yasora/reflux/internal/layout"

// OffsetsCollection holds the seven absolute addresses discovery resolves.
// It is immutable once populated and shared by value — no anchor address
// changes again until the tracker loop discards it and re-runs discovery.
type OffsetsCollection struct {
	SongList     uintptr
	DataMap      uintptr
	JudgeData    uintptr
	PlayData     uintptr
	PlaySettings uintptr
	UnlockData   uintptr
	CurrentSong  uintptr
}

// MemoryReader is the subset of internal/memory.Reader's contract
// discovery needs: module base resolution and arbitrary-length reads. It
// is defined here, rather than imported from internal/memory directly, so
// discovery can be exercised against a fake reader in tests without the
// Windows-only syscalls internal/memory depends on.
type MemoryReader interface {
	ModuleBase() uintptr
	Read(address uintptr, n int) ([]byte, error)
}

// AnchorDataMap and AnchorUnlockData name the two anchors validated by an
// independent full-module scan rather than a displacement from SongList.
const (
	AnchorDataMap    = "DataMap"
	AnchorUnlockData = layout.AnchorUnlockData
)
