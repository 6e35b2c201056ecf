package discovery

import (
	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/layout"
)

// songListSeed is the stable ASCII version marker embedded near the
// SongList in every observed build (§4.4.1 step 1).
var songListSeed = []byte("5.1.1.")

// songListAccelerationOffset is where the scan starts relative to the
// module base, ahead of a full-module fallback scan on miss.
const songListAccelerationOffset = 0x3180000

// songListFullScanLength bounds the full-module fallback scan. The target
// binary's .data/.rdata region the SongList lives in is well within this
// span on every observed build.
const songListFullScanLength = 0x6000000

// songListMinValidRun is the minimum number of consecutive decodable
// entries required to promote a SongList candidate (§4.4.1 step 1).
const songListMinValidRun = 100

// songListProbeCount bounds how many entries are decoded to score a
// candidate before committing to a full promotion; scoring the first 150
// is enough to separate a real SongList head from a coincidental
// seed-string match elsewhere in the module.
const songListProbeCount = 150

// discoverSongList scans for the "5.1.1." seed near module_base +
// songListAccelerationOffset, falling back to a full-module scan on miss,
// and promotes the match whose decoded run of entries is longest.
func discoverSongList(reader MemoryReader) (Candidate, []codec.Song, bool) {
	base := reader.ModuleBase()

	matches := scanForPattern(reader, base+songListAccelerationOffset, songListFullScanLength/4, songListSeed)
	if len(matches) == 0 {
		matches = scanForPattern(reader, base, songListFullScanLength, songListSeed)
	}

	var best Candidate
	var bestSongs []codec.Song
	found := false

	for _, seedAddr := range matches {
		head, songs, run := probeSongListHead(reader, seedAddr)
		if run < songListMinValidRun {
			continue
		}

		cand := Candidate{Anchor: layout.AnchorSongList, Address: head, Score: songListScore(run), DecodedRun: run}
		if !found || cand.Score > best.Score {
			best, bestSongs, found = cand, songs, true
		}
	}

	return best, bestSongs, found
}

// probeSongListHead searches backward and forward from a seed-string hit
// for the SongList entry boundary that yields the longest run of
// cleanly-decoded entries, since the seed string's offset from its
// entry's head is itself a build-specific constant the core doesn't pin
// down independently.
func probeSongListHead(reader MemoryReader, seedAddr uintptr) (head uintptr, songs []codec.Song, run int) {
	const searchSpan = 0x1000

	var bestHead uintptr
	var bestSongs []codec.Song
	bestRun := 0

	lo := int64(seedAddr) - searchSpan
	if lo < 0 {
		lo = 0
	}
	hi := int64(seedAddr) + searchSpan

	for candidate := lo; candidate <= hi; candidate += 4 {
		entries, n := decodeSongRun(reader, uintptr(candidate))
		if n > bestRun {
			bestRun = n
			bestHead = uintptr(candidate)
			bestSongs = entries
		}
	}

	return bestHead, bestSongs, bestRun
}

// decodeSongRun decodes consecutive SongList entries from head until one
// fails to decode or songListProbeCount is reached.
func decodeSongRun(reader MemoryReader, head uintptr) ([]codec.Song, int) {
	buf, err := reader.Read(head, layout.SongEntrySize*songListProbeCount)
	if err != nil {
		// A partial read still lets us probe as many whole entries as were
		// actually returned in practice; here the whole-window read failed,
		// so fall back to one entry at a time up to the probe count.
		return decodeSongRunSlow(reader, head)
	}

	var songs []codec.Song
	for i := 0; i < songListProbeCount; i++ {
		start := i * layout.SongEntrySize
		song, derr := codec.DecodeSong(buf[start : start+layout.SongEntrySize])
		if derr != nil {
			break
		}
		songs = append(songs, song)
	}
	return songs, len(songs)
}

func decodeSongRunSlow(reader MemoryReader, head uintptr) ([]codec.Song, int) {
	var songs []codec.Song
	for i := 0; i < songListProbeCount; i++ {
		buf, err := reader.Read(head+uintptr(i*layout.SongEntrySize), layout.SongEntrySize)
		if err != nil {
			break
		}
		song, derr := codec.DecodeSong(buf)
		if derr != nil {
			break
		}
		songs = append(songs, song)
	}
	return songs, len(songs)
}
