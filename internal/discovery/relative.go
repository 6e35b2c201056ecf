package discovery

import "github.com/yasora/reflux/internal/layout"

// validateFunc attempts to validate the structure found at address, given
// its bytes already read into window[offset:]. It returns a score (higher
// is better) on success; the error is an ordinary rejection signal, not a
// fault — discovery uses it to keep scanning, never to abort. reader is
// available for cross-validation reads of a further-displaced structure
// (e.g. JudgeData validating its implied CurrentSong).
type validateFunc func(reader MemoryReader, address uintptr, window []byte, offset int) (score float64, err error)

// searchDisplacement scans the window [from+d.Offset-d.Window,
// from+d.Offset+d.Window] for the best validate-passing candidate, per
// §4.4.2: relative displacements drift by under 512 bytes across versions,
// well inside these windows, while cross-validation rejects the
// occasional false positive a narrow window still admits.
//
// The whole window is read in one call and every byte offset within it is
// tried (byte granularity, since structure alignment in the remote
// process is not guaranteed) against validate, keeping the highest-scoring
// passing candidate rather than stopping at the first hit — a degenerate
// all-zero or sentinel match can occur more than once inside a narrow
// window.
func searchDisplacement(reader MemoryReader, from uintptr, d layout.Displacement, structSize int, validate validateFunc) (Candidate, bool) {
	center := int64(from) + d.Offset
	lo := center - d.Window
	hi := center + d.Window
	if lo < 0 {
		lo = 0
	}

	span := int(hi-lo) + structSize
	window, err := reader.Read(uintptr(lo), span)
	if err != nil {
		return Candidate{}, false
	}

	var best Candidate
	found := false

	for off := 0; off+structSize <= len(window); off++ {
		addr := lo + int64(off)
		score, verr := validate(reader, uintptr(addr), window, off)
		if verr != nil {
			continue
		}

		actualDisplacement := addr - int64(from)
		centrality := windowedScore(actualDisplacement, d.Offset, d.Window)
		combined := score + centrality

		if !found || combined > best.Score {
			best = Candidate{Anchor: d.To, Address: uintptr(addr), Score: combined}
			found = true
		}
	}

	return best, found
}
