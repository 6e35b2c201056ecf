package discovery

// Signature is a masked byte pattern used as a fallback anchor search when
// the primary anchored-scan/displacement-search path fails. Masked bytes
// (mask[i] == 0x00) are wildcards, for the fields inside a signature's
// match region that vary across otherwise-stable byte runs.
//
// Signature scanning is disabled by default (§9, "open question — signature
// obsolescence"): three of the seven anchors now return zero hits against
// these tables on current builds. The table holds only the SongList seed
// signature, used for SongList alone and gated behind
// Options.EnableSignatureFallback for diagnostic use; DataMap and
// UnlockData are found by their own always-on pattern scans and have no
// entry here.
type Signature struct {
	Name    string
	Pattern []byte
	Mask    []byte

	// Offset from the signature's match address to the anchor's head.
	Offset int64
}

// signatureTable lists the fallback signatures this build ships with.
// Embedders tracking a version where these have also gone stale have no
// recourse but the interactive fallback (§4.4.4).
var signatureTable = []Signature{
	{
		Name:    "SongList",
		Pattern: songListSeed,
		Mask:    nil, // exact match, no wildcard bytes
		Offset:  0,
	},
}

// matchesSignature reports whether b matches sig.Pattern under sig.Mask. A
// nil mask requires an exact match.
func matchesSignature(b []byte, sig Signature) bool {
	if len(b) < len(sig.Pattern) {
		return false
	}
	for i, p := range sig.Pattern {
		if sig.Mask != nil && i < len(sig.Mask) && sig.Mask[i] == 0x00 {
			continue
		}
		if b[i] != p {
			return false
		}
	}
	return true
}

// scanForSignature scans [start, start+length) for sig, returning every
// match's absolute address. It reuses the chunked scan used for exact
// pattern matches when the signature carries no wildcard mask, and falls
// back to a byte-by-byte masked scan otherwise.
func scanForSignature(reader MemoryReader, start uintptr, length int, sig Signature) []uintptr {
	if sig.Mask == nil {
		return scanForPattern(reader, start, length, sig.Pattern)
	}

	var matches []uintptr
	offset := 0
	for offset < length {
		chunkLen := scanChunkSize
		if remaining := length - offset; remaining < chunkLen {
			chunkLen = remaining
		}

		readLen := chunkLen + len(sig.Pattern) - 1
		buf, err := reader.Read(start+uintptr(offset), readLen)
		if err != nil {
			offset += chunkLen
			continue
		}

		for i := 0; i+len(sig.Pattern) <= len(buf); i++ {
			if matchesSignature(buf[i:], sig) {
				matches = append(matches, start+uintptr(offset+i))
			}
		}

		offset += chunkLen
	}

	return matches
}
