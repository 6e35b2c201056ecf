// Package textenc decodes the Shift-JIS text fields embedded in several of
// the tracker's structures (song titles, artist names, genres). Decoding
// must never abort on malformed input: the target process can be read
// mid-write, so a byte range handed to the decoder may contain a truncated
// multi-byte sequence or garbage past the field's logical end.
package textenc

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// DecodeShiftJIS converts a Shift-JIS byte range to text. It stops at the
// first NUL byte, the same field-terminator convention the remote process
// uses for every fixed-width text field. On an invalid byte sequence it
// returns the longest valid prefix decoded so far rather than an error —
// this is the "flexible decode" path spec'd for structures that may be
// observed mid-write.
func DecodeShiftJIS(b []byte) string {
	b = truncateAtNUL(b)
	if len(b) == 0 {
		return ""
	}

	dst := make([]byte, len(b)*3) // worst case: every byte expands to a 3-byte UTF-8 rune.

	// Transform the whole range first; most fields are well-formed and this
	// is the common case.
	nDst, _, err := japanese.ShiftJIS.NewDecoder().Transform(dst, b, true)
	if err == nil {
		// The decoder substitutes U+FFFD for an invalid or truncated
		// sequence instead of failing; cut there so only the valid prefix
		// is returned.
		s := string(dst[:nDst])
		if i := strings.IndexRune(s, utf8.RuneError); i >= 0 {
			s = s[:i]
		}
		return s
	}

	return decodeLongestValidPrefix(b, dst)
}

// decodeLongestValidPrefix shrinks b one byte at a time from the tail until
// it decodes cleanly, used when the full range fails. A partial multi-byte
// sequence at the tail of a field is the expected failure mode, not a sign
// of corruption, so this degrades gracefully instead of surfacing an error.
// A fresh decoder is used per attempt since a Shift-JIS decoder can carry
// lead-byte state across calls.
func decodeLongestValidPrefix(b, dst []byte) string {
	for n := len(b) - 1; n > 0; n-- {
		nDst, _, err := japanese.ShiftJIS.NewDecoder().Transform(dst, b[:n], true)
		if err == nil {
			return string(dst[:nDst])
		}
	}
	return ""
}

// truncateAtNUL returns the byte slice up to (not including) the first NUL
// byte, or the whole slice if none is present.
func truncateAtNUL(b []byte) []byte {
	for i, c := range b {
		if c == 0x00 {
			return b[:i]
		}
	}
	return b
}
