package textenc

import "testing"

func TestDecodeShiftJIS_StopsAtNUL(t *testing.T) {
	b := append([]byte("BEAT"), 0x00, 'X', 'X', 'X')
	got := DecodeShiftJIS(b)
	if got != "BEAT" {
		t.Fatalf("DecodeShiftJIS() = %q, want %q", got, "BEAT")
	}
}

func TestDecodeShiftJIS_EmptyInput(t *testing.T) {
	if got := DecodeShiftJIS(nil); got != "" {
		t.Fatalf("DecodeShiftJIS(nil) = %q, want empty", got)
	}
	if got := DecodeShiftJIS([]byte{0x00, 'a', 'b'}); got != "" {
		t.Fatalf("DecodeShiftJIS(leading NUL) = %q, want empty", got)
	}
}

func TestDecodeShiftJIS_TruncatedMultiByteSequenceReturnsPrefix(t *testing.T) {
	// 0x82 0xA0 is the Shift-JIS encoding of the hiragana character "あ".
	// A lone leading byte 0x82 with nothing following it is an incomplete
	// two-byte sequence, the kind of thing a mid-write read can produce.
	b := append([]byte("AB"), 0x82, 0xA0, 0x82)
	got := DecodeShiftJIS(b)
	if got == "" {
		t.Fatalf("DecodeShiftJIS() returned empty, want longest valid prefix")
	}
	if len(got) < 2 || got[:2] != "AB" {
		t.Fatalf("DecodeShiftJIS() = %q, want prefix starting with %q", got, "AB")
	}
}

func TestDecodeShiftJIS_PureASCII(t *testing.T) {
	got := DecodeShiftJIS([]byte("5.1.1."))
	if got != "5.1.1." {
		t.Fatalf("DecodeShiftJIS() = %q, want %q", got, "5.1.1.")
	}
}
