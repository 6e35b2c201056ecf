package codec

import (
	"github.com/yasora/reflux/internal/layout"
	"github.com/yasora/reflux/pkg/errors"
)

// DecodeUnlockHeader validates and decodes the UnlockData header: the
// tuple (1000, 1, 462), per spec §4.4.1 step 6. UnlockData is used only as
// a discovery anchor; its bitfield body is never interpreted by the
// tracker.
func DecodeUnlockHeader(b []byte) (UnlockHeader, error) {
	if len(b) < layout.UnlockBitfieldOffset {
		return UnlockHeader{}, errors.NewStructureError(nil, errors.ErrorCodeStructureSentinelMismatch, "buffer shorter than UnlockData header").
			WithStructure("UnlockData").
			WithReason("short_buffer")
	}

	total := readU32(b, fieldOffset(layout.UnlockFields, "total_songs"))
	version := readU32(b, fieldOffset(layout.UnlockFields, "version"))
	count := readU32(b, fieldOffset(layout.UnlockFields, "entry_count"))

	if total != layout.UnlockHeaderTotalSongs || version != layout.UnlockHeaderVersion || count != layout.UnlockHeaderEntryCount {
		return UnlockHeader{}, errors.NewSentinelMismatchError("UnlockData", b[:layout.UnlockBitfieldOffset])
	}

	return UnlockHeader{TotalSongs: total, Version: version, EntryCount: count}, nil
}
