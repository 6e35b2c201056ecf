package layout

// FieldRange looks up a named field's (offset, width) in a table, for
// callers outside internal/codec that need to read a single raw field
// without going through a structure's full decode-and-validate path — the
// Game State Detector reads CurrentSong.song_id and PlaySettings.
// song_select_marker this way, since those fields are legitimately
// all-zero in Menu and a validating decode would reject them as the codec
// package's discovery-time decoders correctly do.
//
// It panics on an unknown field name, the same contract internal/codec's
// own field lookup uses — a typo in a field name is a programming error,
// not a runtime condition.
func FieldRange(fields []FieldSpec, name string) (offset, width int) {
	for _, f := range fields {
		if f.Name == name {
			return f.Offset, f.Width
		}
	}
	panic("layout: unknown field " + name)
}
