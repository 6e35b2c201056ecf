package errors

// StructureError is a specialized error type for structure-codec validation
// failures: a fixed-layout decoder read bytes out of the target process but
// the result failed a sentinel check, a range check, or a cross-field
// consistency check. Decoders never panic on a malformed read — a failed
// validation becomes one of these, an ordinary result rather than a thrown
// exception.
type StructureError struct {
	*baseError

	// Names the structure being decoded (e.g. "Song", "JudgeData", "PlayData").
	structure string

	// Describes which check failed (e.g. "sentinel_mismatch", "song_id_range",
	// "bpm_min_gt_bpm_max", "all_zero").
	reason string

	// Captures the raw bytes that were being decoded, for diagnostics. May be
	// truncated by the caller before attaching if the structure is large.
	bytesSeen []byte
}

// NewStructureError creates a new structure-specific error.
func NewStructureError(err error, code ErrorCode, msg string) *StructureError {
	return &StructureError{baseError: NewBaseError(err, code, msg)}
}

// WithStructure records which structure was being decoded.
func (se *StructureError) WithStructure(name string) *StructureError {
	se.structure = name
	return se
}

// WithReason records which validation check failed.
func (se *StructureError) WithReason(reason string) *StructureError {
	se.reason = reason
	return se
}

// WithBytesSeen attaches the raw bytes that failed to decode.
func (se *StructureError) WithBytesSeen(b []byte) *StructureError {
	se.bytesSeen = b
	return se
}

// Structure returns the name of the structure being decoded.
func (se *StructureError) Structure() string {
	return se.structure
}

// Reason returns the validation check that failed.
func (se *StructureError) Reason() string {
	return se.reason
}

// BytesSeen returns the raw bytes that failed to decode.
func (se *StructureError) BytesSeen() []byte {
	return se.bytesSeen
}

// NewRangeViolationError creates an error for a field whose decoded value
// fell outside its valid range (e.g. song_id outside [1000, 50000]).
func NewRangeViolationError(structure, field string, value any) *StructureError {
	se := NewStructureError(nil, ErrorCodeStructureRangeViolation, "field value outside valid range").
		WithStructure(structure).
		WithReason(field + "_range")
	se.WithDetail("field", field).WithDetail("value", value)
	return se
}

// NewSentinelMismatchError creates an error for a structure whose fixed
// sentinel bytes didn't match what the layout requires.
func NewSentinelMismatchError(structure string, bytesSeen []byte) *StructureError {
	return NewStructureError(nil, ErrorCodeStructureSentinelMismatch, "sentinel bytes did not match").
		WithStructure(structure).
		WithReason("sentinel_mismatch").
		WithBytesSeen(bytesSeen)
}

// NewAllZeroError creates an error for a record that was structurally valid
// but entirely zero, which is indistinguishable from uninitialized memory
// and must be rejected during discovery.
func NewAllZeroError(structure string) *StructureError {
	return NewStructureError(nil, ErrorCodeStructureAllZero, "record is all-zero, cannot be distinguished from uninitialized memory").
		WithStructure(structure).
		WithReason("all_zero")
}

// NewInconsistentFieldsError creates an error for a cross-field consistency
// check failure (e.g. bpm_min > bpm_max).
func NewInconsistentFieldsError(structure, rule string) *StructureError {
	return NewStructureError(nil, ErrorCodeStructureInconsistent, "cross-field consistency check failed").
		WithStructure(structure).
		WithReason(rule)
}
