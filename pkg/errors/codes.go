package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary, including the underlying OS read call used to pull
	// bytes out of the target process.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents caller-side errors where the provided
	// data doesn't meet the system's requirements or constraints.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Process-specific error codes cover failures in attaching to and reading
// from the target process, the responsibility of internal/memory.
const (
	// ErrorCodeProcessNotFound indicates that no running process matched the
	// configured process/module name.
	ErrorCodeProcessNotFound ErrorCode = "PROCESS_NOT_FOUND"

	// ErrorCodeProcessAccessDenied indicates the OS refused to open a handle
	// to the target process (insufficient privileges, protected process).
	ErrorCodeProcessAccessDenied ErrorCode = "PROCESS_ACCESS_DENIED"

	// ErrorCodeModuleNotFound indicates the process was opened but its main
	// module could not be enumerated, so no base address is available.
	ErrorCodeModuleNotFound ErrorCode = "MODULE_NOT_FOUND"

	// ErrorCodeShortRead indicates a cross-process read returned fewer bytes
	// than requested. Per spec this is always an error, never a partial success.
	ErrorCodeShortRead ErrorCode = "SHORT_READ"

	// ErrorCodeUnmappedRead indicates a read touched a page that isn't
	// committed/readable in the target process.
	ErrorCodeUnmappedRead ErrorCode = "UNMAPPED_READ"
)

// Structure-specific error codes cover the decode/validate failures produced
// by internal/codec when bytes read from the target don't describe a
// well-formed structure.
const (
	// ErrorCodeStructureSentinelMismatch indicates a fixed sentinel byte
	// sequence (e.g. the DataMap head) did not match.
	ErrorCodeStructureSentinelMismatch ErrorCode = "STRUCTURE_SENTINEL_MISMATCH"

	// ErrorCodeStructureRangeViolation indicates a decoded field fell outside
	// its valid range (e.g. song_id outside [1000, 50000]).
	ErrorCodeStructureRangeViolation ErrorCode = "STRUCTURE_RANGE_VIOLATION"

	// ErrorCodeStructureAllZero indicates an otherwise-structurally-valid
	// record was rejected because every field was zero, which is
	// indistinguishable from uninitialized memory during discovery.
	ErrorCodeStructureAllZero ErrorCode = "STRUCTURE_ALL_ZERO"

	// ErrorCodeStructureInconsistent indicates a cross-field consistency
	// check failed (e.g. bpm_min > bpm_max).
	ErrorCodeStructureInconsistent ErrorCode = "STRUCTURE_INCONSISTENT"
)

// Discovery-specific error codes cover anchor search exhaustion and
// cross-validation failures in internal/discovery.
const (
	// ErrorCodeAnchorExhausted indicates an anchor's search space (pattern
	// scan range or displacement window) was exhausted without promoting a
	// candidate.
	ErrorCodeAnchorExhausted ErrorCode = "ANCHOR_EXHAUSTED"

	// ErrorCodeCrossValidationFailed indicates a candidate decoded cleanly on
	// its own but the structure implied by a fixed displacement from it did
	// not validate, invalidating the candidate.
	ErrorCodeCrossValidationFailed ErrorCode = "CROSS_VALIDATION_FAILED"

	// ErrorCodeAmbiguousCandidates indicates more than one candidate survived
	// validation and automatic tie-breaking, requiring interactive resolution.
	ErrorCodeAmbiguousCandidates ErrorCode = "AMBIGUOUS_CANDIDATES"
)

// Sink-specific error codes cover delivery failures from internal/tracker's
// sink fan-out.
const (
	// ErrorCodeSinkRetriesExhausted indicates a sink failed on every attempt
	// of its retry/backoff schedule.
	ErrorCodeSinkRetriesExhausted ErrorCode = "SINK_RETRIES_EXHAUSTED"

	// ErrorCodeSinkChannelFull indicates the bounded delivery channel to a
	// sink was full and the new record was dropped, keeping the queued ones.
	ErrorCodeSinkChannelFull ErrorCode = "SINK_CHANNEL_FULL"
)

// ErrorCodeCancelled indicates an operation was aborted by a cooperative stop
// signal rather than by failure.
const ErrorCodeCancelled ErrorCode = "CANCELLED"
