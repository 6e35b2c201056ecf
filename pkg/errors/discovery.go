package errors

// DiscoveryError provides specialized error handling for offset-discovery
// failures: an anchor's search space was exhausted, or a candidate that
// decoded cleanly on its own failed the cross-validation check implied by
// another anchor's displacement. This structure extends the base error
// system with discovery-specific context while properly supporting method
// chaining through all base error methods.
type DiscoveryError struct {
	*baseError

	// Identifies which anchor was being searched for when discovery failed
	// (e.g. "SongList", "JudgeData", "CurrentSong").
	anchor string

	// Counts how many candidates were tried and rejected before the search
	// space was exhausted.
	candidatesTried int

	// Names the anchor whose implied structure failed cross-validation, set
	// only when the failure is a cross-validation rejection rather than a
	// plain search exhaustion.
	impliedBy string
}

// NewDiscoveryError creates a new discovery-specific error with the provided context.
func NewDiscoveryError(err error, code ErrorCode, msg string) *DiscoveryError {
	return &DiscoveryError{baseError: NewBaseError(err, code, msg)}
}

// Override base error methods to return *DiscoveryError instead of *baseError.

// WithMessage updates the error message while maintaining the DiscoveryError type.
func (de *DiscoveryError) WithMessage(msg string) *DiscoveryError {
	de.baseError.WithMessage(msg)
	return de
}

// WithCode sets the error code while preserving the DiscoveryError type.
func (de *DiscoveryError) WithCode(code ErrorCode) *DiscoveryError {
	de.baseError.WithCode(code)
	return de
}

// WithDetail adds contextual information while maintaining the DiscoveryError type.
func (de *DiscoveryError) WithDetail(key string, value any) *DiscoveryError {
	de.baseError.WithDetail(key, value)
	return de
}

// WithAnchor records which anchor was being searched for.
func (de *DiscoveryError) WithAnchor(anchor string) *DiscoveryError {
	de.anchor = anchor
	return de
}

// WithCandidatesTried records how many candidates were rejected before
// the search space was exhausted.
func (de *DiscoveryError) WithCandidatesTried(n int) *DiscoveryError {
	de.candidatesTried = n
	return de
}

// WithImpliedBy records which anchor's displacement produced the structure
// that failed cross-validation.
func (de *DiscoveryError) WithImpliedBy(anchor string) *DiscoveryError {
	de.impliedBy = anchor
	return de
}

// Anchor returns the anchor name that was being searched for.
func (de *DiscoveryError) Anchor() string {
	return de.anchor
}

// CandidatesTried returns how many candidates were rejected.
func (de *DiscoveryError) CandidatesTried() int {
	return de.candidatesTried
}

// ImpliedBy returns the anchor whose displacement produced the
// cross-validation failure, or "" if this is a plain search exhaustion.
func (de *DiscoveryError) ImpliedBy() string {
	return de.impliedBy
}

// NewAnchorExhaustedError creates an error for an anchor whose entire search
// space (pattern scan range or displacement window) was exhausted without
// promoting a candidate.
func NewAnchorExhaustedError(anchor string, candidatesTried int) *DiscoveryError {
	return NewDiscoveryError(nil, ErrorCodeAnchorExhausted, "anchor search space exhausted without a valid candidate").
		WithAnchor(anchor).
		WithCandidatesTried(candidatesTried)
}

// NewCrossValidationFailedError creates an error for a candidate that decoded
// cleanly on its own but whose implied structure at another anchor, reached
// via a fixed displacement, failed to validate.
func NewCrossValidationFailedError(anchor, impliedBy string) *DiscoveryError {
	return NewDiscoveryError(nil, ErrorCodeCrossValidationFailed, "candidate's implied structure failed cross-validation").
		WithAnchor(anchor).
		WithImpliedBy(impliedBy)
}
