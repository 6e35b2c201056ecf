package errors

// ProcessError is a specialized error type for process-attachment failures:
// the target process couldn't be found, the handle couldn't be opened, or
// its main module couldn't be enumerated. It embeds baseError to inherit all
// the standard error functionality, then adds process-specific fields that
// pinpoint exactly what was being attempted.
type ProcessError struct {
	*baseError
	processName string // Name of the process/module that was being searched for or opened.
	pid         uint32 // OS process ID, if one was found before the failure.
}

// NewProcessError creates a new process-specific error.
func NewProcessError(err error, code ErrorCode, msg string) *ProcessError {
	return &ProcessError{baseError: NewBaseError(err, code, msg)}
}

// WithProcessName records which process/module name was being resolved.
func (pe *ProcessError) WithProcessName(name string) *ProcessError {
	pe.processName = name
	return pe
}

// WithPID records the OS process ID involved, if known.
func (pe *ProcessError) WithPID(pid uint32) *ProcessError {
	pe.pid = pid
	return pe
}

// ProcessName returns the process/module name that was being resolved.
func (pe *ProcessError) ProcessName() string {
	return pe.processName
}

// PID returns the OS process ID involved in the error, or 0 if none was found.
func (pe *ProcessError) PID() uint32 {
	return pe.pid
}

// ReadError is a specialized error type for failed cross-process memory
// reads. Per the reader's contract a read either returns exactly the
// requested number of bytes or fails — there is no partial-success case —
// so every ReadError carries the address and the byte counts that didn't match.
type ReadError struct {
	*baseError
	address   uintptr // Absolute address the read targeted.
	requested int     // Number of bytes requested.
	got       int      // Number of bytes actually read before the failure (or short read).
}

// NewReadError creates a new read-specific error.
func NewReadError(err error, code ErrorCode, msg string) *ReadError {
	return &ReadError{baseError: NewBaseError(err, code, msg)}
}

// WithAddress records the absolute address the failed read targeted.
func (re *ReadError) WithAddress(address uintptr) *ReadError {
	re.address = address
	return re
}

// WithCounts records how many bytes were requested versus actually read.
func (re *ReadError) WithCounts(requested, got int) *ReadError {
	re.requested = requested
	re.got = got
	return re
}

// Address returns the absolute address the failed read targeted.
func (re *ReadError) Address() uintptr {
	return re.address
}

// Requested returns the number of bytes the read was asked for.
func (re *ReadError) Requested() int {
	return re.requested
}

// Got returns the number of bytes actually read before the failure.
func (re *ReadError) Got() int {
	return re.got
}

// NewProcessNotFoundError creates a standard error for a process-name lookup
// that matched nothing.
func NewProcessNotFoundError(processName string) *ProcessError {
	return NewProcessError(nil, ErrorCodeProcessNotFound, "no running process matches the configured name").
		WithProcessName(processName)
}

// NewShortReadError creates a standard error for a cross-process read that
// returned fewer bytes than requested. A short read never succeeds silently.
func NewShortReadError(address uintptr, requested, got int) *ReadError {
	return NewReadError(nil, ErrorCodeShortRead, "read returned fewer bytes than requested").
		WithAddress(address).
		WithCounts(requested, got)
}
