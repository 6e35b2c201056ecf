// Package memory implements the Process Reader: attaching to the target
// process by name, resolving its main module's base address, and issuing
// blocking, synchronous cross-process reads. There is no cache — every
// read hits the OS.
package memory

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/yasora/reflux/pkg/errors"
)

// Config encapsulates the parameters required to attach a Reader to a
// running process, mirroring the storage layer's Config{Options, Logger}
// shape: dependencies passed in explicitly rather than reached for as
// package globals.
type Config struct {
	ProcessName string
	Logger      *zap.SugaredLogger
}

// Reader attaches to a single target process and serves cross-process
// reads against it. A Reader is not safe for concurrent use by multiple
// goroutines issuing Close concurrently with reads; the tracker loop is
// the sole owner of a Reader's lifecycle.
type Reader struct {
	processName string
	pid         uint32
	handle      windows.Handle
	moduleBase  uintptr
	log         *zap.SugaredLogger
}

// Open attaches to the first running process whose executable name
// matches config.ProcessName, resolves its main module's base address,
// and returns a ready-to-use Reader.
func Open(config *Config) (*Reader, error) {
	if config == nil || config.ProcessName == "" {
		return nil, errors.NewProcessError(nil, errors.ErrorCodeInvalidInput, "process name is required")
	}

	log := config.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	pid, err := findProcessByName(config.ProcessName)
	if err != nil {
		log.Errorw("failed to locate target process", "processName", config.ProcessName, "error", err)
		return nil, errors.NewProcessError(err, errors.ErrorCodeProcessNotFound, "no running process matches the configured name").
			WithProcessName(config.ProcessName)
	}

	handle, err := windows.OpenProcess(
		windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ,
		false,
		pid,
	)
	if err != nil {
		return nil, errors.NewProcessError(err, errors.ErrorCodeProcessAccessDenied, "failed to open process handle").
			WithProcessName(config.ProcessName).
			WithPID(pid)
	}

	base, err := moduleBaseAddress(handle, pid)
	if err != nil {
		windows.CloseHandle(handle)
		return nil, errors.NewProcessError(err, errors.ErrorCodeModuleNotFound, "failed to resolve main module base address").
			WithProcessName(config.ProcessName).
			WithPID(pid)
	}

	log.Infow("attached to target process", "processName", config.ProcessName, "pid", pid, "moduleBase", fmt.Sprintf("0x%X", base))

	return &Reader{
		processName: config.ProcessName,
		pid:         pid,
		handle:      handle,
		moduleBase:  base,
		log:         log,
	}, nil
}

// ModuleBase returns the target process's main module base address.
func (r *Reader) ModuleBase() uintptr {
	return r.moduleBase
}

// PID returns the target process's process ID.
func (r *Reader) PID() uint32 {
	return r.pid
}

// Read reads exactly n bytes from address. A short read from the OS is
// never returned as a partial success; it becomes a ReadError.
func (r *Reader) Read(address uintptr, n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.NewReadError(nil, errors.ErrorCodeInvalidInput, "read length must be positive").
			WithAddress(address).
			WithCounts(n, 0)
	}

	buf := make([]byte, n)
	var got uintptr

	err := windows.ReadProcessMemory(r.handle, address, &buf[0], uintptr(n), &got)
	if err != nil || int(got) != n {
		return nil, errors.NewReadError(err, errors.ErrorCodeUnmappedRead, "cross-process read failed or was short").
			WithAddress(address).
			WithCounts(n, int(got))
	}

	return buf, nil
}

// ReadU8 reads a single byte at address.
func (r *Reader) ReadU8(address uintptr) (uint8, error) {
	b, err := r.Read(address, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a little-endian uint16 at address.
func (r *Reader) ReadU16(address uintptr) (uint16, error) {
	b, err := r.Read(address, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads a little-endian uint32 at address.
func (r *Reader) ReadU32(address uintptr) (uint32, error) {
	b, err := r.Read(address, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a little-endian int32 at address.
func (r *Reader) ReadI32(address uintptr) (int32, error) {
	v, err := r.ReadU32(address)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ReadU64 reads a little-endian uint64 at address.
func (r *Reader) ReadU64(address uintptr) (uint64, error) {
	b, err := r.Read(address, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Close releases the process handle. The Reader must not be used after
// Close returns.
func (r *Reader) Close() error {
	if r.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(r.handle)
	r.handle = 0
	return err
}
