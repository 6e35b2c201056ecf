package memory

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// findProcessByName walks a process snapshot looking for a running process
// whose executable file name matches name, case-insensitively. Returns the
// first match's PID.
func findProcessByName(name string) (uint32, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return 0, fmt.Errorf("create process snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := windows.Process32First(snapshot, &entry); err != nil {
		return 0, fmt.Errorf("enumerate processes: %w", err)
	}

	for {
		exeName := windows.UTF16ToString(entry.ExeFile[:])
		if strings.EqualFold(exeName, name) {
			return entry.ProcessID, nil
		}

		if err := windows.Process32Next(snapshot, &entry); err != nil {
			break
		}
	}

	return 0, fmt.Errorf("no process named %q is running", name)
}

// moduleBaseAddress resolves the base address of a process's main module
// (the module whose name matches the process executable) via a second
// toolhelp snapshot scoped to modules.
func moduleBaseAddress(_ windows.Handle, pid uint32) (uintptr, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(
		windows.TH32CS_SNAPMODULE|windows.TH32CS_SNAPMODULE32, pid,
	)
	if err != nil {
		return 0, fmt.Errorf("create module snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ModuleEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := windows.Module32First(snapshot, &entry); err != nil {
		return 0, fmt.Errorf("enumerate modules: %w", err)
	}

	// The first module returned by the toolhelp API is always the main
	// executable module for the process.
	return uintptr(entry.ModBaseAddr), nil
}
