package memory

import (
	"testing"

	trackerErrors "github.com/yasora/reflux/pkg/errors"
)

func TestOpen_RequiresProcessName(t *testing.T) {
	_, err := Open(&Config{})
	if err == nil {
		t.Fatal("Open() with empty process name: want error, got nil")
	}
	if !trackerErrors.IsProcessError(err) {
		t.Fatalf("Open() error = %v, want a ProcessError", err)
	}
}

func TestOpen_NilConfig(t *testing.T) {
	_, err := Open(nil)
	if err == nil {
		t.Fatal("Open(nil): want error, got nil")
	}
}

func TestReader_Read_RejectsNonPositiveLength(t *testing.T) {
	r := &Reader{processName: "test.exe"}

	if _, err := r.Read(0x1000, 0); err == nil {
		t.Fatal("Read() with n=0: want error, got nil")
	} else if !trackerErrors.IsReadError(err) {
		t.Fatalf("Read() error = %v, want a ReadError", err)
	}

	if _, err := r.Read(0x1000, -1); err == nil {
		t.Fatal("Read() with n=-1: want error, got nil")
	}
}

func TestReader_Close_IsIdempotentOnUnopenedHandle(t *testing.T) {
	r := &Reader{}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() on zero-value Reader = %v, want nil", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close() = %v, want nil", err)
	}
}
