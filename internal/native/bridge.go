package native

import (
	"bytes"
	"fmt"
)

// Bridge dispatches the fixed set of systemapi operations. It is
// stateless across calls; the only shared state is the Manager it routes
// every call through.
type Bridge struct {
	manager *Manager
}

// NewBridge creates a dispatcher over the given handle manager.
func NewBridge(manager *Manager) *Bridge {
	return &Bridge{manager: manager}
}

// Manager exposes the underlying handle manager for lifecycle control.
func (b *Bridge) Manager() *Manager { return b.manager }

// HostName fetches the machine hostname. The bridge owns the buffer and
// passes its capacity explicitly; the native side promises to write a
// NUL-terminated name within it.
func (b *Bridge) HostName() (string, error) {
	var name string
	err := b.manager.With(func(lib Lib) error {
		fn, err := Bind[hostNameFunc](lib, symHostName)
		if err != nil {
			return err
		}
		buf := make([]byte, hostNameBufCap)
		if !fn(buf, int32(len(buf))) {
			return &CallError{Op: symHostName}
		}
		name = stringUpToNul(buf)
		return nil
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// TotalMemory returns total physical memory in bytes, verbatim. A zero
// result is ambiguous in the native contract (failure, or an
// unrepresentable value) and is passed through for the caller to
// interpret.
func (b *Bridge) TotalMemory() (uint64, error) {
	var total uint64
	err := b.manager.With(func(lib Lib) error {
		fn, err := Bind[totalMemoryFunc](lib, symTotalMemory)
		if err != nil {
			return err
		}
		total = fn()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ProcessID returns the current process id. The native query has no
// failure path; errors here mean the library or symbol was unavailable.
func (b *Bridge) ProcessID() (uint32, error) {
	var pid uint32
	err := b.manager.With(func(lib Lib) error {
		fn, err := Bind[processIDFunc](lib, symProcessID)
		if err != nil {
			return err
		}
		pid = fn()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pid, nil
}

// Factorial computes n! through the native library. The [0, 20] range is
// enforced here, on the trusted side: the native contract returns 0 for
// n < 0 and is undefined past 20, so out-of-range input never crosses
// the boundary.
func (b *Bridge) Factorial(n int32) (uint64, error) {
	if n < 0 || n > MaxFactorialInput {
		return 0, &ArgumentError{
			Param:  "n",
			Reason: fmt.Sprintf("must be between 0 and %d, got %d", MaxFactorialInput, n),
		}
	}

	var result uint64
	err := b.manager.With(func(lib Lib) error {
		fn, err := Bind[factorialFunc](lib, symFactorial)
		if err != nil {
			return err
		}
		result = fn(n)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

func stringUpToNul(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}
