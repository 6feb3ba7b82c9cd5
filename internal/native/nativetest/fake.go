// Package nativetest provides an in-memory Loader implementation so the
// handle manager and bridge can be tested without a shared object on
// disk. Symbol implementations are plain Go functions; every invocation
// is counted and timestamped so tests can assert that foreign calls
// never overlap.
package nativetest

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Symbol names exported by the fake library, matching systemapi.h.
const (
	SymHostName    = "GetComputerNameString"
	SymTotalMemory = "GetTotalPhysicalMemory"
	SymProcessID   = "GetCurrentProcessID"
	SymFactorial   = "CalculateFactorial"
)

// DefaultHostName is written by the stock hostname implementation.
const DefaultHostName = "test-host"

// DefaultPID is returned by the stock process id implementation.
const DefaultPID uint32 = 4242

// DefaultTotalMemory is returned by the stock memory implementation.
const DefaultTotalMemory uint64 = 16 << 30

// Call records one invocation of a bound symbol.
type Call struct {
	Symbol string
	Enter  time.Time
	Exit   time.Time
}

// FakeLoader is a Loader backed by a symbol table of Go functions.
type FakeLoader struct {
	mu sync.Mutex

	// OpenErr, when set, is returned by Open to simulate a load failure.
	OpenErr error

	// Missing marks symbols that Lookup should report as absent.
	Missing map[string]bool

	impls  map[string]interface{}
	names  []string // address-1 -> symbol name
	counts map[string]int
	calls  []Call

	OpenCount  int
	CloseCount int
	LastPath   string
}

// NewFakeLoader returns a loader whose symbol table implements all four
// systemapi exports with deterministic behavior.
func NewFakeLoader() *FakeLoader {
	f := &FakeLoader{
		Missing: make(map[string]bool),
		impls:   make(map[string]interface{}),
		counts:  make(map[string]int),
	}

	f.SetImpl(SymHostName, func(buf []byte, capacity int32) bool {
		name := DefaultHostName
		n := copy(buf[:capacity], name)
		if n < int(capacity) {
			buf[n] = 0
		}
		return true
	})
	f.SetImpl(SymTotalMemory, func() uint64 { return DefaultTotalMemory })
	f.SetImpl(SymProcessID, func() uint32 { return DefaultPID })
	f.SetImpl(SymFactorial, func(n int32) uint64 {
		if n < 0 {
			return 0
		}
		result := uint64(1)
		for i := int32(2); i <= n; i++ {
			result *= uint64(i)
		}
		return result
	})
	return f
}

// SetImpl replaces the implementation behind a symbol name. The function
// signature must match the one the bridge binds for that symbol.
func (f *FakeLoader) SetImpl(symbol string, impl interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.impls[symbol] = impl
}

// Open simulates loading the library. Every attempt is counted, failed
// or not, so tests can assert that load failures are not retried.
func (f *FakeLoader) Open(path string) (uintptr, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastPath = path
	f.OpenCount++
	if f.OpenErr != nil {
		return 0, f.OpenErr
	}
	return 1, nil
}

// Lookup returns an opaque address for a known symbol.
func (f *FakeLoader) Lookup(lib uintptr, symbol string) (uintptr, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Missing[symbol] {
		return 0, fmt.Errorf("undefined symbol: %s", symbol)
	}
	if _, ok := f.impls[symbol]; !ok {
		return 0, fmt.Errorf("undefined symbol: %s", symbol)
	}
	for i, name := range f.names {
		if name == symbol {
			return uintptr(i + 1), nil
		}
	}
	f.names = append(f.names, symbol)
	return uintptr(len(f.names)), nil
}

// Close simulates unloading the library.
func (f *FakeLoader) Close(lib uintptr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CloseCount++
	return nil
}

// Register points fptr at a wrapper around the symbol's implementation
// that records entry/exit timestamps and bumps its call count.
func (f *FakeLoader) Register(fptr interface{}, addr uintptr) {
	f.mu.Lock()
	name := f.names[addr-1]
	impl := reflect.ValueOf(f.impls[name])
	f.mu.Unlock()

	target := reflect.ValueOf(fptr).Elem()
	wrapper := reflect.MakeFunc(target.Type(), func(args []reflect.Value) []reflect.Value {
		enter := time.Now()
		out := impl.Call(args)
		exit := time.Now()

		f.mu.Lock()
		f.counts[name]++
		f.calls = append(f.calls, Call{Symbol: name, Enter: enter, Exit: exit})
		f.mu.Unlock()
		return out
	})
	target.Set(wrapper)
}

// CallCount reports how many times a bound symbol was invoked.
func (f *FakeLoader) CallCount(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[symbol]
}

// Calls returns all recorded invocations in completion order.
func (f *FakeLoader) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}
