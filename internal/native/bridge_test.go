package native_test

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systemapi/bridge/internal/native"
	"github.com/systemapi/bridge/internal/native/nativetest"
)

func newLoadedBridge(t *testing.T) (*native.Bridge, *nativetest.FakeLoader) {
	t.Helper()
	fake := nativetest.NewFakeLoader()
	m := native.NewManager(fake, nil)
	require.NoError(t, m.Load(libPath))
	return native.NewBridge(m), fake
}

func TestFactorialExact(t *testing.T) {
	b, _ := newLoadedBridge(t)

	cases := map[int32]uint64{
		0:  1,
		1:  1,
		2:  2,
		5:  120,
		10: 3628800,
		20: 2432902008176640000,
	}
	for n, want := range cases {
		got, err := b.Factorial(n)
		require.NoError(t, err, "factorial(%d)", n)
		assert.Equal(t, want, got, "factorial(%d)", n)
	}
}

func TestFactorialRejectsOutOfRange(t *testing.T) {
	b, fake := newLoadedBridge(t)

	for _, n := range []int32{-1, -100, 21, 1000} {
		_, err := b.Factorial(n)
		var argErr *native.ArgumentError
		require.ErrorAs(t, err, &argErr, "factorial(%d)", n)
		assert.Equal(t, "n", argErr.Param)
	}

	// Validation happens on the trusted side: the native entry point is
	// never invoked for rejected input.
	assert.Equal(t, 0, fake.CallCount(nativetest.SymFactorial))
}

func TestHostName(t *testing.T) {
	b, fake := newLoadedBridge(t)

	name, err := b.HostName()
	require.NoError(t, err)
	assert.Equal(t, nativetest.DefaultHostName, name)
	assert.Equal(t, 1, fake.CallCount(nativetest.SymHostName))
}

func TestHostNameNativeFailure(t *testing.T) {
	b, fake := newLoadedBridge(t)
	fake.SetImpl(nativetest.SymHostName, func(buf []byte, capacity int32) bool {
		return false
	})

	_, err := b.HostName()
	var callErr *native.CallError
	require.ErrorAs(t, err, &callErr)
}

func TestHostNameBufferContract(t *testing.T) {
	b, fake := newLoadedBridge(t)

	var gotCap int32
	var gotLen int
	fake.SetImpl(nativetest.SymHostName, func(buf []byte, capacity int32) bool {
		gotCap = capacity
		gotLen = len(buf)
		// Fill the full declared capacity with no terminator; the
		// bridge must cope without reading past its own buffer.
		for i := range buf {
			buf[i] = 'x'
		}
		return true
	})

	name, err := b.HostName()
	require.NoError(t, err)
	assert.Equal(t, int32(256), gotCap)
	assert.Equal(t, 256, gotLen, "buffer length and declared capacity must agree")
	assert.Len(t, name, 256)
}

func TestTotalMemory(t *testing.T) {
	b, _ := newLoadedBridge(t)

	total, err := b.TotalMemory()
	require.NoError(t, err)
	assert.Equal(t, nativetest.DefaultTotalMemory, total)
}

func TestTotalMemoryZeroPassesThrough(t *testing.T) {
	b, fake := newLoadedBridge(t)
	fake.SetImpl(nativetest.SymTotalMemory, func() uint64 { return 0 })

	// Zero is ambiguous in the native contract and is surfaced as-is.
	total, err := b.TotalMemory()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestProcessIDIdempotent(t *testing.T) {
	b, fake := newLoadedBridge(t)

	first, err := b.ProcessID()
	require.NoError(t, err)
	second, err := b.ProcessID()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, fake.CallCount(nativetest.SymProcessID))
}

func TestMissingSymbol(t *testing.T) {
	b, fake := newLoadedBridge(t)
	fake.Missing[nativetest.SymTotalMemory] = true

	_, err := b.TotalMemory()
	var symErr *native.SymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, nativetest.SymTotalMemory, symErr.Name)
}

func TestDispatchAfterUnload(t *testing.T) {
	b, _ := newLoadedBridge(t)
	require.NoError(t, b.Manager().Unload())

	_, err := b.HostName()
	assert.ErrorIs(t, err, native.ErrNotLoaded)
	_, err = b.TotalMemory()
	assert.ErrorIs(t, err, native.ErrNotLoaded)
	_, err = b.ProcessID()
	assert.ErrorIs(t, err, native.ErrNotLoaded)
	_, err = b.Factorial(5)
	assert.ErrorIs(t, err, native.ErrNotLoaded)
}

func TestConcurrentDispatchSerialized(t *testing.T) {
	b, fake := newLoadedBridge(t)

	// Slow the native side down enough that overlapping calls would be
	// clearly visible in the recorded timestamps.
	fake.SetImpl(nativetest.SymFactorial, func(n int32) uint64 {
		time.Sleep(time.Millisecond)
		return 120
	})

	const callers = 16
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			got, err := b.Factorial(5)
			assert.NoError(t, err)
			assert.Equal(t, uint64(120), got)
		}()
	}
	wg.Wait()

	calls := fake.Calls()
	require.Len(t, calls, callers)

	sort.Slice(calls, func(i, j int) bool { return calls[i].Enter.Before(calls[j].Enter) })
	for i := 1; i < len(calls); i++ {
		assert.False(t, calls[i].Enter.Before(calls[i-1].Exit),
			"foreign calls must not overlap: call %d entered before call %d exited", i, i-1)
	}
}
