package native

// Function types mirror the exports declared in systemapi.h. The header
// is the single source of truth for this ABI; a mismatch here is a
// programmer error the runtime cannot detect.
type (
	hostNameFunc    func(buf []byte, capacity int32) bool
	totalMemoryFunc func() uint64
	processIDFunc   func() uint32
	factorialFunc   func(n int32) uint64
)

// Export names in the systemapi library.
const (
	symHostName    = "GetComputerNameString"
	symTotalMemory = "GetTotalPhysicalMemory"
	symProcessID   = "GetCurrentProcessID"
	symFactorial   = "CalculateFactorial"
)

// hostNameBufCap is the capacity of the buffer handed to the hostname
// export. The capacity is passed explicitly; the native side promises to
// stay within it and NUL-terminate when the name fits.
const hostNameBufCap = 256

// MaxFactorialInput is the largest n whose factorial fits a uint64.
// 21! overflows, and the native contract leaves n > 20 undefined, so the
// dispatcher enforces the range before crossing the boundary.
const MaxFactorialInput = 20
