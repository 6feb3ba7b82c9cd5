package native

// Loader abstracts the platform dynamic linker so the handle manager and
// bridge can be exercised without a real shared object on disk.
type Loader interface {
	// Open loads the library at path and returns an opaque handle.
	Open(path string) (uintptr, error)

	// Lookup resolves a named export to its address within lib.
	Lookup(lib uintptr, symbol string) (uintptr, error)

	// Close releases the library handle.
	Close(lib uintptr) error

	// Register points fptr, which must be a pointer to a function value,
	// at the native code at addr.
	Register(fptr interface{}, addr uintptr)
}

// NewLoader returns the dynamic linker for the current platform.
func NewLoader() Loader { return platformLoader{} }
